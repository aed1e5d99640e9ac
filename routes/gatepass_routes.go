package routes

import (
	"gatepass-app/config"
	"gatepass-app/controllers"
	"gatepass-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupGatePassRoutes(app *fiber.App, gatePassController *controllers.GatePassController) {
	api := app.Group(config.MAIN_ROUTES+"/gatepass", middleware.AuthMiddleware)

	api.Post("/", gatePassController.CreateGatePass)
	api.Get("/", gatePassController.GetAllGatePasses)
	api.Get("/export", gatePassController.ExportGatePasses)
	api.Get("/:id", gatePassController.GetGatePassByID)
	api.Put("/:id", gatePassController.UpdateGatePass)
	api.Patch("/:id/enable", gatePassController.ToggleEnable)
	api.Delete("/:id", gatePassController.DeleteGatePass)
}
