package routes

import (
	"gatepass-app/config"
	"gatepass-app/controllers"
	"gatepass-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDestinationRoutes(app *fiber.App, destinationController *controllers.DestinationController) {
	api := app.Group(config.MAIN_ROUTES+"/dest", middleware.AuthMiddleware)

	api.Get("/", destinationController.GetAllDestinations)
	api.Post("/create", destinationController.CreateDestination)
	api.Put("/:id", destinationController.UpdateDestination)
}
