package routes

import (
	"gatepass-app/config"
	"gatepass-app/controllers"
	"gatepass-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware)

	api.Post("/", userController.CreateUser)
	api.Get("/:id", userController.GetUserByID)
	api.Get("/", userController.GetAllUsers)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)

	profile := app.Group(config.MAIN_ROUTES+"/user", middleware.AuthMiddleware)
	profile.Get("/profile", userController.GetProfile)
}
