package main

import (
	"fmt"
	"log"

	"gatepass-app/config"
	"gatepass-app/controllers"
	"gatepass-app/controllers/idgen"
	"gatepass-app/database"
	"gatepass-app/migration"
	"gatepass-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.GetDBConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupUserRoutes(app, controllers.NewUserController(db))
	routes.SetupDestinationRoutes(app, controllers.NewDestinationController(db))
	routes.SetupGatePassRoutes(app, controllers.NewGatePassController(db))

	port := config.APP_PORT
	fmt.Println("Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
