package main

import (
	"hotelaudit/config"
	"hotelaudit/database"
	aiRoutes "hotelaudit/routers/aiRoutes"
	auditRoutes "hotelaudit/routers/auditRoutes"
	authRoutes "hotelaudit/routers/authRoutes"
	propertyRoutes "hotelaudit/routers/propertyRoutes"
	userRoutes "hotelaudit/routers/userRoutes"
	"hotelaudit/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	utils.InitGeminiService()
	utils.InitTaskQueue()
	utils.InitializePropertyScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	propertyRoutes.SetupPropertyRoutes(app)
	auditRoutes.SetupAuditRoutes(app)
	aiRoutes.SetupAIRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
