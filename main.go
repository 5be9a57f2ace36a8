package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shivamnegi1705/khidki-backend/configs"
	"github.com/shivamnegi1705/khidki-backend/logging"
	"github.com/shivamnegi1705/khidki-backend/middlewares"
	"github.com/shivamnegi1705/khidki-backend/routes"
)

func main() {
	logger := logging.Init("khidki", configs.EnvLogFile())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := configs.EnsureIndexes(ctx, configs.DB); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()
	app.Use(middlewares.RequestLogger(logger))

	routes.UserRoutes(app)
	routes.ProductsRoutes(app)
	routes.CartRoutes(app)
	routes.OrderRoutes(app)
	routes.InvoiceRoutes(app)

	logger.Info("server starting", "addr", ":3000")
	if err := app.Listen(":3000"); err != nil {
		log.Fatal(err)
	}
}
