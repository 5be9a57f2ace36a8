package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/shivamnegi1705/khidki-backend/controllers/cart"
	"github.com/shivamnegi1705/khidki-backend/middlewares"
)

func CartRoutes(app *fiber.App) {
	app.Post("/api/cart/add", middlewares.AuthMiddleware, cartController.AddToCart)
	app.Post("/api/cart/remove", middlewares.AuthMiddleware, cartController.RemoveFromCart)
	app.Get("/api/cart", middlewares.AuthMiddleware, cartController.GetCart)
	app.Get("/api/cart/total", middlewares.AuthMiddleware, cartController.GetCartTotal)
}
