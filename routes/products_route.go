package routes

import (
	"github.com/gofiber/fiber/v2"

	productController "github.com/shivamnegi1705/khidki-backend/controllers/products"
	"github.com/shivamnegi1705/khidki-backend/middlewares"
)

func ProductsRoutes(app *fiber.App) {
	app.Get("/api/products", productController.GetAllProducts)
	app.Get("/api/products/:productId", productController.GetProductById)

	app.Post("/api/products/add", middlewares.AuthMiddleware, middlewares.AdminMiddleware, productController.AddProduct)
	app.Post("/api/products/remove", middlewares.AuthMiddleware, middlewares.AdminMiddleware, productController.RemoveProduct)
}
