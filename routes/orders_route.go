package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/shivamnegi1705/khidki-backend/controllers/orders"
	"github.com/shivamnegi1705/khidki-backend/middlewares"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/api/order/place", middlewares.AuthMiddleware, orderController.PlaceOrder)
	app.Post("/api/order/razorpay", middlewares.AuthMiddleware, orderController.PlaceOrderRazorpay)
	app.Post("/api/order/verifyRazorpay", middlewares.AuthMiddleware, orderController.VerifyPayment)
	app.Post("/api/order/userorders", middlewares.AuthMiddleware, orderController.UserOrders)

	app.Post("/api/order/list", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.AllOrders)
	app.Post("/api/order/status", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.UpdateStatus)
}
