package routes

import (
	"github.com/gofiber/fiber/v2"

	invoiceController "github.com/shivamnegi1705/khidki-backend/controllers/invoices"
	"github.com/shivamnegi1705/khidki-backend/middlewares"
)

func InvoiceRoutes(app *fiber.App) {
	app.Get("/api/invoice/order/:orderId", middlewares.AuthMiddleware, invoiceController.GetInvoiceByOrder)
	app.Get("/api/invoice/:invoiceId", middlewares.AuthMiddleware, invoiceController.GetInvoiceById)
	app.Post("/api/invoice/user", middlewares.AuthMiddleware, invoiceController.GetUserInvoices)
}
