package invoiceController

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/configs"
	"github.com/shivamnegi1705/khidki-backend/invoice"
	"github.com/shivamnegi1705/khidki-backend/repo"
	"github.com/shivamnegi1705/khidki-backend/responses"
)

var (
	invoiceRepo = repo.NewInvoiceRepo(configs.GetCollection(configs.DB, "invoices"))
	orderRepo   = repo.NewOrderRepo(configs.GetCollection(configs.DB, "orders"))
)

// GetInvoiceById fetches one invoice by its identifier.
func GetInvoiceById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	invoiceID, err := primitive.ObjectIDFromHex(c.Params("invoiceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid invoice ID format",
		})
	}

	inv, err := invoiceRepo.ByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Invoice not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch invoice",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Invoice fetched successfully",
		Result:  &fiber.Map{"invoice": inv},
	})
}

// GetInvoiceByOrder fetches the invoice issued for an order, if any.
func GetInvoiceByOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
		})
	}

	inv, err := invoiceRepo.ByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Invoice not found for this order",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch invoice",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Invoice fetched successfully",
		Result:  &fiber.Map{"invoice": inv},
	})
}

// GetUserInvoices lists all invoices belonging to the authenticated user's
// orders. Orders whose invoice issuance failed simply contribute nothing.
func GetUserInvoices(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	userID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	orders, err := orderRepo.ByUser(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}

	var invoiceIDs []primitive.ObjectID
	for _, order := range orders {
		if order.HasInvoice() {
			invoiceIDs = append(invoiceIDs, order.Invoice)
		}
	}

	invoices, err := invoiceRepo.ByIDs(ctx, invoiceIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch invoices",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Invoices fetched successfully",
		Result:  &fiber.Map{"invoices": invoices},
	})
}
