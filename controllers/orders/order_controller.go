package orderController

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/checkout"
	"github.com/shivamnegi1705/khidki-backend/configs"
	"github.com/shivamnegi1705/khidki-backend/gateway"
	"github.com/shivamnegi1705/khidki-backend/inventory"
	"github.com/shivamnegi1705/khidki-backend/invoice"
	"github.com/shivamnegi1705/khidki-backend/logging"
	"github.com/shivamnegi1705/khidki-backend/repo"
	"github.com/shivamnegi1705/khidki-backend/responses"
)

var (
	orderRepo   = repo.NewOrderRepo(configs.GetCollection(configs.DB, "orders"))
	productRepo = repo.NewProductRepo(configs.GetCollection(configs.DB, "products"))
	invoiceRepo = repo.NewInvoiceRepo(configs.GetCollection(configs.DB, "invoices"))
	cartRepo    = repo.NewCartRepo(configs.GetCollection(configs.DB, "users"))

	razorpayKeyID = configs.EnvRazorpayKeyId()

	checkoutService = &checkout.Service{
		Orders:    orderRepo,
		Carts:     cartRepo,
		Gateway:   gateway.NewRazorpay(razorpayKeyID, configs.EnvRazorpayKeySecret()),
		Inventory: &inventory.Adjuster{Products: productRepo, Log: logging.New("inventory")},
		Invoices:  &invoice.Generator{Store: invoiceRepo, Seller: configs.Seller()},
		Log:       logging.New("checkout"),
	}
)

func userIDFromLocals(c *fiber.Ctx) (primitive.ObjectID, error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, errors.New("user ID not found in token")
	}
	return primitive.ObjectIDFromHex(userId)
}

// PlaceOrder places a cash-on-delivery order from the request body. Inventory
// and invoice bookkeeping are best-effort inside the service; their outcome
// is reported through the order's invoiceStatus, not the response status.
func PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	var req checkout.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	order, err := checkoutService.PlaceOrder(ctx, userID, req)
	if err != nil {
		if errors.Is(err, checkout.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order Placed",
		Result: &fiber.Map{
			"orderId":       order.ID.Hex(),
			"invoiceStatus": order.InvoiceStatus,
		},
	})
}

// PlaceOrderRazorpay persists the order and opens a Razorpay order scoped to
// its amount. Stock stays untouched until the payment is verified.
func PlaceOrderRazorpay(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	var req checkout.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	order, gw, err := checkoutService.PlaceOrderRazorpay(ctx, userID, req)
	if err != nil {
		if errors.Is(err, checkout.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create Razorpay order: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Razorpay order created",
		Result: &fiber.Map{
			"orderId": order.ID.Hex(),
			"order":   gw,
			"key_id":  razorpayKeyID,
		},
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID string `json:"razorpay_order_id"`
}

// VerifyPayment polls Razorpay for the transaction and settles the order on
// success. Safe to call repeatedly for the same transaction.
func VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil || req.RazorpayOrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "razorpay_order_id is required",
		})
	}

	err = checkoutService.VerifyPayment(ctx, userID, req.RazorpayOrderID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrPaymentFailed):
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Payment Failed",
			})
		case errors.Is(err, checkout.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Payment verification failed: " + err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Payment Successful",
	})
}

// UserOrders lists the authenticated user's orders.
func UserOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	orders, err := orderRepo.ByUser(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

// AllOrders lists every order for the admin panel.
func AllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	orders, err := orderRepo.All(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

type updateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// UpdateStatus sets an order's lifecycle status from the admin panel.
func UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
		})
	}

	err = checkoutService.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		case errors.Is(err, checkout.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update status",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Status Updated",
	})
}
