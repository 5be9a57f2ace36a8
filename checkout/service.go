package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/inventory"
	"github.com/shivamnegi1705/khidki-backend/invoice"
	"github.com/shivamnegi1705/khidki-backend/models"
)

var (
	ErrValidation    = errors.New("validation")
	ErrNotFound      = errors.New("not found")
	ErrPaymentFailed = errors.New("payment failed")
)

// OrderStore persists orders. AttachInvoice must be first-wins: it only sets
// the invoice reference when none is present, and reports whether it won.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) error
	AttachInvoice(ctx context.Context, orderID, invoiceID primitive.ObjectID) (bool, error)
	SetInvoiceStatus(ctx context.Context, orderID primitive.ObjectID, status string) error
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) error
}

// CartStore resets a user's cart after a successful placement or settlement.
type CartStore interface {
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// GatewayOrder is the slice of the payment gateway's transaction the
// coordinator cares about. Receipt carries the local order id back from the
// gateway and is the reconciliation key.
type GatewayOrder struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Receipt     string `json:"receipt"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// GatewayStatusPaid is the settled state reported by the gateway.
const GatewayStatusPaid = "paid"

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (GatewayOrder, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (GatewayOrder, error)
}

// PlaceOrderRequest is the checkout payload common to both payment methods.
type PlaceOrderRequest struct {
	Items   []models.OrderItem `json:"items"`
	Amount  float64            `json:"amount"`
	Address models.Address     `json:"address"`
}

// Service coordinates the order lifecycle: persist the order, adjust
// inventory, issue the invoice best-effort, settle payment, clear the cart.
type Service struct {
	Orders    OrderStore
	Carts     CartStore
	Gateway   PaymentGateway
	Inventory *inventory.Adjuster
	Invoices  *invoice.Generator
	Log       *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func validateRequest(req PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

func amountInPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// PlaceOrder handles cash-on-delivery checkout. Inventory adjustment and
// invoice issuance are best-effort bookkeeping: their failures are logged and
// recorded on the order, never surfaced as the operation's failure.
func (s *Service) PlaceOrder(ctx context.Context, userID primitive.ObjectID, req PlaceOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		Items:         req.Items,
		Address:       req.Address,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethodCOD,
		Payment:       false,
		Status:        models.StatusOrderPlaced,
		InvoiceStatus: models.InvoiceStatusPending,
		Date:          time.Now(),
	}

	order, err := s.Orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.Inventory.Decrement(ctx, order.Items)
	s.issueInvoice(ctx, order)

	if err := s.Carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return order, nil
}

// PlaceOrderRazorpay persists the order unpaid and opens a gateway
// transaction scoped to the order amount, tagged with the order id as the
// receipt. Inventory is not touched until the payment is verified.
func (s *Service) PlaceOrderRazorpay(ctx context.Context, userID primitive.ObjectID, req PlaceOrderRequest) (*models.Order, GatewayOrder, error) {
	if err := validateRequest(req); err != nil {
		return nil, GatewayOrder{}, err
	}

	order := &models.Order{
		UserID:        userID,
		Items:         req.Items,
		Address:       req.Address,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethodRazorpay,
		Payment:       false,
		Status:        models.StatusOrderPlaced,
		InvoiceStatus: models.InvoiceStatusPending,
		Date:          time.Now(),
	}

	order, err := s.Orders.Create(ctx, order)
	if err != nil {
		return nil, GatewayOrder{}, err
	}

	gw, err := s.Gateway.CreateOrder(ctx, amountInPaise(req.Amount), "INR", order.ID.Hex())
	if err != nil {
		return nil, GatewayOrder{}, err
	}

	return order, gw, nil
}

// VerifyPayment reconciles a gateway transaction with its order. On a settled
// payment it decrements inventory, marks the order paid, issues the invoice
// if the order does not already carry one, and clears the cart. Re-verifying
// an already settled order is a no-op beyond the cart reset. An unsettled
// payment reports ErrPaymentFailed without mutating anything.
func (s *Service) VerifyPayment(ctx context.Context, userID primitive.ObjectID, gatewayOrderID string) error {
	gw, err := s.Gateway.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if gw.Status != GatewayStatusPaid {
		return ErrPaymentFailed
	}

	orderID, err := primitive.ObjectIDFromHex(gw.Receipt)
	if err != nil {
		return fmt.Errorf("%w: bad receipt %q", ErrNotFound, gw.Receipt)
	}

	order, err := s.Orders.ByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Payment only ever moves false to true. A repeat verification of a
	// settled order must not decrement stock a second time.
	if !order.Payment {
		s.Inventory.Decrement(ctx, order.Items)
		if err := s.Orders.MarkPaid(ctx, order.ID); err != nil {
			return err
		}
		order.Payment = true
	}

	if !order.HasInvoice() {
		s.issueInvoice(ctx, order)
	}

	return s.Carts.Clear(ctx, userID)
}

// UpdateStatus sets the admin-facing lifecycle status. Only known statuses
// are accepted; there is no transition graph beyond that.
func (s *Service) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) error {
	switch status {
	case models.StatusOrderPlaced, models.StatusPacking, models.StatusShipped,
		models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Orders.UpdateStatus(ctx, orderID, status)
}

// issueInvoice generates and attaches the invoice for an order. It never
// fails the surrounding operation: the outcome lands on the order's
// invoiceStatus field and the invoice can be regenerated later on demand.
func (s *Service) issueInvoice(ctx context.Context, order *models.Order) {
	inv, err := s.Invoices.Generate(ctx, order)
	if err != nil {
		s.logger().Error("invoice generation failed", "orderId", order.ID.Hex(), "error", err)
		if err := s.Orders.SetInvoiceStatus(ctx, order.ID, models.InvoiceStatusFailed); err != nil {
			s.logger().Error("recording invoice failure failed", "orderId", order.ID.Hex(), "error", err)
		}
		order.InvoiceStatus = models.InvoiceStatusFailed
		return
	}

	won, err := s.Orders.AttachInvoice(ctx, order.ID, inv.ID)
	if err != nil {
		s.logger().Error("attaching invoice failed", "orderId", order.ID.Hex(), "invoiceId", inv.ID.Hex(), "error", err)
		return
	}
	if !won {
		// A concurrent writer attached one first; first wins.
		s.logger().Warn("invoice already attached", "orderId", order.ID.Hex())
		return
	}

	if err := s.Orders.SetInvoiceStatus(ctx, order.ID, models.InvoiceStatusIssued); err != nil {
		s.logger().Error("recording invoice issuance failed", "orderId", order.ID.Hex(), "error", err)
	}
	order.Invoice = inv.ID
	order.InvoiceStatus = models.InvoiceStatusIssued
}
