package invoice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/models"
)

var (
	// ErrDuplicateNumber is returned by Store implementations when the
	// generated invoice number collides with an existing one. The caller can
	// retry with a fresh number; Generate itself never retries.
	ErrDuplicateNumber = errors.New("duplicate invoice number")

	// ErrOrderAlreadyInvoiced is returned by Store implementations when an
	// invoice for the order already exists, i.e. a concurrent generation won
	// the one-invoice-per-order constraint first.
	ErrOrderAlreadyInvoiced = errors.New("order already has an invoice")

	// ErrNotFound is returned by Store implementations when no invoice
	// matches the lookup.
	ErrNotFound = errors.New("invoice not found")
)

// Store persists invoices. Create must surface ErrDuplicateNumber on a
// unique-index violation rather than overwriting.
type Store interface {
	Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	ByOrderID(ctx context.Context, orderID primitive.ObjectID) (*models.Invoice, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Invoice, error)
}

// Generator builds and persists tax invoices for orders.
type Generator struct {
	Store  Store
	Seller models.SellerDetails
	Now    func() time.Time // nil means time.Now
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// newInvoiceNumber formats INV-<year>-<4 random digits>. Collisions are
// possible; the store's unique index turns them into ErrDuplicateNumber.
func newInvoiceNumber(year int) string {
	return fmt.Sprintf("INV-%d-%d", year, 1000+rand.Intn(9000))
}

// buyerName joins the address names and falls back to "Customer" when both
// are blank, without leaking a stray leading or trailing space.
func buyerName(addr models.Address) string {
	name := strings.TrimSpace(strings.TrimSpace(addr.FirstName) + " " + strings.TrimSpace(addr.LastName))
	if name == "" {
		return "Customer"
	}
	return name
}

// Generate builds, persists and returns the invoice for an order. It is
// idempotent with respect to the order's invoice reference: an order that
// already carries one yields the stored invoice, never a second document.
// Losing a concurrent race on the one-invoice-per-order constraint resolves
// to the winner's invoice; other store failures, including number
// collisions, propagate to the caller.
func (g *Generator) Generate(ctx context.Context, order *models.Order) (*models.Invoice, error) {
	if order.HasInvoice() {
		return g.Store.ByID(ctx, order.Invoice)
	}

	items := make([]models.InvoiceItem, 0, len(order.Items))
	for _, line := range order.Items {
		item, err := CalculateItem(line)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", line.Name, err)
		}
		items = append(items, item)
	}

	var totalTaxable, totalCGST, totalSGST, totalAmount float64
	for _, item := range items {
		totalTaxable += item.TaxableValue
		totalCGST += item.CGST
		totalSGST += item.SGST
		totalAmount += item.Total
	}
	totalTaxable = round2(totalTaxable)
	totalCGST = round2(totalCGST)
	totalSGST = round2(totalSGST)
	totalAmount = round2(totalAmount)

	issuedAt := g.now()
	inv := &models.Invoice{
		OrderID:       order.ID,
		InvoiceNumber: newInvoiceNumber(issuedAt.Year()),
		Date:          issuedAt,
		SellerDetails: g.Seller,
		BuyerDetails: models.BuyerDetails{
			Name:    buyerName(order.Address),
			Address: order.Address,
			GSTIN:   order.Address.GSTIN,
		},
		Items:             items,
		TotalTaxableValue: totalTaxable,
		TotalCGST:         totalCGST,
		TotalSGST:         totalSGST,
		TotalAmount:       totalAmount,
		AmountInWords:     AmountInWords(int(math.Round(totalAmount))),
	}

	created, err := g.Store.Create(ctx, inv)
	if errors.Is(err, ErrOrderAlreadyInvoiced) {
		return g.Store.ByOrderID(ctx, order.ID)
	}
	return created, err
}
