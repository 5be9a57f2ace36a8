package invoice

import (
	"errors"
	"math"
	"math/rand"
	"strconv"

	"github.com/shivamnegi1705/khidki-backend/models"
)

// GST rates applied to every line item. Prices are stored tax-inclusive, so
// the taxable value is backed out of the line total.
const (
	CGSTRate     = 0.09
	SGSTRate     = 0.09
	TotalGSTRate = CGSTRate + SGSTRate
)

// ErrInvalidQuantity rejects line items that would otherwise divide by zero
// when deriving the unit price.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateHSNCode returns a random 8-digit code. This is a stand-in for a
// real HSN classification lookup, not a certified tax code.
func generateHSNCode() string {
	return strconv.Itoa(10000000 + rand.Intn(90000000))
}

// CalculateItem derives the GST breakdown for one order line. Each numeric
// field is rounded to 2 decimals independently, so unitPrice*quantity need
// not exactly reproduce taxableValue; the residue is tolerated, not corrected.
func CalculateItem(item models.OrderItem) (models.InvoiceItem, error) {
	if item.Quantity < 1 {
		return models.InvoiceItem{}, ErrInvalidQuantity
	}

	totalAmount := item.Price * float64(item.Quantity)
	taxableValue := totalAmount / (1 + TotalGSTRate)
	cgst := taxableValue * CGSTRate
	sgst := taxableValue * SGSTRate
	unitPrice := taxableValue / float64(item.Quantity)

	return models.InvoiceItem{
		ProductID:    item.ProductID,
		Description:  item.Name,
		HSNCode:      generateHSNCode(),
		Quantity:     item.Quantity,
		UnitPrice:    round2(unitPrice),
		TaxableValue: round2(taxableValue),
		CGST:         round2(cgst),
		SGST:         round2(sgst),
		Total:        round2(totalAmount),
	}, nil
}
