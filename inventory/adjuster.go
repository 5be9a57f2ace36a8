package inventory

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/models"
)

// ErrProductNotFound is returned by ProductStore implementations when no
// product matches the id.
var ErrProductNotFound = errors.New("product not found")

// ProductStore exposes the stock read-modify-write the adjuster needs.
// Neither call is serialized against concurrent orders; overlapping
// decrements race with last-write-wins semantics on stock.
type ProductStore interface {
	Stock(ctx context.Context, id primitive.ObjectID) (int, error)
	SetStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

// Adjuster decrements product stock for ordered items.
type Adjuster struct {
	Products ProductStore
	Log      *slog.Logger
}

func (a *Adjuster) logger() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

// Decrement applies every item's quantity against its product, flooring the
// result at zero. Failures are logged and skipped per item: a product that
// no longer exists, or a store error, never aborts the loop or the order.
func (a *Adjuster) Decrement(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		stock, err := a.Products.Stock(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, ErrProductNotFound) {
				a.logger().Error("stock read failed", "productId", item.ProductID.Hex(), "error", err)
			}
			continue
		}

		newStock := stock - item.Quantity
		if newStock < 0 {
			newStock = 0
		}

		if err := a.Products.SetStock(ctx, item.ProductID, newStock); err != nil {
			a.logger().Error("stock update failed", "productId", item.ProductID.Hex(), "error", err)
		}
	}
}
