package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/models"
)

type fakeProducts struct {
	stock    map[primitive.ObjectID]int
	setErr   error
	setCalls int
}

func (f *fakeProducts) Stock(_ context.Context, id primitive.ObjectID) (int, error) {
	qty, ok := f.stock[id]
	if !ok {
		return 0, ErrProductNotFound
	}
	return qty, nil
}

func (f *fakeProducts) SetStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.stock[id] = quantity
	return nil
}

func TestDecrement_AppliesAndFloorsAtZero(t *testing.T) {
	t.Parallel()

	plenty := primitive.NewObjectID()
	scarce := primitive.NewObjectID()
	products := &fakeProducts{stock: map[primitive.ObjectID]int{plenty: 10, scarce: 2}}
	adj := &Adjuster{Products: products}

	adj.Decrement(context.Background(), []models.OrderItem{
		{ProductID: plenty, Quantity: 3},
		{ProductID: scarce, Quantity: 5},
	})

	assert.Equal(t, 7, products.stock[plenty])
	assert.Equal(t, 0, products.stock[scarce], "stock must clamp at exactly zero")
}

func TestDecrement_SkipsMissingProducts(t *testing.T) {
	t.Parallel()

	present := primitive.NewObjectID()
	products := &fakeProducts{stock: map[primitive.ObjectID]int{present: 4}}
	adj := &Adjuster{Products: products}

	adj.Decrement(context.Background(), []models.OrderItem{
		{ProductID: primitive.NewObjectID(), Quantity: 1}, // deleted product
		{ProductID: present, Quantity: 1},
	})

	assert.Equal(t, 3, products.stock[present], "later items still apply after a miss")
	assert.Equal(t, 1, products.setCalls)
}

func TestDecrement_SwallowsWriteErrors(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	products := &fakeProducts{stock: map[primitive.ObjectID]int{id: 5}, setErr: errors.New("write failed")}
	adj := &Adjuster{Products: products}

	adj.Decrement(context.Background(), []models.OrderItem{{ProductID: id, Quantity: 2}})

	assert.Equal(t, 5, products.stock[id])
}
