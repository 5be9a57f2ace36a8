package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/models"
)

type fakeStore struct {
	invoices    map[primitive.ObjectID]*models.Invoice
	numbers     map[string]bool
	createErr   error
	createCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invoices: make(map[primitive.ObjectID]*models.Invoice),
		numbers:  make(map[string]bool),
	}
}

func (s *fakeStore) Create(_ context.Context, inv *models.Invoice) (*models.Invoice, error) {
	s.createCount++
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.numbers[inv.InvoiceNumber] {
		return nil, ErrDuplicateNumber
	}
	stored := *inv
	stored.ID = primitive.NewObjectID()
	s.invoices[stored.ID] = &stored
	s.numbers[stored.InvoiceNumber] = true
	return &stored, nil
}

func (s *fakeStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *fakeStore) ByOrderID(_ context.Context, orderID primitive.ObjectID) (*models.Invoice, error) {
	for _, inv := range s.invoices {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, id := range ids {
		if inv, ok := s.invoices[id]; ok {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func testOrder() *models.Order {
	return &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Items: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), Name: "kettle", Price: 118, Quantity: 1},
		},
		Address: models.Address{
			FirstName: "Asha",
			LastName:  "Rao",
			Street:    "4 Park Lane",
			City:      "Bengaluru",
			State:     "Karnataka",
			Zipcode:   "560001",
			Country:   "India",
		},
		Amount:        118,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.StatusOrderPlaced,
		Date:          time.Now(),
	}
}

func testSeller() models.SellerDetails {
	return models.SellerDetails{
		Name:    "Test Seller Pvt. Ltd.",
		Address: "1 Test Street, Bengaluru",
		GSTIN:   "29TESTE0000T1Z1",
		Phone:   "+91-0000000000",
		Email:   "billing@test.example",
	}
}

func TestGenerate_BuildsCompleteInvoice(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	gen := &Generator{Store: store, Seller: testSeller()}

	inv, err := gen.Generate(context.Background(), testOrder())
	require.NoError(t, err)

	assert.Equal(t, 100.00, inv.TotalTaxableValue)
	assert.Equal(t, 9.00, inv.TotalCGST)
	assert.Equal(t, 9.00, inv.TotalSGST)
	assert.Equal(t, 118.00, inv.TotalAmount)
	assert.Equal(t, "One Hundred Eighteen Rupees Only", inv.AmountInWords)
	assert.Equal(t, "Asha Rao", inv.BuyerDetails.Name)
	assert.Equal(t, testSeller(), inv.SellerDetails)
	assert.Regexp(t, `^INV-\d{4}-\d{4}$`, inv.InvoiceNumber)
	assert.False(t, inv.ID.IsZero())
	require.Len(t, inv.Items, 1)
}

func TestGenerate_AggregatesAreRoundedSums(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	gen := &Generator{Store: store, Seller: testSeller()}

	order := testOrder()
	order.Items = []models.OrderItem{
		{ProductID: primitive.NewObjectID(), Name: "a", Price: 99.99, Quantity: 3},
		{ProductID: primitive.NewObjectID(), Name: "b", Price: 45.50, Quantity: 2},
	}

	inv, err := gen.Generate(context.Background(), order)
	require.NoError(t, err)

	var sumTaxable, sumTotal float64
	for _, item := range inv.Items {
		sumTaxable += item.TaxableValue
		sumTotal += item.Total
	}
	// Aggregates are sums of the independently rounded item fields, rounded
	// again; a small residue against the raw order amount is tolerated.
	assert.InDelta(t, sumTaxable, inv.TotalTaxableValue, 0.001)
	assert.InDelta(t, sumTotal, inv.TotalAmount, 0.001)
	assert.Equal(t, inv.TotalCGST, inv.TotalSGST)
}

func TestGenerate_IdempotentForInvoicedOrder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	gen := &Generator{Store: store, Seller: testSeller()}
	ctx := context.Background()
	order := testOrder()

	first, err := gen.Generate(ctx, order)
	require.NoError(t, err)

	order.Invoice = first.ID

	second, err := gen.Generate(ctx, order)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.createCount, "second call must not write a new invoice")
	assert.Len(t, store.invoices, 1)
}

func TestGenerate_SurfacesNumberCollision(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.createErr = ErrDuplicateNumber
	gen := &Generator{Store: store, Seller: testSeller()}

	_, err := gen.Generate(context.Background(), testOrder())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.Empty(t, store.invoices, "collision must not overwrite anything")
}

func TestGenerate_ResolvesLostRaceToWinningInvoice(t *testing.T) {
	t.Parallel()

	order := testOrder()
	store := newFakeStore()
	winner := &models.Invoice{
		ID:            primitive.NewObjectID(),
		InvoiceNumber: "INV-2026-1234",
		OrderID:       order.ID,
	}
	store.invoices[winner.ID] = winner
	store.createErr = ErrOrderAlreadyInvoiced
	gen := &Generator{Store: store, Seller: testSeller()}

	inv, err := gen.Generate(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, inv.ID)
	assert.Equal(t, "INV-2026-1234", inv.InvoiceNumber)
	assert.Len(t, store.invoices, 1, "losing the race must not add a second invoice")
}

func TestGenerate_RejectsZeroQuantityItem(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	gen := &Generator{Store: store, Seller: testSeller()}

	order := testOrder()
	order.Items[0].Quantity = 0

	_, err := gen.Generate(context.Background(), order)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, store.createCount)
}

func TestBuyerName_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both present", first: "Asha", last: "Rao", want: "Asha Rao"},
		{name: "only first", first: "Asha", last: "", want: "Asha"},
		{name: "only last", first: "", last: "Rao", want: "Rao"},
		{name: "both empty", first: "", last: "", want: "Customer"},
		{name: "whitespace only", first: "  ", last: " ", want: "Customer"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := buyerName(models.Address{FirstName: tt.first, LastName: tt.last})
			assert.Equal(t, tt.want, got)
		})
	}
}
