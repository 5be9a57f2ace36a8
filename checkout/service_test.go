package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/inventory"
	"github.com/shivamnegi1705/khidki-backend/invoice"
	"github.com/shivamnegi1705/khidki-backend/models"
)

type fakeOrders struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	stored := *order
	stored.ID = primitive.NewObjectID()
	f.orders[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeOrders) ByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) MarkPaid(_ context.Context, id primitive.ObjectID) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	order.Payment = true
	return nil
}

func (f *fakeOrders) AttachInvoice(_ context.Context, orderID, invoiceID primitive.ObjectID) (bool, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return false, ErrNotFound
	}
	if order.HasInvoice() {
		return false, nil
	}
	order.Invoice = invoiceID
	return true, nil
}

func (f *fakeOrders) SetInvoiceStatus(_ context.Context, orderID primitive.ObjectID, status string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.InvoiceStatus = status
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID primitive.ObjectID, status string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	return nil
}

type fakeCarts struct {
	cleared  map[primitive.ObjectID]int
	clearErr error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{cleared: make(map[primitive.ObjectID]int)}
}

func (f *fakeCarts) Clear(_ context.Context, userID primitive.ObjectID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared[userID]++
	return nil
}

type fakeGateway struct {
	created  []GatewayOrder
	fetched  map[string]GatewayOrder
	fetchErr error
}

func (f *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (GatewayOrder, error) {
	gw := GatewayOrder{
		ID:          "order_" + receipt,
		Status:      "created",
		Receipt:     receipt,
		AmountPaise: amountPaise,
		Currency:    currency,
	}
	f.created = append(f.created, gw)
	return gw, nil
}

func (f *fakeGateway) FetchOrder(_ context.Context, gatewayOrderID string) (GatewayOrder, error) {
	if f.fetchErr != nil {
		return GatewayOrder{}, f.fetchErr
	}
	gw, ok := f.fetched[gatewayOrderID]
	if !ok {
		return GatewayOrder{}, errors.New("gateway order not found")
	}
	return gw, nil
}

type fakeProducts struct {
	stock map[primitive.ObjectID]int
}

func (f *fakeProducts) Stock(_ context.Context, id primitive.ObjectID) (int, error) {
	qty, ok := f.stock[id]
	if !ok {
		return 0, inventory.ErrProductNotFound
	}
	return qty, nil
}

func (f *fakeProducts) SetStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	f.stock[id] = quantity
	return nil
}

type fakeInvoices struct {
	invoices  map[primitive.ObjectID]*models.Invoice
	createErr error
}

func newFakeInvoices() *fakeInvoices {
	return &fakeInvoices{invoices: make(map[primitive.ObjectID]*models.Invoice)}
}

func (f *fakeInvoices) Create(_ context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *inv
	stored.ID = primitive.NewObjectID()
	f.invoices[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeInvoices) ByID(_ context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, invoice.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvoices) ByOrderID(_ context.Context, orderID primitive.ObjectID) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, invoice.ErrNotFound
}

func (f *fakeInvoices) ByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, id := range ids {
		if inv, ok := f.invoices[id]; ok {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	orders   *fakeOrders
	carts    *fakeCarts
	gateway  *fakeGateway
	products *fakeProducts
	invoices *fakeInvoices
}

func newFixture() *fixture {
	orders := newFakeOrders()
	carts := newFakeCarts()
	gateway := &fakeGateway{fetched: make(map[string]GatewayOrder)}
	products := &fakeProducts{stock: make(map[primitive.ObjectID]int)}
	invoices := newFakeInvoices()

	svc := &Service{
		Orders:    orders,
		Carts:     carts,
		Gateway:   gateway,
		Inventory: &inventory.Adjuster{Products: products},
		Invoices: &invoice.Generator{
			Store: invoices,
			Seller: models.SellerDetails{
				Name: "Test Seller", Address: "1 Test Street", GSTIN: "29TESTE0000T1Z1",
			},
		},
	}
	return &fixture{svc: svc, orders: orders, carts: carts, gateway: gateway, products: products, invoices: invoices}
}

func codRequest(productID primitive.ObjectID) PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: []models.OrderItem{
			{ProductID: productID, Name: "kettle", Price: 118, Quantity: 1},
		},
		Amount: 118,
		Address: models.Address{
			FirstName: "Asha", LastName: "Rao", City: "Bengaluru", State: "Karnataka", Zipcode: "560001",
		},
	}
}

func TestPlaceOrder_CODEndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture()
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, err := f.svc.PlaceOrder(context.Background(), userID, codRequest(productID))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.False(t, order.Payment)
	assert.Equal(t, 4, f.products.stock[productID])
	assert.Equal(t, 1, f.carts.cleared[userID])
	assert.Equal(t, models.InvoiceStatusIssued, order.InvoiceStatus)

	inv, err := f.invoices.ByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.00, inv.TotalTaxableValue)
	assert.Equal(t, 9.00, inv.TotalCGST)
	assert.Equal(t, 9.00, inv.TotalSGST)
	assert.Equal(t, 118.00, inv.TotalAmount)
	assert.Equal(t, "One Hundred Eighteen Rupees Only", inv.AmountInWords)

	stored, err := f.orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, stored.Invoice)
}

func TestPlaceOrder_InvoiceFailureDoesNotFailOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.invoices.createErr = invoice.ErrDuplicateNumber
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, err := f.svc.PlaceOrder(context.Background(), userID, codRequest(productID))
	require.NoError(t, err, "invoice issuance is best-effort")

	stored, err := f.orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusFailed, stored.InvoiceStatus)
	assert.False(t, stored.HasInvoice())
	assert.Equal(t, 1, f.carts.cleared[userID], "cart still clears")
	assert.Equal(t, 4, f.products.stock[productID], "stock still decrements")
}

func TestPlaceOrder_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	userID := primitive.NewObjectID()

	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{name: "no items", req: PlaceOrderRequest{Amount: 100}},
		{
			name: "zero quantity",
			req: PlaceOrderRequest{
				Items:  []models.OrderItem{{Name: "x", Price: 100, Quantity: 0}},
				Amount: 100,
			},
		},
		{
			name: "negative price",
			req: PlaceOrderRequest{
				Items:  []models.OrderItem{{Name: "x", Price: -1, Quantity: 1}},
				Amount: 100,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := f.svc.PlaceOrder(context.Background(), userID, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPlaceOrderRazorpay_DefersInventoryAndInvoice(t *testing.T) {
	t.Parallel()

	f := newFixture()
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, gw, err := f.svc.PlaceOrderRazorpay(context.Background(), userID, codRequest(productID))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodRazorpay, order.PaymentMethod)
	assert.Equal(t, 5, f.products.stock[productID], "inventory untouched until verification")
	assert.Empty(t, f.invoices.invoices)
	assert.Zero(t, f.carts.cleared[userID])

	assert.Equal(t, int64(11800), gw.AmountPaise)
	assert.Equal(t, "INR", gw.Currency)
	assert.Equal(t, order.ID.Hex(), gw.Receipt, "order id is the reconciliation key")
}

func TestVerifyPayment_SettlesOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, gw, err := f.svc.PlaceOrderRazorpay(context.Background(), userID, codRequest(productID))
	require.NoError(t, err)

	f.gateway.fetched[gw.ID] = GatewayOrder{ID: gw.ID, Status: GatewayStatusPaid, Receipt: order.ID.Hex()}

	require.NoError(t, f.svc.VerifyPayment(context.Background(), userID, gw.ID))

	stored, err := f.orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.True(t, stored.HasInvoice())
	assert.Equal(t, models.InvoiceStatusIssued, stored.InvoiceStatus)
	assert.Equal(t, 4, f.products.stock[productID])
	assert.Equal(t, 1, f.carts.cleared[userID])
}

func TestVerifyPayment_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, gw, err := f.svc.PlaceOrderRazorpay(context.Background(), userID, codRequest(productID))
	require.NoError(t, err)

	f.gateway.fetched[gw.ID] = GatewayOrder{ID: gw.ID, Status: GatewayStatusPaid, Receipt: order.ID.Hex()}

	require.NoError(t, f.svc.VerifyPayment(context.Background(), userID, gw.ID))
	require.NoError(t, f.svc.VerifyPayment(context.Background(), userID, gw.ID))

	assert.Len(t, f.invoices.invoices, 1, "re-verification must not duplicate the invoice")
	assert.Equal(t, 4, f.products.stock[productID], "re-verification must not decrement twice")
}

func TestVerifyPayment_UnsettledMutatesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	productID := primitive.NewObjectID()
	f.products.stock[productID] = 5
	userID := primitive.NewObjectID()

	order, gw, err := f.svc.PlaceOrderRazorpay(context.Background(), userID, codRequest(productID))
	require.NoError(t, err)

	f.gateway.fetched[gw.ID] = GatewayOrder{ID: gw.ID, Status: "attempted", Receipt: order.ID.Hex()}

	err = f.svc.VerifyPayment(context.Background(), userID, gw.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentFailed)

	stored, err := f.orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.Payment)
	assert.False(t, stored.HasInvoice())
	assert.Equal(t, 5, f.products.stock[productID])
	assert.Zero(t, f.carts.cleared[userID])
}

func TestVerifyPayment_GatewayErrorPropagates(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gateway.fetchErr = errors.New("gateway unavailable")

	err := f.svc.VerifyPayment(context.Background(), primitive.NewObjectID(), "order_x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPaymentFailed)
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	order, err := f.orders.Create(context.Background(), &models.Order{Status: models.StatusOrderPlaced})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), order.ID, models.StatusShipped))
	stored, err := f.orders.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)

	err = f.svc.UpdateStatus(context.Background(), order.ID, "Teleported")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
