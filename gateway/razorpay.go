package gateway

import (
	"context"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/shivamnegi1705/khidki-backend/checkout"
)

// Razorpay adapts the Razorpay Orders API to checkout.PaymentGateway. The
// underlying SDK does not take a context; cancellation is bounded only by
// the SDK's own HTTP timeout.
type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

var _ checkout.PaymentGateway = (*Razorpay)(nil)

func (g *Razorpay) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (checkout.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return checkout.GatewayOrder{}, err
	}
	return orderFromBody(body), nil
}

func (g *Razorpay) FetchOrder(_ context.Context, gatewayOrderID string) (checkout.GatewayOrder, error) {
	body, err := g.client.Order.Fetch(gatewayOrderID, nil, nil)
	if err != nil {
		return checkout.GatewayOrder{}, err
	}
	return orderFromBody(body), nil
}

func orderFromBody(body map[string]interface{}) checkout.GatewayOrder {
	return checkout.GatewayOrder{
		ID:          stringField(body, "id"),
		Status:      stringField(body, "status"),
		Receipt:     stringField(body, "receipt"),
		AmountPaise: intField(body, "amount"),
		Currency:    stringField(body, "currency"),
	}
}

func stringField(body map[string]interface{}, key string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

func intField(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
