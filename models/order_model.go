package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD      = "COD"
	PaymentMethodRazorpay = "Razorpay"
)

// Lifecycle statuses an order moves through. UpdateStatus only accepts
// values from this set.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// Invoice issuance outcome recorded on the order. Issuance is best-effort,
// so a paid order can legitimately sit at "failed" until regenerated.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusIssued  = "issued"
	InvoiceStatusFailed  = "failed"
)

// Address is the shipping address captured with an order. GSTIN is optional
// and only used on the tax invoice when the buyer is a registered business.
type Address struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	Zipcode   string `bson:"zipcode" json:"zipcode"`
	Country   string `bson:"country" json:"country"`
	Phone     string `bson:"phone" json:"phone"`
	GSTIN     string `bson:"gstin,omitempty" json:"gstin,omitempty"`
}

// OrderItem is a snapshot of the product at order time. Later product edits
// never change what was ordered.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Address       Address            `bson:"address" json:"address"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Payment       bool               `bson:"payment" json:"payment"`
	Status        string             `bson:"status" json:"status"`
	Invoice       primitive.ObjectID `bson:"invoice,omitempty" json:"invoice,omitempty"`
	InvoiceStatus string             `bson:"invoiceStatus" json:"invoiceStatus"`
	Date          time.Time          `bson:"date" json:"date"`
}

// HasInvoice reports whether an invoice reference has been attached.
func (o *Order) HasInvoice() bool {
	return !o.Invoice.IsZero()
}
