package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellerDetails identifies the issuing business on an invoice. It is injected
// configuration, not a hidden constant, so tests can supply their own.
type SellerDetails struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	GSTIN   string `bson:"gstin" json:"gstin"`
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email" json:"email"`
}

// BuyerDetails is snapshotted from the order's address at generation time.
type BuyerDetails struct {
	Name    string  `bson:"name" json:"name"`
	Address Address `bson:"address" json:"address"`
	GSTIN   string  `bson:"gstin,omitempty" json:"gstin,omitempty"`
}

// InvoiceItem carries the GST breakdown for one order line. Unit price and
// taxable value are tax-exclusive; Total is the tax-inclusive line amount.
type InvoiceItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	Description  string             `bson:"description" json:"description"`
	HSNCode      string             `bson:"hsnCode" json:"hsnCode"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	UnitPrice    float64            `bson:"unitPrice" json:"unitPrice"`
	TaxableValue float64            `bson:"taxableValue" json:"taxableValue"`
	CGST         float64            `bson:"cgst" json:"cgst"`
	SGST         float64            `bson:"sgst" json:"sgst"`
	Total        float64            `bson:"total" json:"total"`
}

// Invoice is immutable once created. At most one exists per order, and the
// invoice number is globally unique; both are enforced by unique indexes.
type Invoice struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID           primitive.ObjectID `bson:"orderId" json:"orderId"`
	InvoiceNumber     string             `bson:"invoiceNumber" json:"invoiceNumber"`
	Date              time.Time          `bson:"date" json:"date"`
	SellerDetails     SellerDetails      `bson:"sellerDetails" json:"sellerDetails"`
	BuyerDetails      BuyerDetails       `bson:"buyerDetails" json:"buyerDetails"`
	Items             []InvoiceItem      `bson:"items" json:"items"`
	TotalTaxableValue float64            `bson:"totalTaxableValue" json:"totalTaxableValue"`
	TotalCGST         float64            `bson:"totalCgst" json:"totalCgst"`
	TotalSGST         float64            `bson:"totalSgst" json:"totalSgst"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	AmountInWords     string             `bson:"amountInWords" json:"amountInWords"`
}
