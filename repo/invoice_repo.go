package repo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shivamnegi1705/khidki-backend/invoice"
	"github.com/shivamnegi1705/khidki-backend/models"
)

// InvoiceRepo stores invoices in the invoices collection. The unique indexes
// on invoiceNumber and orderId (see configs.EnsureIndexes) are the only
// concurrency guard around creation.
type InvoiceRepo struct {
	coll *mongo.Collection
}

func NewInvoiceRepo(coll *mongo.Collection) *InvoiceRepo {
	return &InvoiceRepo{coll: coll}
}

var _ invoice.Store = (*InvoiceRepo)(nil)

func (r *InvoiceRepo) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	stored := *inv
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, classifyDuplicate(err)
		}
		return nil, err
	}
	return &stored, nil
}

// classifyDuplicate tells the two unique indexes on invoices apart. The
// server names the violated index in the write error, so a hit on orderId_1
// means the order is already invoiced while anything else is a number
// collision.
func classifyDuplicate(err error) error {
	if strings.Contains(err.Error(), "orderId_1") {
		return invoice.ErrOrderAlreadyInvoiced
	}
	return invoice.ErrDuplicateNumber
}

func (r *InvoiceRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) ByOrderID(ctx context.Context, orderID primitive.ObjectID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ByIDs always returns a non-nil slice so callers serialize an empty list
// rather than null.
func (r *InvoiceRepo) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	if len(ids) == 0 {
		return invoices, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
