package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shivamnegi1705/khidki-backend/checkout"
	"github.com/shivamnegi1705/khidki-backend/models"
)

type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(coll *mongo.Collection) *OrderRepo {
	return &OrderRepo{coll: coll}
}

var _ checkout.OrderStore = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	stored := *order
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *OrderRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// All returns every order, newest first, for the admin panel.
func (r *OrderRepo) All(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid flips payment to true. There is no path back to false.
func (r *OrderRepo) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"payment": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return checkout.ErrNotFound
	}
	return nil
}

// AttachInvoice sets the invoice reference only when none is present yet, so
// the first successful generation wins. It reports false when another writer
// already attached one.
func (r *OrderRepo) AttachInvoice(ctx context.Context, orderID, invoiceID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": orderID, "invoice": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"invoice": invoiceID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		// Either the order is gone or an invoice is already attached;
		// distinguish so callers do not mistake a miss for a lost race.
		var order models.Order
		if err := r.coll.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return false, checkout.ErrNotFound
			}
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *OrderRepo) SetInvoiceStatus(ctx context.Context, orderID primitive.ObjectID, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{"invoiceStatus": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return checkout.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return checkout.ErrNotFound
	}
	return nil
}
