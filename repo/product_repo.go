package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shivamnegi1705/khidki-backend/inventory"
	"github.com/shivamnegi1705/khidki-backend/models"
)

type ProductRepo struct {
	coll *mongo.Collection
}

func NewProductRepo(coll *mongo.Collection) *ProductRepo {
	return &ProductRepo{coll: coll}
}

var _ inventory.ProductStore = (*ProductRepo)(nil)

// Stock and SetStock are an unserialized read-modify-write pair; concurrent
// orders against the same product can lose updates (last write wins).
func (r *ProductRepo) Stock(ctx context.Context, id primitive.ObjectID) (int, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, inventory.ErrProductNotFound
		}
		return 0, err
	}
	return product.Quantity, nil
}

func (r *ProductRepo) SetStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inventory.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) List(ctx context.Context, page, limit int64) ([]models.Product, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * limit
	cursor, err := r.coll.Find(ctx, bson.M{}, &options.FindOptions{Skip: &skip, Limit: &limit})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepo) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	stored := *product
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}
