package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shivamnegi1705/khidki-backend/checkout"
	"github.com/shivamnegi1705/khidki-backend/models"
)

// CartRepo manages the cart embedded in the user document.
type CartRepo struct {
	coll *mongo.Collection
}

func NewCartRepo(usersColl *mongo.Collection) *CartRepo {
	return &CartRepo{coll: usersColl}
}

var _ checkout.CartStore = (*CartRepo)(nil)

var ErrUserNotFound = errors.New("user not found")

func (r *CartRepo) Get(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Cart, nil
}

func (r *CartRepo) Save(ctx context.Context, userID primitive.ObjectID, cart []models.CartItem) error {
	if cart == nil {
		cart = []models.CartItem{}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"cart": cart}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Clear resets the cart to empty after an order is placed or settled.
func (r *CartRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return r.Save(ctx, userID, []models.CartItem{})
}
