package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"productId,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Quantity    int                `bson:"quantity" json:"quantity" validate:"min=0"`
	Images      []string           `bson:"images" json:"images"`
	Bestseller  bool               `bson:"bestseller" json:"bestseller"`
	Date        time.Time          `bson:"date" json:"date"`
}
