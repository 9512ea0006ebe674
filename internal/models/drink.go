package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drink is the drink document in the drinks collection. ReservedCounts only
// ever grows; reservations are never released.
type Drink struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Available      bool               `bson:"available" json:"available"`
	ReservedCounts int                `bson:"reservedCounts" json:"reservedCounts"`
}
