package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a single drink review in the reviews collection. While a review
// exists its id must appear exactly once in the owning user's reviewIds.
type Review struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TimeStamp             string             `bson:"timeStamp" json:"timeStamp"`
	DrinkID               string             `bson:"drinkId" json:"drinkId"`
	UserID                string             `bson:"userId" json:"userId"`
	ReviewText            string             `bson:"reviewText" json:"reviewText"`
	Rating                int                `bson:"rating" json:"rating"`
	ReviewPictureLocation string             `bson:"reviewPictureLocation" json:"reviewPictureLocation"`
}
