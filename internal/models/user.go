package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReservedDrink is one entry in a user's reservation list. Timestamp is an
// RFC 3339 string so entries sort by parsed time, not lexically.
type ReservedDrink struct {
	DrinkID   string `bson:"drinkId" json:"drinkId"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
}

// User is the canonical user document in the users collection.
type User struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName              string             `bson:"firstName" json:"firstName"`
	LastName               string             `bson:"lastName" json:"lastName"`
	Email                  string             `bson:"email" json:"email"`
	PhoneNumber            string             `bson:"phoneNumber" json:"phoneNumber"`
	Password               string             `bson:"password" json:"-"`
	ReviewIDs              []string           `bson:"reviewIds" json:"reviewIds"`
	ProfilePictureLocation string             `bson:"profilePictureLocation" json:"profilePictureLocation"`
	DrinkReserved          []ReservedDrink    `bson:"drinkReserved" json:"drinkReserved"`
	Role                   string             `bson:"role" json:"role"`
}

// UserProfile is the projection of a user handed to callers. It never carries
// the password hash.
type UserProfile struct {
	UserID                 string          `json:"userId"`
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	Email                  string          `json:"email"`
	PhoneNumber            string          `json:"phoneNumber"`
	ReviewIDs              []string        `json:"reviewIds"`
	ProfilePictureLocation string          `json:"profilePictureLocation"`
	DrinkReserved          []ReservedDrink `json:"drinkReserved"`
	Role                   string          `json:"role"`
}

// Profile builds the caller-facing projection of u.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		UserID:                 u.ID.Hex(),
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		Email:                  u.Email,
		PhoneNumber:            u.PhoneNumber,
		ReviewIDs:              u.ReviewIDs,
		ProfilePictureLocation: u.ProfilePictureLocation,
		DrinkReserved:          u.DrinkReserved,
		Role:                   u.Role,
	}
}
