package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used by the data layer.
const (
	CollectionUsers   = "users"
	CollectionReviews = "reviews"
	CollectionDrinks  = "drinks"
)

// ErrNoDocuments is returned by FindOne when the filter matches nothing.
var ErrNoDocuments = errors.New("storage: no documents in result")

// InsertResult reports the outcome of an insert.
type InsertResult struct {
	Acknowledged bool
	InsertedID   primitive.ObjectID
}

// UpdateResult reports how many documents an update actually changed.
type UpdateResult struct {
	ModifiedCount int64
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64
}

// Store is the narrow record-store handle the repositories are built on.
// Repositories receive it explicitly so tests can swap in an isolated fixture
// instead of a process-wide connection.
//
// FindOne and Find decode matches into out, which must be a pointer (a pointer
// to a slice for Find). Update documents use operator form, e.g.
// bson.M{"$set": ...}.
type Store interface {
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	Find(ctx context.Context, collection string, filter bson.M, out any) error
	InsertOne(ctx context.Context, collection string, doc any) (InsertResult, error)
	UpdateOne(ctx context.Context, collection string, filter, update bson.M) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (DeleteResult, error)
}
