package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nadiraputri/seruput/internal/storage"
)

func TestReconcileCounters(t *testing.T) {
	repos, store := newTestRepositories(t)
	ctx := context.Background()

	userID := createTestUser(t, repos, "rec@x.com")
	drinkID := createTestDrink(t, repos, "Flat White", true)

	_, err := repos.Users.ReserveDrink(ctx, userID, drinkID)
	require.NoError(t, err)
	_, err = repos.Users.ReserveDrink(ctx, userID, drinkID)
	require.NoError(t, err)

	// Simulate the crash window of the double write: reservations recorded,
	// counter never incremented.
	drinkOID, err := primitive.ObjectIDFromHex(drinkID)
	require.NoError(t, err)
	_, err = store.UpdateOne(ctx, storage.CollectionDrinks,
		bson.M{"_id": drinkOID},
		bson.M{"$set": bson.M{"reservedCounts": 0}})
	require.NoError(t, err)

	report, err := repos.Reconciler.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.AdjustedCounters)
	assert.Equal(t, 0, report.DroppedReviewIDs)

	drink, err := repos.Drinks.GetByID(ctx, drinkID)
	require.NoError(t, err)
	assert.Equal(t, 2, drink.ReservedCounts)
}

func TestReconcileReviewIDs(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	ownerID := createTestUser(t, repos, "owner@x.com")
	otherID := createTestUser(t, repos, "other@x.com")
	drinkID := createTestDrink(t, repos, "Americano", true)

	reviewID := createTestReview(t, repos, ownerID, drinkID)
	require.NoError(t, repos.Users.AddReview(ctx, reviewID, ownerID))

	// An orphaned id and someone else's review, both of which must be dropped.
	require.NoError(t, repos.Users.AddReview(ctx, primitive.NewObjectID().Hex(), ownerID))
	require.NoError(t, repos.Users.AddReview(ctx, reviewID, otherID))

	report, err := repos.Reconciler.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.DroppedReviewIDs)

	ids, err := repos.Users.GetReviewIDs(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{reviewID}, ids)

	ids, err = repos.Users.GetReviewIDs(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReconcileCleanStateIsIdempotent(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	userID := createTestUser(t, repos, "clean@x.com")
	drinkID := createTestDrink(t, repos, "Mocha", true)
	_, err := repos.Users.ReserveDrink(ctx, userID, drinkID)
	require.NoError(t, err)

	report, err := repos.Reconciler.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.AdjustedCounters)
	assert.Equal(t, 0, report.DroppedReviewIDs)
}
