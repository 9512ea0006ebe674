package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nadiraputri/seruput/internal/apperrors"
	"github.com/nadiraputri/seruput/internal/models"
	"github.com/nadiraputri/seruput/internal/storage"
)

func createTestReview(t *testing.T, repos *Repositories, userID, drinkID string) string {
	t.Helper()
	reviewID, err := repos.Reviews.Create(context.Background(), NewReview{
		DrinkID:    drinkID,
		UserID:     userID,
		ReviewText: "Smooth, not too sweet.",
		Rating:     4,
	})
	require.NoError(t, err)
	return reviewID
}

func TestCreateReview(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()
	userID := createTestUser(t, repos, "reviewer@x.com")
	drinkID := createTestDrink(t, repos, "Kopi Gula Aren", true)

	t.Run("stamps the current time and stores the review", func(t *testing.T) {
		reviewID := createTestReview(t, repos, userID, drinkID)

		review, err := repos.Reviews.GetByID(ctx, reviewID)
		require.NoError(t, err)
		assert.Equal(t, userID, review.UserID)
		assert.Equal(t, drinkID, review.DrinkID)
		assert.Equal(t, 4, review.Rating)
		assert.NotEmpty(t, review.TimeStamp)
	})

	t.Run("does not append to the owner's reviewIds", func(t *testing.T) {
		reviewID := createTestReview(t, repos, userID, drinkID)

		_, err := repos.Reviews.GetByID(ctx, reviewID)
		require.NoError(t, err)

		ids, err := repos.Users.GetReviewIDs(ctx, userID)
		require.NoError(t, err)
		assert.NotContains(t, ids, reviewID)
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		_, err := repos.Reviews.Create(ctx, NewReview{
			DrinkID:    drinkID,
			UserID:     userID,
			ReviewText: "Undrinkable.",
			Rating:     6,
		})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestUpdateReview(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()
	userID := createTestUser(t, repos, "editor@x.com")
	drinkID := createTestDrink(t, repos, "Matcha Latte", true)
	reviewID := createTestReview(t, repos, userID, drinkID)

	t.Run("replaces all fields", func(t *testing.T) {
		err := repos.Reviews.Update(ctx, UpdateReview{
			ReviewID:   reviewID,
			TimeStamp:  "2026-05-01T12:00:00Z",
			DrinkID:    drinkID,
			UserID:     userID,
			ReviewText: "Changed my mind, it grew on me.",
			Rating:     5,
		})
		require.NoError(t, err)

		review, err := repos.Reviews.GetByID(ctx, reviewID)
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "2026-05-01T12:00:00Z", review.TimeStamp)
	})

	t.Run("unknown review is NOT_FOUND", func(t *testing.T) {
		err := repos.Reviews.Update(ctx, UpdateReview{
			ReviewID:   primitive.NewObjectID().Hex(),
			TimeStamp:  "2026-05-01T12:00:00Z",
			DrinkID:    drinkID,
			UserID:     userID,
			ReviewText: "Ghost review.",
			Rating:     3,
		})
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the review and cascades to the owner's reviewIds", func(t *testing.T) {
		repos, _ := newTestRepositories(t)
		userID := createTestUser(t, repos, "owner@x.com")
		drinkID := createTestDrink(t, repos, "Cold Brew", true)
		reviewID := createTestReview(t, repos, userID, drinkID)
		require.NoError(t, repos.Users.AddReview(ctx, reviewID, userID))

		require.NoError(t, repos.Reviews.Delete(ctx, reviewID))

		_, err := repos.Reviews.GetByID(ctx, reviewID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		ids, err := repos.Users.GetReviewIDs(ctx, userID)
		require.NoError(t, err)
		assert.NotContains(t, ids, reviewID)
	})

	t.Run("unknown review is NOT_FOUND", func(t *testing.T) {
		repos, _ := newTestRepositories(t)
		err := repos.Reviews.Delete(ctx, primitive.NewObjectID().Hex())
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("cascade failure is CASCADE and the review is already gone", func(t *testing.T) {
		repos, store := newTestRepositories(t)

		// Review whose owner does not exist: the primary delete succeeds, the
		// cascade cannot.
		res, err := store.InsertOne(ctx, storage.CollectionReviews, models.Review{
			TimeStamp:  "2026-04-01T09:00:00Z",
			DrinkID:    primitive.NewObjectID().Hex(),
			UserID:     primitive.NewObjectID().Hex(),
			ReviewText: "Orphaned.",
			Rating:     2,
		})
		require.NoError(t, err)
		reviewID := res.InsertedID.Hex()

		err = repos.Reviews.Delete(ctx, reviewID)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindCascade))

		_, err = repos.Reviews.GetByID(ctx, reviewID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
