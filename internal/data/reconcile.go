package data

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nadiraputri/seruput/internal/apperrors"
	"github.com/nadiraputri/seruput/internal/models"
	"github.com/nadiraputri/seruput/internal/storage"
)

// ReconcileReport summarizes what a reconciliation pass repaired.
type ReconcileReport struct {
	DroppedReviewIDs int `json:"droppedReviewIds"`
	AdjustedCounters int `json:"adjustedCounters"`
}

// Reconciler repairs the drift the non-transactional double writes can leave
// behind: reviewIds entries whose review no longer exists (or belongs to a
// different user), and drink counters that disagree with the reservation
// entries recorded on users. It is run on demand, never automatically.
type Reconciler struct {
	store storage.Store
	log   zerolog.Logger
}

// NewReconciler creates a Reconciler on the given store handle.
func NewReconciler(store storage.Store, log zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, log: log.With().Str("component", "reconciler").Logger()}
}

// Run walks all three collections and writes back corrections. Each correction
// is a single-document update; a failure aborts the pass with the partial
// report discarded.
func (r *Reconciler) Run(ctx context.Context) (*ReconcileReport, error) {
	var users []models.User
	if err := r.store.Find(ctx, storage.CollectionUsers, bson.M{}, &users); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not list users", err)
	}
	var reviews []models.Review
	if err := r.store.Find(ctx, storage.CollectionReviews, bson.M{}, &reviews); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not list reviews", err)
	}
	var drinks []models.Drink
	if err := r.store.Find(ctx, storage.CollectionDrinks, bson.M{}, &drinks); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not list drinks", err)
	}

	ownerByReview := make(map[string]string, len(reviews))
	for _, review := range reviews {
		ownerByReview[review.ID.Hex()] = review.UserID
	}

	report := &ReconcileReport{}

	reservedCounts := map[string]int{}
	for _, user := range users {
		for _, reserved := range user.DrinkReserved {
			reservedCounts[reserved.DrinkID]++
		}

		kept := make([]string, 0, len(user.ReviewIDs))
		for _, reviewID := range user.ReviewIDs {
			if owner, ok := ownerByReview[reviewID]; ok && owner == user.ID.Hex() {
				kept = append(kept, reviewID)
			}
		}
		if len(kept) == len(user.ReviewIDs) {
			continue
		}

		dropped := len(user.ReviewIDs) - len(kept)
		if _, err := r.store.UpdateOne(ctx, storage.CollectionUsers,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"reviewIds": kept}}); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "could not repair reviewIds", err)
		}
		r.log.Info().Str("userId", user.ID.Hex()).Int("dropped", dropped).Msg("repaired reviewIds")
		report.DroppedReviewIDs += dropped
	}

	for _, drink := range drinks {
		expected := reservedCounts[drink.ID.Hex()]
		if drink.ReservedCounts == expected {
			continue
		}

		if _, err := r.store.UpdateOne(ctx, storage.CollectionDrinks,
			bson.M{"_id": drink.ID},
			bson.M{"$set": bson.M{"reservedCounts": expected}}); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "could not repair reserved count", err)
		}
		r.log.Info().
			Str("drinkId", drink.ID.Hex()).
			Int("was", drink.ReservedCounts).
			Int("now", expected).
			Msg("repaired reserved count")
		report.AdjustedCounters++
	}

	return report, nil
}
