package data

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nadiraputri/seruput/internal/apperrors"
	"github.com/nadiraputri/seruput/internal/models"
	"github.com/nadiraputri/seruput/internal/storage"
	"github.com/nadiraputri/seruput/internal/validation"
)

// NewReview carries the fields for posting a review. The timestamp is stamped
// by Create.
type NewReview struct {
	DrinkID               string
	UserID                string
	ReviewText            string
	Rating                int
	ReviewPictureLocation string
}

// UpdateReview carries a full field replacement for an existing review.
type UpdateReview struct {
	ReviewID              string
	TimeStamp             string
	DrinkID               string
	UserID                string
	ReviewText            string
	Rating                int
	ReviewPictureLocation string
}

// ReviewRepository is the caller-facing surface over the reviews collection.
//
// Create does not append the new review's id to the owning user's reviewIds;
// that follow-up is the caller's, via UserRepository.AddReview.
type ReviewRepository interface {
	Create(ctx context.Context, in NewReview) (string, error)
	Update(ctx context.Context, in UpdateReview) error
	Delete(ctx context.Context, reviewID string) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
}

type reviewRepository struct {
	store  storage.Store
	users  UserRepository
	assets *PictureStore
	log    zerolog.Logger
}

// NewReviewRepository creates a ReviewRepository. The user repository is
// needed for the delete cascade.
func NewReviewRepository(store storage.Store, users UserRepository, assets *PictureStore, log zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		store:  store,
		users:  users,
		assets: assets,
		log:    log.With().Str("repository", "reviews").Logger(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, in NewReview) (string, error) {
	drinkID, err := validation.ID(in.DrinkID, "drinkId")
	if err != nil {
		return "", err
	}
	userID, err := validation.ID(in.UserID, "userId")
	if err != nil {
		return "", err
	}
	reviewText, err := validation.ReviewText(in.ReviewText)
	if err != nil {
		return "", err
	}
	rating, err := validation.Rating(in.Rating)
	if err != nil {
		return "", err
	}
	if err := r.assets.Exists(in.ReviewPictureLocation); err != nil {
		return "", err
	}

	review := models.Review{
		TimeStamp:             validation.CurrentTimestamp(),
		DrinkID:               drinkID,
		UserID:                userID,
		ReviewText:            reviewText,
		Rating:                rating,
		ReviewPictureLocation: in.ReviewPictureLocation,
	}

	res, err := r.store.InsertOne(ctx, storage.CollectionReviews, review)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindPersistence, "could not add review", err)
	}
	if !res.Acknowledged || res.InsertedID.IsZero() {
		return "", apperrors.New(apperrors.KindPersistence, "could not add review")
	}
	return res.InsertedID.Hex(), nil
}

func (r *reviewRepository) Update(ctx context.Context, in UpdateReview) error {
	reviewOID, err := validation.ObjectID(in.ReviewID, "reviewId")
	if err != nil {
		return err
	}
	timeStamp, err := validation.DateTime(in.TimeStamp)
	if err != nil {
		return err
	}
	drinkID, err := validation.ID(in.DrinkID, "drinkId")
	if err != nil {
		return err
	}
	userID, err := validation.ID(in.UserID, "userId")
	if err != nil {
		return err
	}
	reviewText, err := validation.ReviewText(in.ReviewText)
	if err != nil {
		return err
	}
	rating, err := validation.Rating(in.Rating)
	if err != nil {
		return err
	}
	if err := r.assets.Exists(in.ReviewPictureLocation); err != nil {
		return err
	}

	var review models.Review
	err = r.store.FindOne(ctx, storage.CollectionReviews, bson.M{"_id": reviewOID}, &review)
	if errors.Is(err, storage.ErrNoDocuments) {
		return apperrors.Newf(apperrors.KindNotFound, "review with id %s not found", in.ReviewID)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not look up review", err)
	}

	res, err := r.store.UpdateOne(ctx, storage.CollectionReviews,
		bson.M{"_id": review.ID},
		bson.M{"$set": bson.M{
			"timeStamp":             timeStamp,
			"drinkId":               drinkID,
			"userId":                userID,
			"reviewText":            reviewText,
			"rating":                rating,
			"reviewPictureLocation": in.ReviewPictureLocation,
		}})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not update review", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "failed to update review with id %s", in.ReviewID)
	}
	return nil
}

// Delete removes the review, then cascades to the owning user's reviewIds.
// By the time the cascade runs the review document is already gone; a cascade
// failure is surfaced as CASCADE and is not rolled back.
func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	reviewOID, err := validation.ObjectID(reviewID, "reviewId")
	if err != nil {
		return err
	}

	var review models.Review
	err = r.store.FindOne(ctx, storage.CollectionReviews, bson.M{"_id": reviewOID}, &review)
	if errors.Is(err, storage.ErrNoDocuments) {
		return apperrors.Newf(apperrors.KindNotFound, "review with id %s not found", reviewID)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not look up review", err)
	}

	res, err := r.store.DeleteOne(ctx, storage.CollectionReviews, bson.M{"_id": reviewOID})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not delete review", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "could not delete review with id %s", reviewID)
	}

	if err := r.users.RemoveReview(ctx, reviewID, review.UserID); err != nil {
		r.log.Error().Err(err).Str("reviewId", reviewID).Msg("cascade after review delete failed")
		return apperrors.Wrap(apperrors.KindCascade,
			"review deleted but could not be removed from the owning user", err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	reviewOID, err := validation.ObjectID(reviewID, "reviewId")
	if err != nil {
		return nil, err
	}

	var review models.Review
	err = r.store.FindOne(ctx, storage.CollectionReviews, bson.M{"_id": reviewOID}, &review)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "review with id %s not found", reviewID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up review", err)
	}
	return &review, nil
}
