// Package data implements the repositories over the users, reviews and drinks
// collections, including the cross-entity coordination they require: the
// review-delete cascade, the drink reservation double write and profile
// picture replacement.
package data

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/nadiraputri/seruput/internal/apperrors"
	"github.com/nadiraputri/seruput/internal/models"
	"github.com/nadiraputri/seruput/internal/storage"
	"github.com/nadiraputri/seruput/internal/validation"
)

// Identical for unknown email and wrong password so callers cannot enumerate
// registered addresses.
const invalidCredentialsMessage = "either the email address or password is invalid"

// NewUser carries the fields for registration. Exactly one of
// ProfilePictureLocation (an existing stored path) or Upload may be set;
// both empty means no picture.
type NewUser struct {
	FirstName              string
	LastName               string
	Email                  string
	PhoneNumber            string
	Password               string
	ProfilePictureLocation string
	Upload                 *UploadedFile
	Role                   string
}

// UpdateUser carries a full field replacement, keyed by email.
type UpdateUser struct {
	FirstName              string
	LastName               string
	Email                  string
	PhoneNumber            string
	Password               string
	ReviewIDs              []string
	ProfilePictureLocation string
	DrinkReserved          []models.ReservedDrink
	Role                   string
}

// UserRepository is the caller-facing surface over the users collection. It
// owns the reviewIds and drinkReserved lists exclusively; nothing else may
// mutate them.
type UserRepository interface {
	Create(ctx context.Context, in NewUser) (string, error)
	Login(ctx context.Context, email, password string) (*models.UserProfile, error)
	Update(ctx context.Context, in UpdateUser) error
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	GetIDByEmail(ctx context.Context, email string) (string, error)
	GetPassword(ctx context.Context, userID string) (string, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetReviewIDs(ctx context.Context, userID string) ([]string, error)
	AddReview(ctx context.Context, reviewID, userID string) error
	RemoveReview(ctx context.Context, reviewID, userID string) error
	ReserveDrink(ctx context.Context, userID, drinkID string) (*models.ReservedDrink, error)
	GetReservations(ctx context.Context, userID string) ([]models.ReservedDrink, error)
}

type userRepository struct {
	store  storage.Store
	assets *PictureStore
	log    zerolog.Logger
}

// NewUserRepository creates a UserRepository on the given store handle.
func NewUserRepository(store storage.Store, assets *PictureStore, log zerolog.Logger) UserRepository {
	return &userRepository{
		store:  store,
		assets: assets,
		log:    log.With().Str("repository", "users").Logger(),
	}
}

func (r *userRepository) Create(ctx context.Context, in NewUser) (string, error) {
	firstName, err := validation.Name(in.FirstName, "firstName")
	if err != nil {
		return "", err
	}
	lastName, err := validation.Name(in.LastName, "lastName")
	if err != nil {
		return "", err
	}
	email, err := validation.Email(in.Email)
	if err != nil {
		return "", err
	}
	phoneNumber, err := validation.PhoneNumber(in.PhoneNumber)
	if err != nil {
		return "", err
	}
	password, err := validation.Password(in.Password)
	if err != nil {
		return "", err
	}
	role, err := validation.Role(in.Role)
	if err != nil {
		return "", err
	}

	var existing models.User
	err = r.store.FindOne(ctx, storage.CollectionUsers, bson.M{"email": email}, &existing)
	if err == nil {
		return "", apperrors.Newf(apperrors.KindDuplicateEmail, "%s is already registered", email)
	}
	if !errors.Is(err, storage.ErrNoDocuments) {
		return "", apperrors.Wrap(apperrors.KindPersistence, "could not check email", err)
	}

	picture := in.ProfilePictureLocation
	if in.Upload != nil {
		picture, err = r.assets.SaveUpload(*in.Upload)
		if err != nil {
			return "", err
		}
	} else if err := r.assets.Exists(picture); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindPersistence, "could not hash password", err)
	}

	user := models.User{
		FirstName:              firstName,
		LastName:               lastName,
		Email:                  email,
		PhoneNumber:            phoneNumber,
		Password:               string(hash),
		ReviewIDs:              []string{},
		ProfilePictureLocation: picture,
		DrinkReserved:          []models.ReservedDrink{},
		Role:                   role,
	}

	res, err := r.store.InsertOne(ctx, storage.CollectionUsers, user)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindPersistence, "could not register "+email, err)
	}
	if !res.Acknowledged || res.InsertedID.IsZero() {
		return "", apperrors.Newf(apperrors.KindPersistence, "could not register %s", email)
	}

	r.log.Debug().Str("email", email).Msg("registered user")
	return res.InsertedID.Hex(), nil
}

func (r *userRepository) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	email, err := validation.Email(email)
	if err != nil {
		return nil, err
	}
	password, err = validation.Password(password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.store.FindOne(ctx, storage.CollectionUsers, bson.M{"email": email}, &user)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindInvalidCredentials, invalidCredentialsMessage)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.KindInvalidCredentials, invalidCredentialsMessage)
	}
	return user.Profile(), nil
}

func (r *userRepository) Update(ctx context.Context, in UpdateUser) error {
	firstName, err := validation.Name(in.FirstName, "firstName")
	if err != nil {
		return err
	}
	lastName, err := validation.Name(in.LastName, "lastName")
	if err != nil {
		return err
	}
	email, err := validation.Email(in.Email)
	if err != nil {
		return err
	}
	phoneNumber, err := validation.PhoneNumber(in.PhoneNumber)
	if err != nil {
		return err
	}
	password, err := validation.Password(in.Password)
	if err != nil {
		return err
	}
	reviewIDs, err := validation.IDArray(in.ReviewIDs, "reviewIds")
	if err != nil {
		return err
	}
	for _, reserved := range in.DrinkReserved {
		if _, err := validation.ID(reserved.DrinkID, "drinkReserved.drinkId"); err != nil {
			return err
		}
		if _, err := validation.DateTime(reserved.Timestamp); err != nil {
			return err
		}
	}
	role, err := validation.Role(in.Role)
	if err != nil {
		return err
	}

	var user models.User
	err = r.store.FindOne(ctx, storage.CollectionUsers, bson.M{"email": email}, &user)
	if errors.Is(err, storage.ErrNoDocuments) {
		return apperrors.Newf(apperrors.KindNotFound, "user with email %s not found", email)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not look up user", err)
	}

	oldPicture := user.ProfilePictureLocation
	if err := r.assets.Exists(in.ProfilePictureLocation); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not hash password", err)
	}

	res, err := r.store.UpdateOne(ctx, storage.CollectionUsers,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"firstName":              firstName,
			"lastName":               lastName,
			"email":                  email,
			"phoneNumber":            phoneNumber,
			"password":               string(hash),
			"reviewIds":              reviewIDs,
			"profilePictureLocation": in.ProfilePictureLocation,
			"drinkReserved":          in.DrinkReserved,
			"role":                   role,
		}})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not update user", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "failed to update user with email %s", email)
	}

	// Cleanup runs after the record update has been persisted; a failure here
	// leaves the record updated and is surfaced as ASSET_CLEANUP.
	if oldPicture != "" {
		if err := r.assets.Remove(oldPicture); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := r.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	email, err := validation.Email(email)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.store.FindOne(ctx, storage.CollectionUsers, bson.M{"email": email}, &user)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "user with email %s not found", email)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up user", err)
	}
	return user.Profile(), nil
}

func (r *userRepository) GetIDByEmail(ctx context.Context, email string) (string, error) {
	profile, err := r.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return profile.UserID, nil
}

func (r *userRepository) GetPassword(ctx context.Context, userID string) (string, error) {
	user, err := r.findByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Password, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Find(ctx, storage.CollectionUsers, bson.M{}, &users); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not list users", err)
	}
	return users, nil
}

func (r *userRepository) GetReviewIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ReviewIDs == nil {
		return []string{}, nil
	}
	return user.ReviewIDs, nil
}

func (r *userRepository) AddReview(ctx context.Context, reviewID, userID string) error {
	reviewID, err := validation.ID(reviewID, "reviewId")
	if err != nil {
		return err
	}

	user, err := r.findByID(ctx, userID)
	if err != nil {
		return err
	}

	res, err := r.store.UpdateOne(ctx, storage.CollectionUsers,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"reviewIds": append(user.ReviewIDs, reviewID)}})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not add review to user", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "could not add review %s to user", reviewID)
	}
	return nil
}

// RemoveReview removes the first matching id from the user's reviewIds. A call
// for an id that is already absent writes an unchanged list, which the store
// reports as zero modified documents, so the second call fails.
func (r *userRepository) RemoveReview(ctx context.Context, reviewID, userID string) error {
	reviewID, err := validation.ID(reviewID, "reviewId")
	if err != nil {
		return err
	}

	user, err := r.findByID(ctx, userID)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(user.ReviewIDs))
	removed := false
	for _, id := range user.ReviewIDs {
		if !removed && id == reviewID {
			removed = true
			continue
		}
		remaining = append(remaining, id)
	}

	res, err := r.store.UpdateOne(ctx, storage.CollectionUsers,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"reviewIds": remaining}})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not remove review from user", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "could not delete review %s from user", reviewID)
	}
	return nil
}

// ReserveDrink appends a reservation to the user and increments the drink's
// counter. The two writes are not transactional; Reconciler repairs drift
// between them.
func (r *userRepository) ReserveDrink(ctx context.Context, userID, drinkID string) (*models.ReservedDrink, error) {
	user, err := r.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	drinkOID, err := validation.ObjectID(drinkID, "drinkId")
	if err != nil {
		return nil, err
	}

	var drink models.Drink
	err = r.store.FindOne(ctx, storage.CollectionDrinks, bson.M{"_id": drinkOID}, &drink)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "drink with id %s not found", drinkID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up drink", err)
	}

	if !drink.Available {
		return nil, apperrors.Newf(apperrors.KindUnavailable, "drink with id %s is not available", drinkID)
	}

	reserved := models.ReservedDrink{DrinkID: drinkID, Timestamp: validation.CurrentTimestamp()}
	res, err := r.store.UpdateOne(ctx, storage.CollectionUsers,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"drinkReserved": append(user.DrinkReserved, reserved)}})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not record reservation", err)
	}
	if res.ModifiedCount == 0 {
		return nil, apperrors.Newf(apperrors.KindPersistence, "failed to reserve drink for user with id %s", userID)
	}

	res, err = r.store.UpdateOne(ctx, storage.CollectionDrinks,
		bson.M{"_id": drink.ID},
		bson.M{"$set": bson.M{"reservedCounts": drink.ReservedCounts + 1}})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not update reserved count", err)
	}
	if res.ModifiedCount == 0 {
		return nil, apperrors.Newf(apperrors.KindPersistence, "failed to update reserved count for drink %s", drinkID)
	}

	return &reserved, nil
}

func (r *userRepository) GetReservations(ctx context.Context, userID string) ([]models.ReservedDrink, error) {
	user, err := r.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reservations := make([]models.ReservedDrink, len(user.DrinkReserved))
	copy(reservations, user.DrinkReserved)
	sort.SliceStable(reservations, func(i, j int) bool {
		a, _ := time.Parse(time.RFC3339, reservations[i].Timestamp)
		b, _ := time.Parse(time.RFC3339, reservations[j].Timestamp)
		return a.Before(b)
	})
	return reservations, nil
}

func (r *userRepository) findByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := validation.ObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.store.FindOne(ctx, storage.CollectionUsers, bson.M{"_id": oid}, &user)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "user with id %s not found", userID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up user", err)
	}
	return &user, nil
}
