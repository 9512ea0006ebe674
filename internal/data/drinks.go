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

// NewDrink carries the fields for adding a drink to the menu.
type NewDrink struct {
	Name      string
	Available bool
}

// DrinkRepository covers the drinks collection. Reservation bookkeeping on
// drinks (reservedCounts) belongs to UserRepository.ReserveDrink, not here.
type DrinkRepository interface {
	Create(ctx context.Context, in NewDrink) (string, error)
	GetByID(ctx context.Context, drinkID string) (*models.Drink, error)
	GetAll(ctx context.Context) ([]models.Drink, error)
	SetAvailability(ctx context.Context, drinkID string, available bool) error
}

type drinkRepository struct {
	store storage.Store
	log   zerolog.Logger
}

// NewDrinkRepository creates a DrinkRepository on the given store handle.
func NewDrinkRepository(store storage.Store, log zerolog.Logger) DrinkRepository {
	return &drinkRepository{
		store: store,
		log:   log.With().Str("repository", "drinks").Logger(),
	}
}

func (r *drinkRepository) Create(ctx context.Context, in NewDrink) (string, error) {
	name, err := validation.Name(in.Name, "name")
	if err != nil {
		return "", err
	}

	drink := models.Drink{
		Name:           name,
		Available:      in.Available,
		ReservedCounts: 0,
	}

	res, err := r.store.InsertOne(ctx, storage.CollectionDrinks, drink)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindPersistence, "could not add drink", err)
	}
	if !res.Acknowledged || res.InsertedID.IsZero() {
		return "", apperrors.New(apperrors.KindPersistence, "could not add drink")
	}
	return res.InsertedID.Hex(), nil
}

func (r *drinkRepository) GetByID(ctx context.Context, drinkID string) (*models.Drink, error) {
	oid, err := validation.ObjectID(drinkID, "drinkId")
	if err != nil {
		return nil, err
	}

	var drink models.Drink
	err = r.store.FindOne(ctx, storage.CollectionDrinks, bson.M{"_id": oid}, &drink)
	if errors.Is(err, storage.ErrNoDocuments) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "drink with id %s not found", drinkID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not look up drink", err)
	}
	return &drink, nil
}

func (r *drinkRepository) GetAll(ctx context.Context) ([]models.Drink, error) {
	var drinks []models.Drink
	if err := r.store.Find(ctx, storage.CollectionDrinks, bson.M{}, &drinks); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "could not list drinks", err)
	}
	return drinks, nil
}

func (r *drinkRepository) SetAvailability(ctx context.Context, drinkID string, available bool) error {
	drink, err := r.GetByID(ctx, drinkID)
	if err != nil {
		return err
	}
	if drink.Available == available {
		return nil
	}

	res, err := r.store.UpdateOne(ctx, storage.CollectionDrinks,
		bson.M{"_id": drink.ID},
		bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "could not update drink availability", err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.Newf(apperrors.KindPersistence, "failed to update availability for drink %s", drinkID)
	}
	return nil
}
