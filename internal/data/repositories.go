package data

import (
	"github.com/rs/zerolog"

	"github.com/nadiraputri/seruput/internal/storage"
)

// Repositories bundles the data layer behind one handle the HTTP layer can
// carry around.
type Repositories struct {
	Users      UserRepository
	Reviews    ReviewRepository
	Drinks     DrinkRepository
	Pictures   *PictureStore
	Reconciler *Reconciler
}

// NewRepositories wires the repositories onto a single store handle and a
// picture asset root.
func NewRepositories(store storage.Store, assetRoot string, log zerolog.Logger) *Repositories {
	pictures := NewPictureStore(assetRoot, log)
	users := NewUserRepository(store, pictures, log)
	return &Repositories{
		Users:      users,
		Reviews:    NewReviewRepository(store, users, pictures, log),
		Drinks:     NewDrinkRepository(store, log),
		Pictures:   pictures,
		Reconciler: NewReconciler(store, log),
	}
}
