package data

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nadiraputri/seruput/internal/storage"
)

func newTestRepositories(t *testing.T) (*Repositories, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewRepositories(store, t.TempDir(), zerolog.Nop()), store
}

func createTestUser(t *testing.T, repos *Repositories, email string) string {
	t.Helper()
	userID, err := repos.Users.Create(context.Background(), NewUser{
		FirstName:   "Nadya",
		LastName:    "Putri",
		Email:       email,
		PhoneNumber: "555-123-4567",
		Password:    "kopisusu123",
		Role:        "user",
	})
	require.NoError(t, err)
	return userID
}

func createTestDrink(t *testing.T, repos *Repositories, name string, available bool) string {
	t.Helper()
	drinkID, err := repos.Drinks.Create(context.Background(), NewDrink{
		Name:      name,
		Available: available,
	})
	require.NoError(t, err)
	return drinkID
}
