package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadiraputri/seruput/internal/apperrors"
)

func TestSaveUpload(t *testing.T) {
	root := t.TempDir()
	store := NewPictureStore(root, zerolog.Nop())

	t.Run("copies the bytes and removes the temporary file", func(t *testing.T) {
		temp := filepath.Join(t.TempDir(), "incoming")
		require.NoError(t, os.WriteFile(temp, []byte("fake image bytes"), 0o644))

		location, err := store.SaveUpload(UploadedFile{
			Path:     temp,
			MimeType: "image/png",
			Filename: "abc123",
		})
		require.NoError(t, err)
		assert.Equal(t, "pictures/abc123.png", location)

		stored, err := os.ReadFile(filepath.Join(root, "pictures", "abc123.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), stored)

		_, statErr := os.Stat(temp)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing temporary file is ASSET_WRITE", func(t *testing.T) {
		_, err := store.SaveUpload(UploadedFile{
			Path:     filepath.Join(t.TempDir(), "never-there"),
			MimeType: "image/jpeg",
			Filename: "nope",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAssetWrite))
	})
}

func TestRemoveAsset(t *testing.T) {
	root := t.TempDir()
	store := NewPictureStore(root, zerolog.Nop())

	t.Run("deletes a stored asset", func(t *testing.T) {
		full := filepath.Join(root, "pictures", "bye.png")
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))

		require.NoError(t, store.Remove("pictures/bye.png"))

		_, err := os.Stat(full)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing asset is ASSET_CLEANUP", func(t *testing.T) {
		err := store.Remove("pictures/bye.png")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAssetCleanup))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Remove(""))
	})
}

func TestAssetExists(t *testing.T) {
	root := t.TempDir()
	store := NewPictureStore(root, zerolog.Nop())

	t.Run("empty path means no picture", func(t *testing.T) {
		assert.NoError(t, store.Exists(""))
	})

	t.Run("missing file is VALIDATION", func(t *testing.T) {
		err := store.Exists("pictures/missing.png")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("existing file passes", func(t *testing.T) {
		full := filepath.Join(root, "pictures", "here.png")
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))

		assert.NoError(t, store.Exists("pictures/here.png"))
	})
}
