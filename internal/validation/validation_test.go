package validation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nadiraputri/seruput/internal/apperrors"
)

func TestID(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	got, err := ID("  "+valid+"  ", "userId")
	require.NoError(t, err)
	assert.Equal(t, valid, got)

	for _, bad := range []string{"", "   ", "not-hex", "abc123"} {
		_, err := ID(bad, "userId")
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"Nadya", true},
		{"  Ayu Lestari ", true},
		{"O'Brien", true},
		{"Anne-Marie", true},
		{"N", false},
		{"Nadya99", false},
		{"", false},
	}
	for _, tt := range tests {
		_, err := Name(tt.input, "firstName")
		if tt.ok {
			assert.NoError(t, err, "input %q", tt.input)
		} else {
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", tt.input)
		}
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("  Nadya@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "nadya@example.com", got)

	for _, bad := range []string{"", "plain", "a@b", "a b@x.com"} {
		_, err := Email(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestPhoneNumber(t *testing.T) {
	for _, good := range []string{"555-123-4567", "5551234567"} {
		_, err := PhoneNumber(good)
		assert.NoError(t, err, "input %q", good)
	}
	for _, bad := range []string{"", "12345", "555-123-456789", "phone"} {
		_, err := PhoneNumber(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestPassword(t *testing.T) {
	for _, good := range []string{"kopisusu123", "Str0ngEnough"} {
		_, err := Password(good)
		assert.NoError(t, err, "input %q", good)
	}
	for _, bad := range []string{"", "short1", "alllettersonly", "123456789", "has space1"} {
		_, err := Password(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		_, err := Rating(rating)
		assert.NoError(t, err)
	}
	for _, bad := range []int{0, -1, 6, 100} {
		_, err := Rating(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %d", bad)
	}
}

func TestRole(t *testing.T) {
	got, err := Role(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, got)

	got, err = Role("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, got)

	for _, bad := range []string{"", "barista", "superadmin"} {
		_, err := Role(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestDateTime(t *testing.T) {
	_, err := DateTime("2026-01-15T08:30:00Z")
	assert.NoError(t, err)

	for _, bad := range []string{"", "yesterday", "2026-13-01T00:00:00Z"} {
		_, err := DateTime(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "input %q", bad)
	}
}

func TestIDArray(t *testing.T) {
	a, b := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	got, err := IDArray([]string{a, b}, "reviewIds")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)

	got, err = IDArray(nil, "reviewIds")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = IDArray([]string{a, "junk"}, "reviewIds")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestFileExists(t *testing.T) {
	got, err := FileExists("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = FileExists(filepath.Join(t.TempDir(), "missing.png"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	path := filepath.Join(t.TempDir(), "here.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	got, err = FileExists(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestCurrentTimestamp(t *testing.T) {
	stamp := CurrentTimestamp()
	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, 5*time.Second)
}
