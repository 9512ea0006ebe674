// Package validation holds the pure format checks every repository operation
// runs before touching the store. Each function returns the normalized value
// or a VALIDATION-kind error naming the offending field.
package validation

import (
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nadiraputri/seruput/internal/apperrors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{3}-?[0-9]{3}-?[0-9]{4}$`)
)

// ID checks that value is a well-formed document id (24-char hex).
func ID(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.Newf(apperrors.KindValidation, "%s must not be empty", field)
	}
	if _, err := primitive.ObjectIDFromHex(value); err != nil {
		return "", apperrors.Newf(apperrors.KindValidation, "%s is not a valid id", field)
	}
	return value, nil
}

// ObjectID parses value into an ObjectID after running the ID check.
func ObjectID(value, field string) (primitive.ObjectID, error) {
	value, err := ID(value, field)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := primitive.ObjectIDFromHex(value)
	return id, nil
}

// Name checks a person-name field: 2-32 characters, letters, spaces, ' and -.
func Name(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || len(value) > 32 {
		return "", apperrors.Newf(apperrors.KindValidation, "%s must be between 2 and 32 characters", field)
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '-' {
			return "", apperrors.Newf(apperrors.KindValidation, "%s contains invalid characters", field)
		}
	}
	return value, nil
}

// Email normalizes and checks an email address.
func Email(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(value) {
		return "", apperrors.New(apperrors.KindValidation, "email is not a valid email address")
	}
	return value, nil
}

// PhoneNumber checks a 10-digit phone number, dashes optional.
func PhoneNumber(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !phonePattern.MatchString(value) {
		return "", apperrors.New(apperrors.KindValidation, "phoneNumber must be a 10-digit phone number")
	}
	return value, nil
}

// Password checks the plain-text password shape before hashing: at least 8
// characters with one letter and one digit, no spaces.
func Password(value string) (string, error) {
	if len(value) < 8 {
		return "", apperrors.New(apperrors.KindValidation, "password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			return "", apperrors.New(apperrors.KindValidation, "password must not contain spaces")
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "", apperrors.New(apperrors.KindValidation, "password must contain a letter and a digit")
	}
	return value, nil
}

// Rating checks a review rating, an integer from 1 to 5.
func Rating(value int) (int, error) {
	if value < 1 || value > 5 {
		return 0, apperrors.New(apperrors.KindValidation, "rating must be between 1 and 5")
	}
	return value, nil
}

// Role normalizes and checks the role enum.
func Role(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value != RoleUser && value != RoleAdmin {
		return "", apperrors.Newf(apperrors.KindValidation, "role must be %q or %q", RoleUser, RoleAdmin)
	}
	return value, nil
}

// ReviewText checks the free-text body of a review.
func ReviewText(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.New(apperrors.KindValidation, "reviewText must not be empty")
	}
	if len(value) > 2000 {
		return "", apperrors.New(apperrors.KindValidation, "reviewText must be at most 2000 characters")
	}
	return value, nil
}

// DateTime checks an RFC 3339 timestamp string.
func DateTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return "", apperrors.New(apperrors.KindValidation, "timestamp must be an RFC 3339 date-time")
	}
	return value, nil
}

// IDArray checks every element of a list of document ids.
func IDArray(values []string, field string) ([]string, error) {
	checked := make([]string, 0, len(values))
	for _, v := range values {
		id, err := ID(v, field)
		if err != nil {
			return nil, err
		}
		checked = append(checked, id)
	}
	return checked, nil
}

// FileExists checks that path points at an existing regular file. An empty
// path is allowed and means "no picture".
func FileExists(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", apperrors.Newf(apperrors.KindValidation, "file %s does not exist", path)
	}
	return path, nil
}

// CurrentTimestamp returns the current UTC time in the format stored on
// reviews and reservations.
func CurrentTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
