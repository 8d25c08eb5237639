// Package user provides the principal identity domain.
package user

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
	"github.com/louisbranch/charkeep/internal/platform/id"
)

// minUsernameLength is the registration floor for usernames.
const minUsernameLength = 3

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = apperrors.New(apperrors.CodeUserEmptyUsername, "username is required")
	// ErrInvalidUsername indicates a username shorter than the minimum length.
	ErrInvalidUsername = apperrors.New(apperrors.CodeUserInvalidUsername,
		fmt.Sprintf("username must be at least %d characters", minUsernameLength))
)

// User represents an account capable of authenticating and owning records.
//
// Usernames are unique and case-sensitive; two users may differ only by
// case. A user's authentication mode is fixed at creation: an empty
// SecretDigest means the account is passwordless and stays that way.
type User struct {
	ID           string
	Username     string
	SecretDigest string // empty means passwordless
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserInput describes the data needed to create a user.
type NewUserInput struct {
	Username     string
	SecretDigest string
}

// ValidateUsername enforces the registration username policy.
// Usernames are compared case-sensitively, so no case folding happens here.
func ValidateUsername(s string) error {
	if s == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(s) < minUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

// NewUser creates a durable user identity from validated input.
//
// This is the canonical point where an untrusted username becomes a stable
// identity; the authentication mode is determined here, once, by whether a
// secret digest was supplied.
func NewUser(input NewUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeNewUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     normalized.Username,
		SecretDigest: normalized.SecretDigest,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeNewUserInput trims surrounding whitespace and validates input.
func NormalizeNewUserInput(input NewUserInput) (NewUserInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := ValidateUsername(input.Username); err != nil {
		return NewUserInput{}, err
	}
	return input, nil
}
