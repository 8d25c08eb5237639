// Package storage defines the persistence contracts for users and characters.
package storage

import (
	"context"

	"github.com/louisbranch/charkeep/internal/auth/user"
	"github.com/louisbranch/charkeep/internal/character"
	"github.com/louisbranch/charkeep/internal/platform/errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates an insert collided with an existing record.
var ErrAlreadyExists = errors.New(errors.CodeAlreadyExists, "record already exists")

// UserStore persists principal records.
//
// Usernames are unique; PutUser returns ErrAlreadyExists when the username
// is already taken. The store enforces this with a uniqueness constraint,
// so the guarantee holds even when two registrations race past the
// application-level pre-check.
type UserStore interface {
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

// CharacterStore persists character records.
type CharacterStore interface {
	// PutCharacter inserts or replaces a character record.
	PutCharacter(ctx context.Context, c character.Character) error
	GetCharacter(ctx context.Context, characterID string) (character.Character, error)
	// ListCharactersByOwner returns the owner's characters, most recently
	// updated first.
	ListCharactersByOwner(ctx context.Context, ownerID string) ([]character.Character, error)
	DeleteCharacter(ctx context.Context, characterID string) error
}
