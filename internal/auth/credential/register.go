package credential

import (
	"context"
	"errors"

	"github.com/louisbranch/charkeep/internal/auth/user"
	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
	"github.com/louisbranch/charkeep/internal/storage"
)

// ErrUsernameTaken indicates a registration collided with an existing name.
var ErrUsernameTaken = apperrors.New(apperrors.CodeUserAlreadyExists, "username already taken")

// Register provisions a new principal. An empty secret creates a
// passwordless account; otherwise the secret is digested before storage
// and the plaintext is dropped.
//
// The pre-check below serves the common case; the store's uniqueness
// constraint is the authoritative guard, so a racing duplicate insert
// still surfaces as ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, secret string) (user.User, error) {
	input, err := user.NormalizeNewUserInput(user.NewUserInput{Username: username})
	if err != nil {
		return user.User{}, err
	}

	_, err = s.users.GetUserByUsername(ctx, input.Username)
	if err == nil {
		return user.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.User{}, apperrors.Wrap(apperrors.CodeUnavailable, "look up user", err)
	}

	if secret != "" {
		digest, err := s.hasher.Hash(secret)
		if err != nil {
			return user.User{}, apperrors.Wrap(apperrors.CodeUnavailable, "hash secret", err)
		}
		input.SecretDigest = digest
	}

	created, err := user.NewUser(input, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}

	if err := s.users.PutUser(ctx, created); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, apperrors.Wrap(apperrors.CodeUnavailable, "put user", err)
	}
	return created, nil
}
