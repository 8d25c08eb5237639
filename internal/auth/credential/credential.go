// Package credential implements credential verification and identity
// provisioning over the user store.
//
// Accounts follow an optional-secret policy: a user registered without a
// secret authenticates by name alone, and a user registered with one must
// always present it. The policy is fixed per account at registration.
package credential

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/charkeep/internal/auth/password"
	"github.com/louisbranch/charkeep/internal/auth/user"
	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
	"github.com/louisbranch/charkeep/internal/platform/id"
	"github.com/louisbranch/charkeep/internal/storage"
)

// ErrInvalidCredentials is the single rejection returned for every failed
// verification. Callers cannot tell an unknown name from a wrong secret,
// which keeps account enumeration off the login surface.
var ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid credentials")

// rejectReason records why verification failed. The reasons stay inside
// this package; the exported surface collapses them all into
// ErrInvalidCredentials.
type rejectReason int

const (
	rejectNone rejectReason = iota
	rejectUnknownUsername
	rejectSecretNotAccepted
	rejectSecretRequired
	rejectSecretMismatch
)

// Service verifies credentials and provisions identities.
type Service struct {
	users  storage.UserStore
	hasher password.Hasher

	clock       func() time.Time
	idGenerator func() (string, error)
}

// Option adjusts service construction.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator overrides the id source, for tests.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = gen }
}

// NewService creates a credential service over the given store and hasher.
func NewService(users storage.UserStore, hasher password.Hasher, opts ...Option) *Service {
	s := &Service{
		users:       users,
		hasher:      hasher,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate decides whether (username, secret) identifies a valid
// principal. An empty secret means no secret was offered.
//
// Every rejection surfaces as ErrInvalidCredentials; store failures are
// wrapped as unavailable and propagate unchanged.
func (s *Service) Authenticate(ctx context.Context, username, secret string) (user.User, error) {
	u, reason, err := s.authenticate(ctx, username, secret)
	if err != nil {
		return user.User{}, err
	}
	if reason != rejectNone {
		return user.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// authenticate evaluates the optional-secret policy. The branch order is
// the policy: lookup, passwordless match, unexpected secret, missing
// secret, digest comparison.
func (s *Service) authenticate(ctx context.Context, username, secret string) (user.User, rejectReason, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, rejectUnknownUsername, nil
		}
		return user.User{}, rejectNone, apperrors.Wrap(apperrors.CodeUnavailable, "look up user", err)
	}

	switch {
	case secret == "" && u.SecretDigest == "":
		return u, rejectNone, nil
	case secret != "" && u.SecretDigest == "":
		return user.User{}, rejectSecretNotAccepted, nil
	case secret == "" && u.SecretDigest != "":
		return user.User{}, rejectSecretRequired, nil
	}

	if !s.hasher.Verify(secret, u.SecretDigest) {
		return user.User{}, rejectSecretMismatch, nil
	}
	return u, rejectNone, nil
}
