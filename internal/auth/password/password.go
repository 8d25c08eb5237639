// Package password provides one-way secret hashing for credentials.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the bcrypt work factor used for stored digests.
const DefaultCost = 10

// Hasher hashes secrets into one-way digests and verifies them.
// Implementations must salt internally; digests are never comparable
// across calls.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// BcryptHasher implements Hasher over bcrypt.
type BcryptHasher struct {
	// Cost overrides the bcrypt work factor; zero means DefaultCost.
	Cost int
}

// Hash computes a salted bcrypt digest of secret.
func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches the stored digest.
func (h BcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
