// Package session issues and resolves session identity for HTTP requests.
//
// Handlers depend only on the Resolver seam; the token mechanics below are
// one implementation of it. A request either resolves to a stable user id
// or to nothing, and nothing downstream re-authenticates that id.
package session

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "charkeep"

// DefaultTTL bounds session lifetime when no TTL is configured.
const DefaultTTL = 30 * 24 * time.Hour

var errInvalidToken = errors.New("invalid session token")

// Manager mints and parses signed session tokens.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type claims struct {
	jwt.RegisteredClaims
}

// NewManager creates a token manager signing with the given HMAC key.
func NewManager(key []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{key: key, ttl: ttl, now: time.Now}
}

// NewRandomKey generates a signing key for deployments that do not pin one.
// Sessions minted with an ephemeral key do not survive a restart.
func NewRandomKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Mint signs a session token carrying userID as its subject.
func (m *Manager) Mint(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	})
	return token.SignedString(m.key)
}

// Parse verifies a session token and returns the user id it carries.
func (m *Manager) Parse(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithLeeway(30*time.Second),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", errInvalidToken
	}
	parsedClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return "", errInvalidToken
	}
	userID := strings.TrimSpace(parsedClaims.Subject)
	if userID == "" {
		return "", errInvalidToken
	}
	return userID, nil
}
