package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/charkeep/internal/auth/user"
	"github.com/louisbranch/charkeep/internal/storage"
)

const insertUserQuery = `
INSERT INTO users (id, username, secret_digest, created_at, updated_at)
VALUES (?, ?, ?, ?, ?);
`

const getUserQuery = `
SELECT id, username, secret_digest, created_at, updated_at
FROM users
WHERE id = ?;
`

const getUserByUsernameQuery = `
SELECT id, username, secret_digest, created_at, updated_at
FROM users
WHERE username = ?;
`

// PutUser inserts a user record. The unique index on username makes this
// the authoritative duplicate-name check; a constraint violation surfaces
// as storage.ErrAlreadyExists.
func (s *Store) PutUser(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, insertUserQuery,
		u.ID,
		u.Username,
		toNullString(u.SecretDigest),
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser fetches a user record by id.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return user.User{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return user.User{}, fmt.Errorf("user id is required")
	}

	return s.scanUser(s.sqlDB.QueryRowContext(ctx, getUserQuery, userID))
}

// GetUserByUsername fetches a user record by exact, case-sensitive name.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return user.User{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(username) == "" {
		return user.User{}, fmt.Errorf("username is required")
	}

	return s.scanUser(s.sqlDB.QueryRowContext(ctx, getUserByUsernameQuery, username))
}

func (s *Store) scanUser(row *sql.Row) (user.User, error) {
	var (
		u            user.User
		secretDigest sql.NullString
		createdAt    int64
		updatedAt    int64
	)
	err := row.Scan(&u.ID, &u.Username, &secretDigest, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}

	u.SecretDigest = secretDigest.String
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// toNullString maps empty strings to NULL columns.
func toNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
