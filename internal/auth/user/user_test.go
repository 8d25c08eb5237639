package user

import (
	"errors"
	"testing"
	"time"
)

func TestNewUserDefaults(t *testing.T) {
	input := NewUserInput{Username: "alice"}
	_, err := NewUser(input, nil, nil)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	created, err := NewUser(input, nil, func() (string, error) { return "user-1", nil })
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if created.ID != "user-1" {
		t.Fatalf("expected id user-1, got %q", created.ID)
	}
	if created.SecretDigest != "" {
		t.Fatalf("expected passwordless user, got digest %q", created.SecretDigest)
	}

	_, err = NewUser(input, nil, func() (string, error) { return "", errors.New("id generator error") })
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewUserKeepsCaseAndTrimsWhitespace(t *testing.T) {
	fixedTime := time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)
	input := NewUserInput{Username: "  Alice  ", SecretDigest: "digest-1"}

	created, err := NewUser(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "user-123", nil
	})
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	if created.Username != "Alice" {
		t.Fatalf("expected case preserved, got %q", created.Username)
	}
	if created.SecretDigest != "digest-1" {
		t.Fatalf("expected digest kept, got %q", created.SecretDigest)
	}
	if !created.CreatedAt.Equal(fixedTime) || !created.UpdatedAt.Equal(fixedTime) {
		t.Fatal("expected timestamps to match fixed time")
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "alice", wantErr: nil},
		{name: "valid min length", input: "abc", wantErr: nil},
		{name: "valid mixed case", input: "Alice", wantErr: nil},
		{name: "valid multibyte", input: "åsa", wantErr: nil},
		{name: "empty", input: "", wantErr: ErrEmptyUsername},
		{name: "too short", input: "ab", wantErr: ErrInvalidUsername},
		{name: "single char", input: "a", wantErr: ErrInvalidUsername},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.input)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNormalizeNewUserInputRejectsBlank(t *testing.T) {
	_, err := NormalizeNewUserInput(NewUserInput{Username: "   "})
	if !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected %v, got %v", ErrEmptyUsername, err)
	}
}
