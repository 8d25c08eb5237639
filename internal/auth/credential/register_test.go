package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/charkeep/internal/auth/user"
	"github.com/louisbranch/charkeep/internal/storage"
)

func TestRegisterPasswordlessAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	created, err := svc.Register(context.Background(), "alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.SecretDigest != "" {
		t.Fatalf("expected passwordless account, got digest %q", created.SecretDigest)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(store.users))
	}
}

func TestRegisterHashesSuppliedSecret(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	created, err := svc.Register(context.Background(), "bob", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.SecretDigest == "" {
		t.Fatal("expected digest for secret-protected account")
	}
	if created.SecretDigest == "pw1" {
		t.Fatal("digest must not be the plaintext secret")
	}
	if !testHasher().Verify("pw1", created.SecretDigest) {
		t.Fatal("expected digest to verify against the original secret")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "alice", "")
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected no new user, got %d users", len(store.users))
	}
}

func TestRegisterUsernamesAreCaseSensitive(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "alice", "")
	svc := newTestService(store)

	created, err := svc.Register(context.Background(), "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Username != "Alice" {
		t.Fatalf("expected case preserved, got %q", created.Username)
	}
}

func TestRegisterValidatesBeforeStoreAccess(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "ab", "pw1")
	if !errors.Is(err, user.ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if store.lookups != 0 {
		t.Fatalf("expected no store access for invalid input, got %d lookups", store.lookups)
	}
}

func TestRegisterRacingDuplicateInsert(t *testing.T) {
	// Two registrations can both pass the pre-check; the store's
	// uniqueness constraint turns the losing insert into the same error.
	store := newFakeUserStore()
	store.putErr = storage.ErrAlreadyExists
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "alice", "")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterThenAuthenticateScenarios(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	// Passwordless registration: name-only login works, any secret fails.
	if _, err := svc.Register(ctx, "alice", ""); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", ""); err != nil {
		t.Fatalf("authenticate alice: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Secret-protected registration: the secret is mandatory and checked.
	if _, err := svc.Register(ctx, "bob", "pw1"); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob", "pw1"); err != nil {
		t.Fatalf("authenticate bob: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
