package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "pw1" {
		t.Fatal("digest must not equal the plaintext secret")
	}
	if !hasher.Verify("pw1", digest) {
		t.Fatal("expected matching secret to verify")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatal("expected mismatched secret to fail")
	}
}

func TestHashSaltsEachDigest(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	first, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct digests for the same secret")
	}
}

func TestVerifyRejectsMalformedDigest(t *testing.T) {
	hasher := BcryptHasher{}
	if hasher.Verify("pw1", "not-a-bcrypt-digest") {
		t.Fatal("expected malformed digest to fail verification")
	}
}

func TestDefaultCostApplied(t *testing.T) {
	hasher := BcryptHasher{}
	digest, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, cost)
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected bcrypt digest format, got %q", digest)
	}
}
