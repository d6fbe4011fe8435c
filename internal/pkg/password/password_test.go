package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !Verify(hash, "s3cret1") {
		t.Fatalf("Verify should accept the original password")
	}
	if Verify(hash, "wrong") {
		t.Fatalf("Verify should reject a wrong password")
	}
}

func TestHash_Randomized(t *testing.T) {
	h1, err := Hash("s3cret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("s3cret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
}

func TestHash_InvalidCostFallsBack(t *testing.T) {
	hash, err := Hash("s3cret1", 99)
	if err != nil {
		t.Fatalf("Hash with out-of-range cost: %v", err)
	}
	if !Verify(hash, "s3cret1") {
		t.Fatalf("fallback-cost hash should verify")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash must not verify")
	}
}
