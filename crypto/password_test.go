package crypto

import (
	"strings"
	"testing"
)

// Requirement: Hash produces a bcrypt digest that Verify accepts for the
// original password and rejects for any other password.
func TestBcrypt_HashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{name: "correct password", password: "Secret123", attempt: "Secret123", want: true},
		{name: "wrong password", password: "Secret123", attempt: "wrong", want: false},
		{name: "case sensitive", password: "Secret123", attempt: "secret123", want: false},
		{name: "empty attempt", password: "Secret123", attempt: "", want: false},
		{name: "unicode password", password: "pässwörd123", attempt: "pässwörd123", want: true},
	}

	hasher := NewBcrypt()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hash, err := hasher.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
				t.Errorf("Hash() = %q, want bcrypt digest", hash)
			}

			ok, err := hasher.Verify(test.attempt, hash)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.want {
				t.Errorf("Verify(%q) = %v, want %v", test.attempt, ok, test.want)
			}
		})
	}
}

// Requirement: two hashes of the same password differ (random salt), and
// both still verify.
func TestBcrypt_SaltedDigests(t *testing.T) {
	hasher := NewBcrypt()

	h1, err := hasher.Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should not be equal")
	}
	for _, h := range []string{h1, h2} {
		ok, err := hasher.Verify("Secret123", h)
		if err != nil || !ok {
			t.Errorf("Verify() = (%v, %v), want (true, nil)", ok, err)
		}
	}
}

// Requirement: a corrupted stored digest fails closed with an error rather
// than degrading to a weaker comparison.
func TestBcrypt_MalformedDigest(t *testing.T) {
	hasher := NewBcrypt()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty digest", hash: ""},
		{name: "plaintext stored", hash: "Secret123"},
		{name: "truncated digest", hash: "$2a$10$tooShort"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok, err := hasher.Verify("Secret123", test.hash)
			if ok {
				t.Error("Verify() accepted a malformed digest")
			}
			if err == nil {
				t.Error("Verify() should report malformed digests")
			}
		})
	}
}
