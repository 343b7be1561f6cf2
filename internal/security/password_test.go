package security_test

import (
	"testing"

	"github.com/devlink/devlink/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	h1, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("expected different hashes for same plaintext (random salt)")
	}
	if !security.CheckPassword(h1, "secret1") {
		t.Fatal("correct password rejected")
	}
	if security.CheckPassword(h1, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if security.CheckPassword("not-a-bcrypt-hash", "secret1") {
		t.Fatal("malformed hash must not verify")
	}
}
