package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("festival-2026", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "festival-2026" {
		t.Fatal("hash equals the plaintext")
	}
	if !VerifyPassword(hash, "festival-2026") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "festival-2027") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "festival-2026") {
		t.Error("garbage hash accepted")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	a := HashRefreshRaw("token-one")
	b := HashRefreshRaw("token-one")
	if a != b {
		t.Error("hashing is not deterministic")
	}
	if a == HashRefreshRaw("token-two") {
		t.Error("different tokens hash to the same value")
	}
	if len(a) != 64 { // sha256 hex
		t.Errorf("hash length = %d, want 64", len(a))
	}
}

func TestNewRefreshToken(t *testing.T) {
	tok, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(tok.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96", len(tok.Raw))
	}
	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if tok.Raw == other.Raw {
		t.Error("two tokens collided")
	}
}
