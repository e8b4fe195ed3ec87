package utils

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short1"); err != ErrPasswordLength {
		t.Errorf("Expected ErrPasswordLength for 6 chars, got %v", err)
	}
	if err := ValidatePassword(strings.Repeat("a", 21)); err != ErrPasswordLength {
		t.Errorf("Expected ErrPasswordLength for 21 chars, got %v", err)
	}
	if err := ValidatePassword("goodpass"); err != nil {
		t.Errorf("Expected nil for valid password, got %v", err)
	}
	// boundary values
	if err := ValidatePassword(strings.Repeat("a", MinPasswordLen)); err != nil {
		t.Errorf("Expected nil at min length, got %v", err)
	}
	if err := ValidatePassword(strings.Repeat("a", MaxPasswordLen)); err != nil {
		t.Errorf("Expected nil at max length, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("mysecret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "mysecret1" {
		t.Error("Hash should not equal the plaintext")
	}
	if !CheckPasswordHash("mysecret1", hash) {
		t.Error("Correct password should verify")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Error("Wrong password should not verify")
	}
}

func TestNormalize(t *testing.T) {
	if got := NormalizeUsername("  alice  "); got != "alice" {
		t.Errorf("NormalizeUsername = %q, want %q", got, "alice")
	}
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "alice@example.com")
	}
}
