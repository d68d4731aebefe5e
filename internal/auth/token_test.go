package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("s3cret-token")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if hash == "s3cret-token" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyToken(hash, "s3cret-token") {
		t.Error("expected token to verify")
	}
	if VerifyToken(hash, "wrong-token") {
		t.Error("wrong token must not verify")
	}
}

func TestHashTokenRejectsEmpty(t *testing.T) {
	if _, err := HashToken("   "); err == nil {
		t.Fatal("expected error for blank token")
	}
}

func TestVerifyTokenEmptyHash(t *testing.T) {
	if VerifyToken("", "anything") {
		t.Error("empty hash must never verify")
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	b, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if a == b {
		t.Error("two generated tokens should differ")
	}
	if len(a) < 30 {
		t.Errorf("token unexpectedly short: %q", a)
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("token not URL-safe: %q", a)
	}
}
