package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	email := "alice@example.com"

	token, err := GenerateToken(secret, email, 30*time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != email {
		t.Errorf("subject = %q, want %q", claims.Subject, email)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "alice@example.com", 30*time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestParseToken_Expired(t *testing.T) {
	secret := "test-secret"

	// craft an already-expired token
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-30 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	if _, err := ParseToken("test-secret", "not-a-jwt"); err == nil {
		t.Error("malformed token should not parse")
	}
}

func TestParseToken_MissingSubject(t *testing.T) {
	secret := "test-secret"

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Error("token without subject should not parse")
	}
}
