package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundtrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateJWT("secret", userID, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Issuer != "campaignforge" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT("other", token); err == nil {
		t.Errorf("expected parse failure with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", uuid.New(), time.Nanosecond)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Errorf("expected parse failure for expired token")
	}
}
