package security

import (
	"testing"
	"time"

	"riwijobs/internal/common"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "coder", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Role != "coder" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a").Generate(common.NewUUID(), "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "coder", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret!") {
		t.Fatal("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
