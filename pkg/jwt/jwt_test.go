package jwt

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", 30*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := manager.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %s", claims.Subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	other := NewJWTManager("other-secret", 30*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.VerifyToken(token); err == nil {
		t.Fatalf("expected signature verification failure")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := manager.VerifyToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 30*time.Minute, 7*24*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.VerifyToken(token); err == nil {
			t.Fatalf("expected malformed token %q to be rejected", token)
		}
	}
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute, time.Hour)

	access, err := manager.GenerateAccessToken(7)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	refresh, err := manager.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	accessClaims, err := manager.VerifyToken(access)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	refreshClaims, err := manager.VerifyToken(refresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}

	if !refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time) {
		t.Fatalf("refresh token must expire after access token")
	}
}
