package auth

import (
	"testing"
	"time"

	"vigil/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "vigil-test",
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 42, 7, "guard@example.com", "GUARD")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.CompanyID != 7 {
		t.Errorf("ids = (%d, %d), want (42, 7)", claims.UserID, claims.CompanyID)
	}
	if claims.Email != "guard@example.com" || claims.Role != "GUARD" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 42, 7, "guard@example.com", "GUARD")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := testJWTConfig()
	other.AccessSecret = "different"
	if _, err := ParseAccessToken(other, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 42, 7, "guard@example.com", "GUARD")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	if _, err := ParseAccessToken(testJWTConfig(), "not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := ParseRefreshToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Errorf("user id = %d, want 42", id)
	}
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	refresh, err := GenerateRefreshToken(cfg, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAccessToken(cfg, refresh); err != ErrInvalidToken {
		t.Fatalf("refresh token must not parse as access token, got %v", err)
	}
}
