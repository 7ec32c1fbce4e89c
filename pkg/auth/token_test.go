package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/enums"
)

var testConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "verto-inventory",
	ExpirationMinutes: 60,
}

func testPayload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     enums.RoleAdmin,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	payload := testPayload()

	token, err := MintAccessToken(testConfig, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(testConfig, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("expected user id %s, got %s", payload.UserID, claims.UserID)
	}
	if claims.Username != "alice" || claims.Role != enums.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestMintRejectsBadConfig(t *testing.T) {
	payload := testPayload()

	cases := []struct {
		name string
		cfg  config.JWTConfig
	}{
		{"missing secret", config.JWTConfig{Issuer: "i", ExpirationMinutes: 60}},
		{"missing issuer", config.JWTConfig{Secret: "s", ExpirationMinutes: 60}},
		{"zero expiration", config.JWTConfig{Secret: "s", Issuer: "i"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, time.Now(), payload); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	payload := testPayload()
	payload.Role = enums.Role("superuser")

	if _, err := MintAccessToken(testConfig, time.Now(), payload); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testConfig, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testConfig
	other.Secret = "other-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := MintAccessToken(testConfig, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testConfig
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected issuer error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(testConfig, issued, testPayload())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(testConfig, token); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken(testConfig, "not.a.token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
