package utils

import (
	"strings"
	"testing"

	"vetscribe-server/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 60,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken("vet@clinic.local", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "vet@clinic.local" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected a token id claim")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken("vet@clinic.local", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpirationMinutes = -1

	token, err := GenerateToken("vet@clinic.local", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = ValidateToken(token, cfg.JWTSecret)
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %v, want expiry failure", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("definitely.not.ajwt", "test-secret"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
