package config

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadConfig()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataFile != "vetscribe_data.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.JWTExpirationMinutes != 480 {
		t.Errorf("JWTExpirationMinutes = %d, want 480", cfg.JWTExpirationMinutes)
	}
	if cfg.EnableDentalCharts {
		t.Error("dental charts must be off by default")
	}
	if cfg.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.ChatModel != "gpt-4" || cfg.OpenAI.TranscribeModel != "whisper-1" {
		t.Errorf("models = %q/%q", cfg.OpenAI.ChatModel, cfg.OpenAI.TranscribeModel)
	}
	if cfg.OpenAI.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want 90s", cfg.OpenAI.RequestTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/clinic.json")
	t.Setenv("OPENAI_CHAT_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "30")
	t.Setenv("ENABLE_DENTAL_CHARTS", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" || cfg.DataFile != "/tmp/clinic.json" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.OpenAI.RequestTimeout)
	}
	if !cfg.EnableDentalCharts {
		t.Error("ENABLE_DENTAL_CHARTS=true not honored")
	}
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JWT_EXPIRATION_MINUTES", "eight hours")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric JWT_EXPIRATION_MINUTES")
	}
}

func TestLoadOperatorHashesPlainPassword(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPERATOR_EMAIL", "doc@clinic.local")
	t.Setenv("OPERATOR_PASSWORD", "hunter2")
	t.Setenv("OPERATOR_PASSWORD_HASH", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Operator.Email != "doc@clinic.local" {
		t.Errorf("Email = %q", cfg.Operator.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.Operator.PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestLoadOperatorPrefersPrecomputedHash(t *testing.T) {
	precomputed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPERATOR_PASSWORD_HASH", string(precomputed))
	t.Setenv("OPERATOR_PASSWORD", "ignored")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Operator.PasswordHash != string(precomputed) {
		t.Error("precomputed hash must take precedence over OPERATOR_PASSWORD")
	}
}
