package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	DataFile             string
	JWTSecret            string
	JWTExpirationMinutes int
	Operator             OperatorConfig
	OpenAI               OpenAIConfig
	EnableDentalCharts   bool
}

// OperatorConfig holds the single operator's sign-in credentials.
type OperatorConfig struct {
	Email        string
	PasswordHash string
}

// OpenAIConfig holds the generation/transcription service settings.
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	TranscribeModel string
	RequestTimeout  time.Duration
}

// ErrMissingAPIKey halts startup when the OpenAI credential is absent;
// the app never runs degraded without it.
var ErrMissingAPIKey = errors.New(
	"OPENAI_API_KEY is required. Add it to your environment or a .env file:\n" +
		"  OPENAI_API_KEY=your_api_key_here\n" +
		"Get an API key from https://platform.openai.com/api-keys")

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "480"))
	if err != nil {
		return nil, errors.New("invalid JWT_EXPIRATION_MINUTES")
	}

	timeoutSec, err := strconv.Atoi(getEnv("OPENAI_TIMEOUT_SECONDS", "90"))
	if err != nil {
		return nil, errors.New("invalid OPENAI_TIMEOUT_SECONDS")
	}

	operator, err := loadOperator()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Origin:               getEnv("ORIGIN", "http://localhost:4200"),
		Environment:          getEnv("APP_ENV", "development"),
		DataFile:             getEnv("DATA_FILE", "vetscribe_data.json"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Operator:             operator,
		OpenAI: OpenAIConfig{
			APIKey:          apiKey,
			BaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4"),
			TranscribeModel: getEnv("OPENAI_TRANSCRIBE_MODEL", "whisper-1"),
			RequestTimeout:  time.Duration(timeoutSec) * time.Second,
		},
		EnableDentalCharts: getEnv("ENABLE_DENTAL_CHARTS", "false") == "true",
	}, nil
}

// loadOperator resolves the operator credentials. A pre-hashed password takes
// precedence; a plain OPERATOR_PASSWORD is hashed at startup for development
// setups.
func loadOperator() (OperatorConfig, error) {
	op := OperatorConfig{
		Email:        getEnv("OPERATOR_EMAIL", "vet@clinic.local"),
		PasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
	}

	if op.PasswordHash == "" {
		plain := getEnv("OPERATOR_PASSWORD", "vetscribe")
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return OperatorConfig{}, err
		}
		op.PasswordHash = string(hashed)
	}

	return op, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
