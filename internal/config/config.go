package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"minpaku-ai/internal/property"
)

// Config holds all configuration for the application.
type Config struct {
	// Chat completion provider (OpenAI-compatible API).
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	// Embedding provider (OpenAI-compatible API). All stored vectors and
	// query vectors must come from the same model, or similarity scores
	// are meaningless.
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string

	DBPath           string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	Property property.Config
}

// Load reads configuration from environment variables and returns a Config.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels so the binary can be started from cmd/api.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
		LLMModelName:       getEnv("LLM_MODEL", "deepseek-chat"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		EmbeddingAPIKey:    os.Getenv("EMBEDDING_API_KEY"),
		DBPath:             getEnv("DB_PATH", "./data/minpaku-ai.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "documents"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// Must match the output dimension of the embedding model. 1536 is the
	// dimension of text-embedding-3-small; if the model changes, the Qdrant
	// collection has to be recreated with the new size.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "1536")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if cfg.EmbeddingAPIKey == "" {
		return nil, fmt.Errorf("EMBEDDING_API_KEY is required")
	}

	cfg.Property = loadProperty()

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadProperty returns the built-in property facts with per-field environment
// overrides, so the same binary can be deployed for a different property
// without a rebuild.
func loadProperty() property.Config {
	p := property.Default()
	p.Name = getEnv("PROPERTY_NAME", p.Name)
	p.Address = getEnv("PROPERTY_ADDRESS", p.Address)
	p.CheckinTime = getEnv("PROPERTY_CHECKIN_TIME", p.CheckinTime)
	p.CheckoutTime = getEnv("PROPERTY_CHECKOUT_TIME", p.CheckoutTime)
	p.WifiPassword = getEnv("PROPERTY_WIFI_PASSWORD", p.WifiPassword)
	p.EmergencyContact = getEnv("PROPERTY_EMERGENCY_CONTACT", p.EmergencyContact)
	return p
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
