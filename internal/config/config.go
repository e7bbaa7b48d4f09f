package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"docchunk/internal/chunker"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath  string
	APIPort string

	LogLevel  slog.Level
	LogFormat string

	// Chunking defaults applied when a request does not override them
	ChunkSize              int
	OverlapPercentage      float64
	SizeUnit               chunker.SizeUnit
	TokenMethod            chunker.TokenMethod
	PreserveWordBoundaries bool
	BoundaryWindow         int

	// Exact token counting
	TokenizerEncoding string

	// Embedding support, disabled by default
	EmbeddingsEnabled  bool
	EmbeddingBaseURL   string
	EmbeddingAPIKey    string
	EmbeddingModelName string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", "./data/docchunk.db"),
		APIPort:           getEnv("API_PORT", "9000"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		TokenizerEncoding: getEnv("TOKENIZER_ENCODING", ""),
	}

	switch level := getEnv("LOG_LEVEL", "info"); level {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", level)
	}

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", chunker.DefaultChunkSize)
	if err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}

	cfg.OverlapPercentage, err = getEnvFloat("CHUNK_OVERLAP", chunker.DefaultOverlapPercentage)
	if err != nil {
		return nil, err
	}
	if cfg.OverlapPercentage < 0 || cfg.OverlapPercentage >= 1 {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, 1)")
	}

	cfg.BoundaryWindow, err = getEnvInt("BOUNDARY_WINDOW", chunker.DefaultBoundaryWindow)
	if err != nil {
		return nil, err
	}

	switch unit := getEnv("CHUNK_SIZE_UNIT", "tokens"); unit {
	case "characters":
		cfg.SizeUnit = chunker.Characters
	case "tokens":
		cfg.SizeUnit = chunker.Tokens
	default:
		return nil, fmt.Errorf("CHUNK_SIZE_UNIT must be characters or tokens, got %q", unit)
	}

	switch method := getEnv("TOKEN_METHOD", "simple"); method {
	case "simple":
		cfg.TokenMethod = chunker.Simple
	case "word_based":
		cfg.TokenMethod = chunker.WordBased
	case "advanced":
		cfg.TokenMethod = chunker.Advanced
	default:
		return nil, fmt.Errorf("TOKEN_METHOD must be simple, word_based or advanced, got %q", method)
	}

	cfg.PreserveWordBoundaries, err = getEnvBool("PRESERVE_WORD_BOUNDARIES", true)
	if err != nil {
		return nil, err
	}

	cfg.EmbeddingsEnabled, err = getEnvBool("EMBEDDINGS_ENABLED", false)
	if err != nil {
		return nil, err
	}

	if cfg.EmbeddingsEnabled {
		cfg.EmbeddingBaseURL = getEnv("EMBEDDING_BASE_URL", "")
		cfg.EmbeddingAPIKey = getEnv("EMBEDDING_API_KEY", "")
		cfg.EmbeddingModelName = getEnv("EMBEDDING_MODEL_NAME", "")
		cfg.QdrantURL = getEnv("QDRANT_URL", "http://localhost:6333")
		cfg.QdrantCollection = getEnv("QDRANT_COLLECTION", "documents")

		if cfg.EmbeddingBaseURL == "" {
			return nil, fmt.Errorf("EMBEDDING_BASE_URL is required when embeddings are enabled")
		}
		if cfg.EmbeddingModelName == "" {
			return nil, fmt.Errorf("EMBEDDING_MODEL_NAME is required when embeddings are enabled")
		}

		// Must match the output vector size of the embeddings model.
		// If the vector size changes, the Qdrant collection must be recreated.
		vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if vectorSizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when embeddings are enabled")
		}
		vectorSize, err := strconv.Atoi(vectorSizeStr)
		if err != nil {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
		}
		if vectorSize <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
		}
		cfg.QdrantVectorSize = vectorSize
	}

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// ChunkOptions returns the chunking defaults as engine options.
func (c *Config) ChunkOptions() chunker.Options {
	opts := chunker.DefaultOptions()
	opts.ChunkSize = c.ChunkSize
	opts.OverlapPercentage = c.OverlapPercentage
	opts.SizeUnit = c.SizeUnit
	opts.TokenMethod = c.TokenMethod
	opts.PreserveWordBoundaries = c.PreserveWordBoundaries
	opts.BoundaryWindow = c.BoundaryWindow
	return opts
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}
