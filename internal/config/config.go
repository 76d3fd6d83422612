package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported backends.
const (
	VectorBackendQdrant   = "qdrant"
	VectorBackendPostgres = "postgres"
	BlobBackendFS         = "fs"
	BlobBackendS3         = "s3"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	LLMTimeout          time.Duration
	EmbeddingModelName  string
	EmbeddingDimensions int
	TTSModelName        string
	TTSVoice            string

	DBPath string

	VectorBackend    string
	QdrantURL        string
	QdrantCollection string
	PostgresDSN      string

	BlobBackend       string
	BlobDir           string
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	ChunkMaxLength    int
	ChunkOverlap      int
	IngestConcurrency int
	EmbedRateLimit    float64
	EmbedCacheSize    int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	OTelEndpoint string
	OTelProtocol string
	OTelInsecure bool
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

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
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		TTSModelName:       getEnv("TTS_MODEL", "tts-1"),
		TTSVoice:           getEnv("TTS_VOICE", "alloy"),
		DBPath:             getEnv("DB_PATH", "./data/salescoach.db"),
		VectorBackend:      strings.ToLower(getEnv("VECTOR_BACKEND", VectorBackendQdrant)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "sections"),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		BlobBackend:        strings.ToLower(getEnv("BLOB_BACKEND", BlobBackendFS)),
		BlobDir:            getEnv("BLOB_DIR", "./data/documents"),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		OTelEndpoint:       getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		OTelProtocol:       strings.ToLower(getEnv("OTEL_EXPORTER_PROTOCOL", "grpc")),
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	// Must match the output size of the embedding model; changing it requires
	// recreating the section index.
	if cfg.EmbeddingDimensions, err = getEnvInt("EMBEDDING_DIMENSIONS", 1536); err != nil {
		return nil, err
	}
	if cfg.EmbeddingDimensions <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be greater than 0")
	}

	if cfg.LLMTimeout, err = getEnvDuration("LLM_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxLength, err = getEnvInt("CHUNK_MAX_LENGTH", 1500); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxLength <= 0 {
		return nil, fmt.Errorf("CHUNK_MAX_LENGTH must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkMaxLength {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be between 0 and CHUNK_MAX_LENGTH-1")
	}
	if cfg.IngestConcurrency, err = getEnvInt("INGEST_CONCURRENCY", 1); err != nil {
		return nil, err
	}
	if cfg.IngestConcurrency < 1 {
		return nil, fmt.Errorf("INGEST_CONCURRENCY must be at least 1")
	}
	if cfg.EmbedRateLimit, err = getEnvFloat("EMBED_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.EmbedCacheSize, err = getEnvInt("EMBED_CACHE_SIZE", 512); err != nil {
		return nil, err
	}
	if cfg.OTelInsecure, err = getEnvBool("OTEL_INSECURE", false); err != nil {
		return nil, err
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.VectorBackend {
	case VectorBackendQdrant:
	case VectorBackendPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when VECTOR_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("VECTOR_BACKEND must be %q or %q, got %q", VectorBackendQdrant, VectorBackendPostgres, cfg.VectorBackend)
	}

	switch cfg.BlobBackend {
	case BlobBackendFS:
		if err := os.MkdirAll(cfg.BlobDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create blob directory: %w", err)
		}
	case BlobBackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when BLOB_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("BLOB_BACKEND must be %q or %q, got %q", BlobBackendFS, BlobBackendS3, cfg.BlobBackend)
	}

	if cfg.OTelProtocol != "grpc" && cfg.OTelProtocol != "http" {
		return nil, fmt.Errorf("OTEL_EXPORTER_PROTOCOL must be grpc or http, got %q", cfg.OTelProtocol)
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return v, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
