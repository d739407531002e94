package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/geo-window-export/internal/window"
)

const (
	BackendAWS    = "aws"
	BackendMemory = "memory"

	defaultPublicURL = "https://s3.amazonaws.com"
)

var validate = validator.New()

type AppConfig struct {
	// Table is the record store holding geotagged posts.
	Table string `validate:"required"`
	// Bucket is where generated GeoJSON artifacts are published.
	Bucket string `validate:"required"`
	// KeyPrefix is prepended to every artifact key.
	KeyPrefix string

	Region           string `validate:"required"`
	S3Endpoint       string `validate:"omitempty,url"`
	DynamoDBEndpoint string `validate:"omitempty,url"`
	// AccessKey and SecretKey override the default credential chain, for
	// S3/DynamoDB-compatible endpoints.
	AccessKey string `validate:"required_with=SecretKey"`
	SecretKey string `validate:"required_with=AccessKey"`
	// PublicURL is the base that artifact links are built from.
	PublicURL string `validate:"required,url"`

	StoreBackend string `validate:"oneof=aws memory"`

	// PrewarmInterval controls how often the open-ended artifact is
	// published ahead of requests (0 = disabled).
	PrewarmInterval time.Duration

	BreakerTimeout     time.Duration
	BreakerMaxFailures int `validate:"gte=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
	Port     string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Table = os.Getenv("TABLE")
	cfg.Bucket = os.Getenv("BUCKET")
	cfg.KeyPrefix = getenvDefault("KEY_PREFIX", window.DefaultPrefix)

	cfg.Region = getenvDefault("AWS_REGION", "us-east-1")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.DynamoDBEndpoint = os.Getenv("DYNAMODB_ENDPOINT")
	cfg.AccessKey = os.Getenv("STORE_ACCESS_KEY")
	cfg.SecretKey = os.Getenv("STORE_SECRET_KEY")

	publicDefault := defaultPublicURL
	if cfg.S3Endpoint != "" {
		publicDefault = cfg.S3Endpoint
	}
	cfg.PublicURL = getenvDefault("S3_PUBLIC_URL", publicDefault)

	cfg.StoreBackend = getenvDefault("STORE_BACKEND", BackendAWS)

	var err error
	if cfg.PrewarmInterval, err = getenvDuration("PREWARM_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getenvDuration("BREAKER_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.BreakerMaxFailures, err = getenvInt("BREAKER_MAX_FAILURES", 5); err != nil {
		return nil, err
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
