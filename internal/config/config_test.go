package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TABLE", "BUCKET", "KEY_PREFIX", "AWS_REGION", "S3_ENDPOINT", "DYNAMODB_ENDPOINT",
		"S3_PUBLIC_URL", "STORE_ACCESS_KEY", "STORE_SECRET_KEY", "STORE_BACKEND", "PREWARM_INTERVAL", "BREAKER_TIMEOUT",
		"BREAKER_MAX_FAILURES", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TABLE", "twitter-geo")
	t.Setenv("BUCKET", "ccbda-upc-web")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "twitter-geo", cfg.Table)
	assert.Equal(t, "ccbda-upc-web", cfg.Bucket)
	assert.Equal(t, "twitter", cfg.KeyPrefix)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "https://s3.amazonaws.com", cfg.PublicURL)
	assert.Equal(t, BackendAWS, cfg.StoreBackend)
	assert.Equal(t, time.Duration(0), cfg.PrewarmInterval)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)
	assert.Equal(t, 5, cfg.BreakerMaxFailures)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadEndpointOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TABLE", "t")
	t.Setenv("BUCKET", "b")
	t.Setenv("S3_ENDPOINT", "http://localhost:4566")
	t.Setenv("PREWARM_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4566", cfg.PublicURL)
	assert.Equal(t, 5*time.Minute, cfg.PrewarmInterval)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing table", env: map[string]string{"BUCKET": "b"}},
		{name: "missing bucket", env: map[string]string{"TABLE": "t"}},
		{name: "bad backend", env: map[string]string{"TABLE": "t", "BUCKET": "b", "STORE_BACKEND": "redis"}},
		{name: "bad duration", env: map[string]string{"TABLE": "t", "BUCKET": "b", "PREWARM_INTERVAL": "soon"}},
		{name: "bad int", env: map[string]string{"TABLE": "t", "BUCKET": "b", "BREAKER_MAX_FAILURES": "many"}},
		{name: "half credentials", env: map[string]string{"TABLE": "t", "BUCKET": "b", "STORE_ACCESS_KEY": "AKIA"}},
		{name: "bad level", env: map[string]string{"TABLE": "t", "BUCKET": "b", "LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
