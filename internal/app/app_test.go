package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/config"
	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/metrics"
)

func TestNewExporterMemoryBackend(t *testing.T) {
	cfg := &config.AppConfig{
		Table:        "twitter-geo",
		Bucket:       "ccbda-upc-web",
		KeyPrefix:    "twitter",
		PublicURL:    "http://localhost:8080",
		StoreBackend: config.BackendMemory,
	}

	e, err := NewExporter(context.Background(), cfg, zap.NewNop(), metrics.New())
	require.NoError(t, err)

	resp := e.Handle(context.Background(), geo.Request{Method: "GET", Params: map[string]string{
		"from": "2018-04-16-12-05",
		"to":   "2018-04-16-12-10",
	}})

	var body struct {
		OK    bool   `json:"ok"`
		S3URL string `json:"s3_url"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "http://localhost:8080/ccbda-upc-web/twitter/2018-04-16T12:05:00_2018-04-16T12:10:00.json", body.S3URL)
}
