package main

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/geo-window-export/internal/blob"
	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/store"
)

func TestHandlerTranslatesEvent(t *testing.T) {
	records := store.NewMemoryStore(store.Row{CreatedAt: "2018-04-16T10:30:00", C0: "2.17", C1: "41.38"})
	exporter := geo.NewExporter(records, blob.NewMemoryStore("https://s3.amazonaws.com/ccbda-upc-web"),
		geo.WithClock(func() time.Time { return time.Date(2018, 4, 16, 11, 0, 0, 0, time.UTC) }),
	)
	h := handler(exporter)

	resp, err := h(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		QueryStringParameters: map[string]string{"from": "2018-04-16-10-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"ok":true,"s3_url":"https://s3.amazonaws.com/ccbda-upc-web/twitter/2018-04-16T10:10:00_2018-04-16T11:00:00.json"}`, resp.Body)

	resp, err = h(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"ok":false,"error":"invalid method"}`, resp.Body)
}
