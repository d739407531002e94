package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/metrics"
	"github.com/i474232898/geo-window-export/internal/window"
)

// Exporter answers windowed queries with a link to a published GeoJSON
// artifact, publishing it on first request and reusing it afterwards.
type Exporter struct {
	records RecordStore
	blobs   BlobStore
	prefix  string
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithPrefix sets the key prefix artifacts are published under.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) { e.prefix = prefix }
}

// WithClock overrides the source of "now" for open-ended windows.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// NewExporter creates an Exporter over the given collaborators.
func NewExporter(records RecordStore, blobs BlobStore, opts ...Option) *Exporter {
	e := &Exporter{
		records: records,
		blobs:   blobs,
		prefix:  window.DefaultPrefix,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle runs one export request to completion. Every outcome, including
// failures, is returned as a Response with wire status 200.
func (e *Exporter) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	log := e.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("method", req.Method),
	)

	outcome, resp := e.handle(ctx, log, req)
	e.metrics.Observe(outcome, time.Since(start).Seconds())
	log.Info("export handled", zap.String("outcome", outcome), zap.Duration("took", time.Since(start)))
	return resp
}

func (e *Exporter) handle(ctx context.Context, log *zap.Logger, req Request) (string, Response) {
	if !IsRead(req.Method) {
		return metrics.OutcomeInvalidMethod, ErrorResponse(ErrInvalidMethod)
	}

	w, err := window.Parse(req.Params, e.now())
	if err != nil {
		log.Warn("invalid window", zap.Error(err))
		return metrics.OutcomeBadWindow, ErrorResponse(err.Error())
	}

	key := w.Key(e.prefix)
	log = log.With(zap.String("key", key))

	exists, err := e.blobs.Exists(ctx, key)
	if err != nil {
		log.Error("artifact existence check failed", zap.Error(err))
		return metrics.OutcomeCollaboratorError, ErrorResponse(err.Error())
	}
	if exists {
		log.Debug("artifact already published")
		return metrics.OutcomeHit, SuccessResponse(e.blobs.URL(key))
	}

	n, err := e.export(ctx, w, key)
	if err != nil {
		log.Error("export failed", zap.Error(err))
		return metrics.OutcomeCollaboratorError, ErrorResponse(err.Error())
	}

	e.metrics.AddFeatures(n)
	log.Info("artifact published", zap.Int("features", n))
	return metrics.OutcomeMiss, SuccessResponse(e.blobs.URL(key))
}

// export scans the window, builds the document and publishes it under key.
// It returns the number of features written.
func (e *Exporter) export(ctx context.Context, w window.Window, key string) (int, error) {
	records, err := e.records.Scan(ctx, w.Filter())
	if err != nil {
		return 0, err
	}

	body, err := NewFeatureCollection(records).Encode()
	if err != nil {
		return 0, fmt.Errorf("encode feature collection: %w", err)
	}

	if err := e.blobs.Publish(ctx, key, body); err != nil {
		return 0, err
	}
	return len(records), nil
}

