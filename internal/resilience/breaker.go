package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/window"
)

// ErrBreakerOpen is returned while a collaborator's circuit is open.
var ErrBreakerOpen = errors.New("circuit breaker open")

// BreakerConfig controls when a collaborator circuit trips and how long it
// stays open.
type BreakerConfig struct {
	MaxFailures uint32
	Timeout     time.Duration
}

func newBreaker(name string, cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// execute runs fn through the breaker. Calls are never retried.
func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T

	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %s: %v", ErrBreakerOpen, cb.Name(), err)
		}
		return zero, err
	}

	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return v, nil
}

type recordStore struct {
	next geo.RecordStore
	cb   *gobreaker.CircuitBreaker
}

// RecordStore wraps next with a circuit breaker.
func RecordStore(next geo.RecordStore, cfg BreakerConfig, logger *zap.Logger) geo.RecordStore {
	return &recordStore{
		next: next,
		cb:   newBreaker("record-store", cfg, logger),
	}
}

func (r *recordStore) Scan(ctx context.Context, filter window.Filter) ([]geo.Record, error) {
	return execute(r.cb, func() ([]geo.Record, error) {
		return r.next.Scan(ctx, filter)
	})
}

type blobStore struct {
	next geo.BlobStore
	cb   *gobreaker.CircuitBreaker
}

// BlobStore wraps next with a circuit breaker. A missing object is a
// successful Exists call and does not count as a failure.
func BlobStore(next geo.BlobStore, cfg BreakerConfig, logger *zap.Logger) geo.BlobStore {
	return &blobStore{
		next: next,
		cb:   newBreaker("blob-store", cfg, logger),
	}
}

func (b *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	return execute(b.cb, func() (bool, error) {
		return b.next.Exists(ctx, key)
	})
}

func (b *blobStore) Publish(ctx context.Context, key string, body []byte) error {
	_, err := execute(b.cb, func() (struct{}, error) {
		return struct{}{}, b.next.Publish(ctx, key, body)
	})
	return err
}

func (b *blobStore) URL(key string) string {
	return b.next.URL(key)
}
