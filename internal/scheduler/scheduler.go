package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/geo"
)

// Handler is the part of the exporter the scheduler drives.
type Handler interface {
	Handle(ctx context.Context, req geo.Request) geo.Response
}

// Scheduler periodically publishes the open-ended "everything up to now"
// artifact so the common no-parameter request is a cache hit.
type Scheduler struct {
	scheduler *gocron.Scheduler
	handler   Handler
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, handler Handler, logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		handler:   handler,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

// Start schedules the prewarm job and starts the underlying scheduler. A
// non-positive interval disables prewarming.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: prewarm disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.Prewarm)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Prewarm runs one export with no parameters.
func (s *Scheduler) Prewarm() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	resp := s.handler.Handle(ctx, geo.Request{Method: "GET"})
	s.logger.Info("scheduler: prewarm completed", zap.String("body", resp.Body))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
