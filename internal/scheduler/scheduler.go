package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/japan-weather/internal/weather"
)

const refreshTag = "weather-refresh"

var ErrNotStarted = errors.New("scheduler not started")

// Refresher runs one refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context, latitude, longitude float64) (*weather.Snapshot, error)
}

// Status describes the outcome of the most recent refresh run.
type Status struct {
	LastRun     time.Time `json:"lastRun"`
	LastSuccess time.Time `json:"lastSuccess"`
	LastError   string    `json:"lastError,omitempty"`
	Runs        int       `json:"runs"`
	Failures    int       `json:"failures"`
}

// Scheduler refreshes the configured location on a fixed interval. Runs are
// serialized, including manual triggers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	location  weather.Location
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
	status  Status
}

// New creates a new Scheduler.
func New(location weather.Location, interval, timeout time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		service:   service,
		location:  location,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("module", "scheduler"),
	}
}

// Start performs the first refresh synchronously and returns its error, in
// which case nothing is scheduled. Otherwise the periodic job starts.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}

	_, err := s.scheduler.Every(s.interval).
		WaitForSchedule().
		Tag(refreshTag).
		Do(func() {
			if err := s.refresh(context.Background()); err != nil {
				s.logger.Warn("scheduled refresh failed", slog.Any("error", err))
			}
		})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.logger.Info("refresh scheduled", slog.Duration("interval", s.interval))
	return nil
}

// TriggerNow queues an immediate run of the refresh job.
func (s *Scheduler) TriggerNow() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	return s.scheduler.RunByTag(refreshTag)
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	start := time.Now()
	_, err := s.service.Refresh(ctx, s.location.Latitude, s.location.Longitude)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastRun = start.UTC()
	s.status.Runs++
	if err != nil {
		s.status.Failures++
		s.status.LastError = err.Error()
		return err
	}
	s.status.LastSuccess = start.UTC()
	s.status.LastError = ""
	s.logger.Debug("refresh completed", slog.Duration("took", time.Since(start)))
	return nil
}
