package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/weatheria/weatheria/internal/store"
	"github.com/weatheria/weatheria/internal/weather"
)

// Fetcher re-fetches the weather payload for a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*weather.Payload, error)
}

// Scheduler periodically refreshes the session's weather payload at its
// resolved location, so chat context does not go stale between manual
// refreshes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	session   *store.Session
	fetcher   Fetcher
	interval  time.Duration
}

// New creates a Scheduler refreshing the given session slot.
func New(session *store.Session, fetcher Fetcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		session:   session,
		fetcher:   fetcher,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// refresh re-fetches the payload at the session's resolved location. An
// empty session or a failed fetch leaves the slot untouched.
func (s *Scheduler) refresh() {
	location, _, err := s.session.Latest()
	if err != nil {
		// Nothing resolved yet; nothing to refresh.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload, err := s.fetcher.Fetch(ctx, location.Lat, location.Lon)
	if err != nil {
		slog.Warn("scheduled weather refresh failed; keeping last payload",
			"location", location.DisplayName, "error", err)
		return
	}

	s.session.Set(location, payload)
	slog.Debug("refreshed weather payload", "location", location.DisplayName)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
