package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/greenlab/ecotools/internal/store"
)

// Scheduler periodically evicts expired quiz sessions from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *store.SessionStore
	interval  time.Duration
}

// New creates a new Scheduler.
func New(sessions *store.SessionStore, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sessions:  sessions,
		interval:  interval,
	}
}

// Start schedules the periodic prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	seconds := int(s.interval.Seconds())
	if seconds <= 0 {
		seconds = 600
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(func() {
		if n := s.sessions.PruneExpired(); n > 0 {
			log.Printf("scheduler: pruned %d expired quiz sessions", n)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
