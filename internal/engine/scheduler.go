package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs watch polls on a fixed interval.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	log     *slog.Logger
	timeout time.Duration

	pollEntryID cron.EntryID
}

// NewScheduler creates a Scheduler polling every interval. Each poll is
// bounded by the interval so that cycles never overlap.
func NewScheduler(eng *Engine, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:    c,
		engine:  eng,
		log:     log,
		timeout: interval,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runPoll)
	if err != nil {
		return nil, fmt.Errorf("scheduling watch poll: %w", err)
	}
	s.pollEntryID = id

	return s, nil
}

// Start begins running scheduled polls.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "watches", len(s.engine.Watches()))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once a running
// poll has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextPoll returns when the next poll is due. It is zero before Start.
func (s *Scheduler) NextPoll() time.Time {
	return s.cron.Entry(s.pollEntryID).Next
}

// RunNow polls all watches immediately, outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.engine.RunPoll(ctx); err != nil {
		s.log.Error("watch poll failed", "error", err)
		return
	}
	s.log.Debug("watch poll complete", "duration", time.Since(start))
}

func (s *Scheduler) runPoll() {
	s.RunNow(context.Background())
}
