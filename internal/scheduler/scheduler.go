// Package scheduler runs a job on a cron schedule, used to reshuffle the
// map rotation unattended (for example every night before the server's
// scheduled restart).
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// RunResult records the outcome of one execution.
type RunResult struct {
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Scheduler runs a single job on a cron schedule with seconds precision.
// A run is skipped while the previous one is still going.
type Scheduler struct {
	spec    string
	job     Job
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
	last    *RunResult
	runs    int

	history     History
	historyPath string
}

var specParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New validates spec ("0 0 4 * * *", "@every 6h", ...) and returns a
// scheduler for job.
func New(spec string, job Job) (*Scheduler, error) {
	if _, err := specParser.Parse(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return &Scheduler{spec: spec, job: job}, nil
}

// Start schedules the job and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithParser(specParser))
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("scheduling %q: %w", s.spec, err)
	}
	s.cron.Start()
	if entries := s.cron.Entries(); len(entries) > 0 {
		log.Printf("INFO: scheduler running (%s), next run %s", s.spec, entries[0].Next.Format(time.RFC1123))
	}

	<-ctx.Done()
	log.Printf("INFO: scheduler stopping...")
	<-s.cron.Stop().Done()
	return nil
}

// RunOnce executes the job now unless a run is already in progress, in
// which case it returns false.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Printf("WARN: scheduled run skipped: previous run still in progress")
		return false
	}
	s.running = true
	s.mu.Unlock()

	res := RunResult{Started: time.Now()}
	res.Err = s.job(ctx)
	res.Duration = time.Since(res.Started)
	if res.Err != nil {
		log.Printf("ERROR: scheduled run failed: %v", res.Err)
	}

	s.mu.Lock()
	s.running = false
	s.last = &res
	s.runs++
	s.updateHistory(res)
	s.mu.Unlock()
	return true
}

// Last returns the most recent result and the number of completed runs.
func (s *Scheduler) Last() (*RunResult, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, s.runs
	}
	r := *s.last
	return &r, s.runs
}
