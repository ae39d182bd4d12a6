// Package scheduler runs the periodic background jobs: dashboard refresh,
// cache sweep and expired-hold cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled task. Run gets a context bounded by Timeout.
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
}

// Start registers every job and starts the cron loop. Overlapping runs of the
// same job are skipped.
func Start(jobs ...Job) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	for _, j := range jobs {
		j := j
		if j.Schedule == "" || j.Schedule == "off" {
			log.Printf("⏸️  [SCHEDULER] %s disabled", j.Name)
			continue
		}
		if _, err := c.AddFunc(j.Schedule, func() { runJob(j) }); err != nil {
			c.Stop()
			return nil, fmt.Errorf("schedule %s (%q): %w", j.Name, j.Schedule, err)
		}
		log.Printf("⏱️  [SCHEDULER] %s scheduled %q", j.Name, j.Schedule)
	}
	c.Start()
	return &Scheduler{cron: c}, nil
}

func runJob(j Job) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := j.Run(ctx); err != nil {
		log.Printf("❌ [SCHEDULER] %s failed: %v", j.Name, err)
	}
}

// Stop halts scheduling and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("⚠️  [SCHEDULER] stop timed out with jobs still running")
	}
}
