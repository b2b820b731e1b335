package reset

import (
	"context"
	"log"
	"time"
)

// Scheduler fires the reset Job once daily at a fixed hour, server time.
type Scheduler struct {
	job  *Job
	hour int
}

// NewScheduler creates a Scheduler firing at the given hour (0-23).
func NewScheduler(job *Job, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return &Scheduler{job: job, hour: hour}
}

// Run blocks until ctx is done, executing the job at each daily tick.
// Meant to run in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.nextRun(time.Now())
		log.Printf("[reset] next daily reset at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.job.Run(ctx); err != nil {
				log.Printf("[reset] daily run failed: %v", err)
			}
		}
	}
}

// nextRun returns the next occurrence of the configured hour after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
