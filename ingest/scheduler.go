package ingest

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"chargewatch/config"
)

// Scheduler invokes a cycle on a fixed interval until an elapsed-time budget
// is used up. The wait after a cycle is unconditional - it does not care
// whether the cycle succeeded, partially succeeded or was skipped - and there
// is no jitter, backoff or catch-up of missed ticks.
type Scheduler struct {
	interval time.Duration
	budget   time.Duration
}

func NewScheduler(cfg config.Poller) *Scheduler {
	interval := time.Duration(cfg.Interval) * time.Second
	if cfg.Interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		interval: interval,
		budget:   time.Duration(cfg.RunMinutes) * time.Minute,
	}
}

// Run blocks, executing cycle immediately and then once per interval. It
// returns normally once the budget has elapsed (checked after each wait), or
// early when ctx is cancelled. A budget of zero runs until cancellation.
func (s *Scheduler) Run(ctx context.Context, cycle func(context.Context)) {
	start := time.Now()
	for {
		cycle(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}

		if s.budget > 0 && time.Since(start) >= s.budget {
			log.Infof("Scheduler: run budget of %s reached, stopping", s.budget)
			return
		}
	}
}
