// Package reporter periodically logs intake queue statistics on a cron
// schedule so operators can watch backlog trends without scraping metrics.
package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"triagedesk/pkg/config"
	"triagedesk/pkg/intake"
	"triagedesk/pkg/logger"
)

// Start starts the stats scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg *config.Config, d *intake.Dispatcher) (context.CancelFunc, error) {
	if cfg == nil || !cfg.Reporter.Enabled {
		logger.Info("reporter_disabled")
		return func() {}, nil
	}

	// default to every five minutes
	cronExpr := cfg.Reporter.Cron
	if cronExpr == "" {
		cronExpr = "*/5 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("reporter_invalid_cron", "cron", cfg.Reporter.Cron)
		return nil, fmt.Errorf("invalid reporter cron expression: %s", cfg.Reporter.Cron)
	}

	logger.Info("reporter_enabled", "cron", cronExpr)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cronExpr, d)
	return cancel, nil
}

// runScheduler computes the next tick for the cron expression with gronx
// and sleeps until that time, then logs a snapshot of the queue.
func runScheduler(ctx context.Context, cronExpr string, d *intake.Dispatcher) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("reporter_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("reporter_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				logger.Info("reporter_stopping")
				return
			}
			continue
		}

		wait := time.Until(next)
		if wait <= 0 {
			wait = time.Second
		}
		select {
		case <-time.After(wait):
			logSnapshot(d)
		case <-ctx.Done():
			logger.Info("reporter_stopping")
			return
		}
	}
}

func logSnapshot(d *intake.Dispatcher) {
	logger.Info("queue_stats", "depth", d.QueueDepth())
}
