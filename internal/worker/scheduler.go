package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/config"
)

// RunFunc executes one pipeline pass.
type RunFunc func(ctx context.Context) error

// StartScheduler launches an in-process ticker per enabled pipeline, for
// deployments without an external cron hitting the trigger endpoints. A
// failed pass is logged and retried at the next tick.
func StartScheduler(ctx context.Context, cfg config.SchedulerConfig, assignment, automation RunFunc, logger *zap.Logger) {
	if interval := cfg.AssignmentInterval(); interval > 0 {
		go runLoop(ctx, "assignment", interval, assignment, logger)
	}
	if interval := cfg.VIPInterval(); interval > 0 {
		go runLoop(ctx, "vip_automation", interval, automation, logger)
	}
}

func runLoop(ctx context.Context, name string, interval time.Duration, run RunFunc, logger *zap.Logger) {
	logger.Info("pipeline scheduler started",
		zap.String("pipeline", name),
		zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("pipeline scheduler stopped", zap.String("pipeline", name))
			return
		case <-ticker.C:
			if err := run(ctx); err != nil {
				logger.Error("scheduled pipeline run failed",
					zap.String("pipeline", name),
					zap.Error(err))
			}
		}
	}
}
