package cron

import (
	"context"
	"time"

	"hively/config"
	"hively/services/booking"
	"hively/utils"

	"go.uber.org/zap"
)

// StartCompletionSweeper periodically marks confirmed reservations whose end
// date has passed as completed. It runs until ctx is cancelled.
func StartCompletionSweeper(ctx context.Context, svc booking.BookingService) {
	interval := time.Duration(config.AppConfig.CompletionSweepMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	go func() {
		logger := utils.GetLogger()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("completion sweeper stopped")
				return
			case <-ticker.C:
				sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
				n, err := svc.CompleteExpired(sweepCtx)
				cancel()
				if err != nil {
					logger.Warn("completion sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Info("completion sweep finished", zap.Int64("completed", n))
				}
			}
		}
	}()
}
