package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type sessionPurger interface {
	PurgeSessions(ctx context.Context) (int64, error)
}

// SessionJanitor purges stale admin sessions every interval until ctx ends.
func SessionJanitor(ctx context.Context, purger sessionPurger, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := purger.PurgeSessions(ctx); err != nil {
				logger.Warn("Session purge failed", zap.Error(err))
			}
		}
	}
}
