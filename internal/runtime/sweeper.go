package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// DefaultSweepInterval is how often the background sweep looks for idle
// sessions.
const DefaultSweepInterval = 60 * time.Second

// SweepExpired evicts every session idle longer than the timeout and returns
// the evicted user IDs. Each candidate is re-checked under its user lock, so
// the sweep can never race an in-flight transition.
func (e *Engine) SweepExpired(ctx context.Context) ([]string, error) {
	ids, err := e.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	var evicted []string
	for _, userID := range ids {
		expired := false
		err := e.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
			s, err := e.sessions.Store().Load(ctx, userID)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return nil // finished between List and here
				}
				return err
			}
			if !s.Expired(e.now(), e.idleTimeout) {
				return nil
			}
			expired = true
			return e.endSession(ctx, s, domain.EndExpired)
		})
		if err != nil {
			e.logger.Warn("sweep failed for session", "user_id", userID, "err", err)
			continue
		}
		if !expired {
			continue
		}

		evicted = append(evicted, userID)
		// Notify outside the lock; delivery is best effort.
		if e.sender != nil {
			if err := e.sender.Send(ctx, userID, timeoutNotice()); err != nil {
				e.logger.Warn("failed to send timeout notice", "user_id", userID, "err", err)
			}
		}
	}
	return evicted, nil
}

// RunSweeper runs the periodic sweep until the context is canceled.
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted, err := e.SweepExpired(ctx); err != nil {
				e.logger.Warn("sweep failed", "err", err)
			} else if len(evicted) > 0 {
				e.logger.Info("swept idle sessions", "count", len(evicted))
			}
		}
	}
}
