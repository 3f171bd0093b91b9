package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPruneInterval matches the cleanup cadence of the session table.
const DefaultPruneInterval = 15 * time.Minute

// ErrInvalidPruneInterval is returned when the prune interval is not positive.
var ErrInvalidPruneInterval = errors.New("session: prune interval must be positive")

// SchedulePrune registers a periodic Prune on c. The caller owns c's lifecycle.
func SchedulePrune(c *cron.Cron, p Pruner, interval time.Duration, log *slog.Logger) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, ErrInvalidPruneInterval
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return c.AddFunc("@every "+interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		n, err := p.Prune(ctx)
		if err != nil {
			log.Error("session prune failed", slog.Any("error", err))
			return
		}
		if n > 0 {
			log.Info("expired sessions pruned", slog.Int64("count", n))
		}
	})
}
