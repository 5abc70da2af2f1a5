package ratelimit

import (
	"context"
	"time"

	"summoner-tracker/internal/config"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Limiter gates outbound requests. Implementations must be safe for
// concurrent use; every upstream call in the process shares one.
type Limiter interface {
	Wait(ctx context.Context) error
}

// SpacingLimiter enforces a minimum delay between consecutive requests
// (burst of one). A zero spacing disables throttling.
type SpacingLimiter struct {
	limiter *rate.Limiter
	spacing time.Duration
	logger  zerolog.Logger
}

func NewSpacingLimiter(spacing time.Duration, logger zerolog.Logger) *SpacingLimiter {
	limit := rate.Inf
	if spacing > 0 {
		limit = rate.Every(spacing)
	}
	return &SpacingLimiter{
		limiter: rate.NewLimiter(limit, 1),
		spacing: spacing,
		logger:  logger,
	}
}

func (l *SpacingLimiter) Wait(ctx context.Context) error {
	r := l.limiter.Reserve()
	if !r.OK() {
		return context.DeadlineExceeded
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	l.logger.Debug().Dur("delay", delay).Dur("spacing", l.spacing).Msg("throttling upstream request")

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

func New(cfg *config.Config, logger zerolog.Logger) Limiter {
	return NewSpacingLimiter(cfg.RequestSpacing, logger.With().Str("component", "ratelimit").Logger())
}
