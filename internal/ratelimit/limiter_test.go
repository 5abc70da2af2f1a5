package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacingLimiter_EnforcesMinimumGap(t *testing.T) {
	spacing := 40 * time.Millisecond
	l := NewSpacingLimiter(spacing, zerolog.Nop())

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, spacing-5*time.Millisecond, "gap %d too short: %v", i, gap)
	}
}

func TestSpacingLimiter_FirstRequestImmediate(t *testing.T) {
	l := NewSpacingLimiter(time.Hour, zerolog.Nop())

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestSpacingLimiter_ContextCancel(t *testing.T) {
	l := NewSpacingLimiter(time.Hour, zerolog.Nop())
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSpacingLimiter_SharedAcrossGoroutines(t *testing.T) {
	spacing := 20 * time.Millisecond
	l := NewSpacingLimiter(spacing, zerolog.Nop())

	var mu sync.Mutex
	var stamps []time.Time
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Wait(context.Background()))
			mu.Lock()
			stamps = append(stamps, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, stamps, 4)
	first, last := stamps[0], stamps[0]
	for _, s := range stamps {
		if s.Before(first) {
			first = s
		}
		if s.After(last) {
			last = s
		}
	}
	assert.GreaterOrEqual(t, last.Sub(first), 3*spacing-10*time.Millisecond)
}

func TestSpacingLimiter_ZeroSpacingDisabled(t *testing.T) {
	l := NewSpacingLimiter(0, zerolog.Nop())
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
