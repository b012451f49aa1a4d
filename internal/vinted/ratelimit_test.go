package vinted_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 500,
			calls: 3,
		},
		{
			name:  "unlimited daily budget",
			rate:  1000,
			burst: 20,
			calls: 20,
		},
		{
			name:    "rejects when daily budget spent",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := vinted.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				if lastErr = rl.Wait(context.Background()); lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, vinted.ErrDailyLimitReached)
				assert.Contains(t, lastErr.Error(), "(2/2)")
				return
			}
			require.NoError(t, lastErr)
		})
	}
}

func TestRateLimiter_Remaining(t *testing.T) {
	t.Parallel()

	rl := vinted.NewRateLimiter(100, 10, 3)
	assert.Equal(t, int64(3), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.Used())
	assert.Equal(t, int64(2), rl.Remaining())

	unlimited := vinted.NewRateLimiter(100, 10, 0)
	require.NoError(t, unlimited.Wait(context.Background()))
	assert.Equal(t, int64(-1), unlimited.Remaining())
}

func TestRateLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	rl := vinted.NewRateLimiter(100, 10, 1, vinted.WithRateLimiterNowFunc(clock))
	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())

	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), vinted.ErrDailyLimitReached)

	mu.Lock()
	now = now.Add(25 * time.Hour)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.Used())
	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())
}

func TestRateLimiter_CancelledContextReleasesBudget(t *testing.T) {
	t.Parallel()

	// One token per hour: the second call would block.
	rl := vinted.NewRateLimiter(1.0/3600, 1, 10)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
	assert.Equal(t, int64(1), rl.Used())
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl := vinted.NewRateLimiter(10000, 100, 50)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 80 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Wait(context.Background()) == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
	assert.Equal(t, int64(0), rl.Remaining())
}
