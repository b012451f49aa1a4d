package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/api/handlers"
	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rl         *vinted.RateLimiter
		preCalls   int
		wantLimit  int64
		wantUsed   int64
		wantRemain int64
		wantReset  bool
	}{
		{
			name:       "nil rate limiter is unlimited",
			wantRemain: -1,
		},
		{
			name:       "no daily budget",
			rl:         vinted.NewRateLimiter(100, 10, 0),
			preCalls:   2,
			wantUsed:   2,
			wantRemain: -1,
			wantReset:  true,
		},
		{
			name:       "fresh rate limiter",
			rl:         vinted.NewRateLimiter(100, 10, 2000),
			wantLimit:  2000,
			wantRemain: 2000,
			wantReset:  true,
		},
		{
			name:       "rate limiter with usage",
			rl:         vinted.NewRateLimiter(100, 10, 100),
			preCalls:   3,
			wantLimit:  100,
			wantUsed:   3,
			wantRemain: 97,
			wantReset:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.rl != nil {
				for range tt.preCalls {
					require.NoError(t, tt.rl.Wait(t.Context()))
				}
			}

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(tt.rl))

			resp := api.Get("/api/v1/quota")
			require.Equal(t, http.StatusOK, resp.Code)

			var body struct {
				DailyLimit int64     `json:"daily_limit"`
				DailyUsed  int64     `json:"daily_used"`
				Remaining  int64     `json:"remaining"`
				ResetAt    time.Time `json:"reset_at"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

			assert.Equal(t, tt.wantLimit, body.DailyLimit)
			assert.Equal(t, tt.wantUsed, body.DailyUsed)
			assert.Equal(t, tt.wantRemain, body.Remaining)
			if tt.wantReset {
				assert.WithinDuration(t, time.Now().Add(24*time.Hour), body.ResetAt, time.Minute)
			} else {
				assert.True(t, body.ResetAt.IsZero())
			}
		})
	}
}
