package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/api/handlers"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListWatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_APIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantMsg    string
	}{
		{
			name:       "problem document",
			status:     http.StatusBadGateway,
			body:       `{"title":"Bad Gateway","status":502,"detail":"vinted API unavailable"}`,
			wantDetail: "vinted API unavailable",
			wantMsg:    "API error (HTTP 502): vinted API unavailable",
		},
		{
			name:    "plain body",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantMsg: "API error (HTTP 500): oops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetQuota(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestClient_ListWatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/watches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]handlers.WatchSummary{
			{Name: "jordans", URL: "https://www.vinted.fr/catalog?search_text=jordan", Seen: 12},
		})
	}))
	defer srv.Close()

	result, err := New(srv.URL + "/").ListWatches(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "jordans", result[0].Name)
	assert.Equal(t, 12, result[0].Seen)
}

func TestClient_PollWatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/watches/poll", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handlers.StatusResponse{Status: "poll completed"})
	}))
	defer srv.Close()

	status, err := New(srv.URL).PollWatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "poll completed", status)
}

func TestClient_GetQuota(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quota", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Quota{DailyLimit: 2000, DailyUsed: 15, Remaining: 1985, ResetAt: reset})
	}))
	defer srv.Close()

	q, err := New(srv.URL).GetQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1985), q.Remaining)
	assert.True(t, reset.Equal(q.ResetAt))
}

func TestClient_Cookies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/cookies/de":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"variant":"de","cookie":"abc"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/cookies":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	cookie, err := c.AcquireCookie(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, "abc", cookie)

	require.NoError(t, c.ClearCookies(context.Background()))
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
