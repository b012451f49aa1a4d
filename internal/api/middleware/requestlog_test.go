package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve runs one request through h and returns the recorder.
func serve(t *testing.T, h echo.HandlerFunc, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func respond(status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(status, http.StatusText(status))
	}
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		header    http.Header
		wantLevel string
		wantID    string
	}{
		{
			name:      "search ok",
			method:    http.MethodPost,
			path:      "/api/v1/search",
			status:    http.StatusOK,
			wantLevel: "level=INFO",
		},
		{
			name:      "invalid body",
			method:    http.MethodPost,
			path:      "/api/v1/translate",
			status:    http.StatusUnprocessableEntity,
			wantLevel: "level=WARN",
		},
		{
			name:      "upstream failure",
			method:    http.MethodGet,
			path:      "/api/v1/brands",
			status:    http.StatusBadGateway,
			wantLevel: "level=ERROR",
		},
		{
			name:      "caller request id kept",
			method:    http.MethodDelete,
			path:      "/api/v1/cookies",
			status:    http.StatusNoContent,
			header:    http.Header{requestIDHeader: []string{"req-42"}},
			wantLevel: "level=INFO",
			wantID:    "req-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			h := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(respond(tt.status))
			rec := serve(t, h, tt.method, tt.path, tt.header)

			got := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, got)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, got)
			}

			line := buf.String()
			assert.Contains(t, line, tt.wantLevel)
			assert.Contains(t, line, "method="+tt.method)
			assert.Contains(t, line, "path="+tt.path)
			assert.Contains(t, line, "request_id="+got)
			assert.Contains(t, line, "duration_ms=")
			assert.Equal(t, 1, strings.Count(line, "msg=request"))
		})
	}
}

func TestRequestLog_Probes(t *testing.T) {
	t.Parallel()

	type step struct {
		path   string
		status int
		logged bool
		level  string
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "healthz success logged once",
			steps: []step{
				{path: "/healthz", status: http.StatusOK, logged: true, level: "level=INFO"},
				{path: "/healthz", status: http.StatusOK},
				{path: "/healthz", status: http.StatusOK},
			},
		},
		{
			name: "healthz failures always logged",
			steps: []step{
				{path: "/healthz", status: http.StatusServiceUnavailable, logged: true, level: "level=WARN"},
				{path: "/healthz", status: http.StatusServiceUnavailable, logged: true, level: "level=WARN"},
			},
		},
		{
			name: "readyz draining after success",
			steps: []step{
				{path: "/readyz", status: http.StatusOK, logged: true, level: "level=INFO"},
				{path: "/readyz", status: http.StatusOK},
				{path: "/readyz", status: http.StatusServiceUnavailable, logged: true, level: "level=WARN"},
			},
		},
		{
			name: "api paths always logged",
			steps: []step{
				{path: "/api/v1/quota", status: http.StatusOK, logged: true, level: "level=INFO"},
				{path: "/api/v1/quota", status: http.StatusOK, logged: true, level: "level=INFO"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			mw := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))

			for i, s := range tt.steps {
				buf.Reset()
				serve(t, mw(respond(s.status)), http.MethodGet, s.path, nil)

				if !s.logged {
					assert.Empty(t, buf.String(), "step %d", i)
					continue
				}
				assert.Contains(t, buf.String(), "path="+s.path, "step %d", i)
				assert.Contains(t, buf.String(), s.level, "step %d", i)
			}
		})
	}
}

func TestRequestLog_RequestIDInContext(t *testing.T) {
	t.Parallel()

	var got string
	h := RequestLog(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(func(c echo.Context) error {
		got = RequestIDFromContext(c.Request().Context())
		assert.Equal(t, got, c.Get("request_id"))
		return c.NoContent(http.StatusOK)
	})

	rec := serve(t, h, http.MethodGet, "/api/v1/brands", nil)
	assert.Equal(t, rec.Header().Get(requestIDHeader), got)
	assert.Len(t, got, 36)
}
