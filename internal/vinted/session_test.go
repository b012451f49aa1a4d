package vinted_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// doerFunc adapts a function to vinted.HTTPDoer.
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestSession_Acquire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setCookies []string
		wantCookie string
		wantErr    error
	}{
		{
			name: "session cookie among several",
			setCookies: []string{
				"anon_id=abc; Path=/; HttpOnly",
				"access_token_web=eyJhbGciOi.token; Path=/; Domain=.vinted.fr; Secure; HttpOnly",
				"refresh_token_web=xyz; Path=/",
			},
			wantCookie: "access_token_web=eyJhbGciOi.token",
		},
		{
			name:       "session cookie without attributes",
			setCookies: []string{"access_token_web=plain"},
			wantCookie: "access_token_web=plain",
		},
		{
			name: "folded header line",
			setCookies: []string{
				"anon_id=abc; Expires=Wed, 21 Oct 2026 07:28:00 GMT, access_token_web=folded; Path=/",
			},
			wantCookie: "access_token_web=folded",
		},
		{
			name:       "no set-cookie header",
			setCookies: nil,
			wantErr:    vinted.ErrNoCookieHeader,
		},
		{
			name:       "token missing",
			setCookies: []string{"anon_id=abc; Path=/", "v_udt=1; Path=/"},
			wantErr:    vinted.ErrTokenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Empty(t, r.Header.Get("Cookie"))
				assert.Equal(t, vinted.DefaultUserAgent, r.Header.Get("User-Agent"))
				for _, c := range tt.setCookies {
					w.Header().Add("Set-Cookie", c)
				}
				_, _ = w.Write([]byte("<html></html>"))
			}))
			defer srv.Close()

			store := vinted.NewMemoryStore(vinted.WithFallback(nil))
			s := vinted.NewSession(srv.Client(), store,
				vinted.WithSessionSiteURL(func(string) string { return srv.URL }),
			)

			cookie, err := s.Acquire(context.Background(), "fr")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, ok := store.Get("fr")
				assert.False(t, ok)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCookie, cookie)
			stored, ok := store.Get("fr")
			require.True(t, ok)
			assert.Equal(t, tt.wantCookie, stored)
		})
	}
}

func TestSession_Acquire_TransportError(t *testing.T) {
	t.Parallel()

	store := vinted.NewMemoryStore(vinted.WithFallback(nil))
	s := vinted.NewSession(
		doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: no such host")
		}),
		store,
	)

	_, err := s.Acquire(context.Background(), "fr")
	require.ErrorIs(t, err, vinted.ErrTransport)
	assert.Contains(t, err.Error(), "no such host")
}

func TestSession_Acquire_DefaultVariantAndOrigin(t *testing.T) {
	t.Parallel()

	var gotURL, gotOrigin string
	s := vinted.NewSession(
		doerFunc(func(r *http.Request) (*http.Response, error) {
			gotURL = r.URL.String()
			gotOrigin = r.Header.Get("Origin")
			h := http.Header{}
			h.Add("Set-Cookie", "access_token_web=t; Path=/")
			return &http.Response{StatusCode: http.StatusOK, Header: h, Body: http.NoBody}, nil
		}),
		vinted.NewMemoryStore(vinted.WithFallback(nil)),
	)

	_, err := s.Acquire(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://www.vinted.fr", gotURL)
	assert.Equal(t, "https://www.vinted.fr", gotOrigin)
}

func TestSession_Acquire_Overwrites(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if n.Add(1) == 1 {
			w.Header().Add("Set-Cookie", "access_token_web=first")
		} else {
			w.Header().Add("Set-Cookie", "access_token_web=second")
		}
	}))
	defer srv.Close()

	store := vinted.NewMemoryStore(vinted.WithFallback(nil))
	s := vinted.NewSession(srv.Client(), store,
		vinted.WithSessionSiteURL(func(string) string { return srv.URL }),
	)

	_, err := s.Acquire(context.Background(), "de")
	require.NoError(t, err)
	_, err = s.Acquire(context.Background(), "de")
	require.NoError(t, err)

	got, _ := store.Get("de")
	assert.Equal(t, "access_token_web=second", got)
}
