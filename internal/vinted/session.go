package vinted

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/vinted-search/internal/metrics"
)

// SessionCookieName is the cookie the site root sets for anonymous
// API access.
const SessionCookieName = "access_token_web"

// Session acquires session cookies from the site root and records them
// in a CookieStore.
type Session struct {
	doer      HTTPDoer
	store     CookieStore
	siteURL   func(variant string) string
	userAgent string
	log       *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionSiteURL overrides how the site root is derived from a variant.
func WithSessionSiteURL(f func(variant string) string) SessionOption {
	return func(s *Session) {
		s.siteURL = f
	}
}

// WithSessionUserAgent overrides the User-Agent header.
func WithSessionUserAgent(ua string) SessionOption {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// WithSessionLogger sets the logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession creates a Session storing cookies in store.
func NewSession(doer HTTPDoer, store CookieStore, opts ...SessionOption) *Session {
	s := &Session{
		doer:      doer,
		store:     store,
		siteURL:   DefaultSiteURL,
		userAgent: DefaultUserAgent,
		log:       discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Acquire fetches a fresh session cookie for variant and stores it,
// replacing any previous value. The returned cookie is the "name=value"
// pair ready for a Cookie header.
func (s *Session) Acquire(ctx context.Context, variant string) (string, error) {
	variant = normalizeVariant(variant)

	ctx, span := tracer.Start(ctx, "vinted.Session.Acquire",
		trace.WithAttributes(attribute.String("vinted.variant", variant)))
	defer span.End()

	cookie, err := s.fetch(ctx, variant)
	if err != nil {
		metrics.CookieFetchesTotal.WithLabelValues(outcomeLabel(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "cookie acquisition failed")
		return "", fmt.Errorf("acquiring cookie for %q: %w", variant, err)
	}

	metrics.CookieFetchesTotal.WithLabelValues("success").Inc()
	s.store.Set(variant, cookie)
	s.log.Info("fetched cookie", "variant", variant)

	return cookie, nil
}

func (s *Session) fetch(ctx context.Context, variant string) (string, error) {
	site := s.siteURL(variant)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %w", ErrTransport, err)
	}
	req.Header = s.headers(variant)

	resp, err := s.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", ErrTransport, site, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the page itself is unused.
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // best-effort drain

	return extractSessionCookie(resp.Header.Values("Set-Cookie"))
}

func (s *Session) headers(variant string) http.Header {
	return browserHeaders(s.userAgent, s.siteURL(variant))
}

// extractSessionCookie finds the session token among Set-Cookie values and
// returns its name=value pair.
func extractSessionCookie(values []string) (string, error) {
	if len(values) == 0 {
		return "", ErrNoCookieHeader
	}

	for _, v := range values {
		// Some transports fold several cookies into one comma-joined line.
		for _, c := range strings.Split(v, ", ") {
			c = strings.TrimSpace(c)
			if !strings.HasPrefix(c, SessionCookieName) {
				continue
			}
			pair, _, _ := strings.Cut(c, ";")
			return pair, nil
		}
	}

	return "", ErrTokenNotFound
}
