// Package vinted provides a Vinted internal API client that manages the
// anonymous session cookie the API requires, abstracted behind interfaces
// for testability.
package vinted

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/vinted-search/pkg/query"
)

// DefaultVariant is used when no site variant is given.
const DefaultVariant = "fr"

var tracer = otel.Tracer("github.com/donaldgifford/vinted-search/internal/vinted")

// HTTPDoer sends an HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// VintedClient defines the operations exposed to callers.
type VintedClient interface {
	AcquireCookie(ctx context.Context, variant string) (string, error)
	Translate(rawURL string, custom map[string]string) query.ParsedQuery
	ClearCookies()
	Brands(ctx context.Context, keyword, variant string) (json.RawMessage, error)
	Search(ctx context.Context, sourceURL string, custom map[string]string) (json.RawMessage, error)
}

// Client implements VintedClient.
type Client struct {
	doer        HTTPDoer
	store       CookieStore
	session     *Session
	translator  query.Translator
	siteURL     func(variant string) string
	userAgent   string
	variant     string
	rateLimiter *RateLimiter
	log         *slog.Logger

	acquires  singleflight.Group
	refreshes singleflight.Group
	inflight  sync.WaitGroup
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the transport. Defaults to NewHTTPClient(false).
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithCookieStore injects the cookie store. Defaults to NewMemoryStore().
func WithCookieStore(s CookieStore) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithHost sets the host prefix used both to validate source URLs and to
// build site and API URLs, e.g. "www.vinted".
func WithHost(host string) Option {
	return func(c *Client) {
		c.translator.Host = host
		c.siteURL = func(variant string) string {
			return "https://" + host + "." + variant
		}
	}
}

// WithSiteURL overrides how the site root is derived from a variant.
// API endpoints are built relative to it.
func WithSiteURL(f func(variant string) string) Option {
	return func(c *Client) {
		c.siteURL = f
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithDefaultVariant sets the variant used when a call names none.
func WithDefaultVariant(variant string) Option {
	return func(c *Client) {
		c.variant = variant
	}
}

// WithRateLimiter gates every API call through r.Wait.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		translator: query.Translator{Host: query.DefaultHost},
		siteURL:    DefaultSiteURL,
		userAgent:  DefaultUserAgent,
		variant:    DefaultVariant,
		log:        discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = NewHTTPClient(false)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	c.session = NewSession(c.doer, c.store,
		WithSessionSiteURL(c.siteURL),
		WithSessionUserAgent(c.userAgent),
		WithSessionLogger(c.log),
	)
	return c
}

// AcquireCookie fetches and stores a fresh session cookie for variant.
func (c *Client) AcquireCookie(ctx context.Context, variant string) (string, error) {
	return c.session.Acquire(ctx, c.variantOrDefault(variant))
}

// Translate converts a source URL into a catalog API query.
func (c *Client) Translate(rawURL string, custom map[string]string) query.ParsedQuery {
	return c.translator.Translate(rawURL, custom)
}

// ClearCookies drops every stored cookie. Fallback cookies still apply.
func (c *Client) ClearCookies() {
	c.store.Clear()
}

// Wait blocks until background cookie refreshes have finished.
func (c *Client) Wait() {
	c.inflight.Wait()
}

// DefaultSiteURL returns https://www.vinted.<variant>.
func DefaultSiteURL(variant string) string {
	return "https://" + query.DefaultHost + "." + variant
}

func (c *Client) variantOrDefault(variant string) string {
	if variant == "" {
		return c.variant
	}
	return variant
}

func normalizeVariant(variant string) string {
	if variant == "" {
		return DefaultVariant
	}
	return variant
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
