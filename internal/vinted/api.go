package vinted

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/vinted-search/internal/metrics"
)

const (
	catalogPath = "/api/v2/catalog/items"
	brandsPath  = "/api/v2/brands"

	endpointCatalog = "catalog"
	endpointBrands  = "brands"
	endpointCustom  = "custom"

	// acquireTimeout bounds a cookie acquisition that outlives its caller.
	acquireTimeout = 30 * time.Second
)

// Invoke issues an authenticated GET to endpointURL using the cookie for
// variant and returns the JSON body.
func (c *Client) Invoke(ctx context.Context, endpointURL, variant string) (json.RawMessage, error) {
	return c.invoke(ctx, endpointCustom, endpointURL, variant)
}

// Search translates sourceURL and queries the catalog endpoint of its
// variant. URLs that are not catalog URLs yield an empty JSON array and no
// error. When the API rejects the session cookie a refresh is scheduled in
// the background and the call fails with ErrAuthExpired; the caller has to
// retry to benefit from the new cookie.
func (c *Client) Search(
	ctx context.Context,
	sourceURL string,
	custom map[string]string,
) (json.RawMessage, error) {
	pq := c.translator.Translate(sourceURL, custom)
	if !pq.Valid {
		metrics.InvalidURLsTotal.Inc()
		c.log.Warn("url is not valid in search", "url", sourceURL)
		return json.RawMessage(`[]`), nil
	}

	u := c.siteURL(pq.Variant) + catalogPath + "?" + pq.QueryString

	data, err := c.invoke(ctx, endpointCatalog, u, pq.Variant)
	if err != nil {
		if isAuthExpired(err) {
			c.scheduleRefresh(ctx, pq.Variant)
			return nil, fmt.Errorf("searching catalog: %w: %w", ErrAuthExpired, err)
		}
		return nil, fmt.Errorf("searching catalog: %w", err)
	}

	return data, nil
}

// Brands looks up brands matching keyword on the given variant.
func (c *Client) Brands(ctx context.Context, keyword, variant string) (json.RawMessage, error) {
	variant = c.variantOrDefault(variant)
	u := c.siteURL(variant) + brandsPath + "?keyword=" + url.QueryEscape(keyword)

	data, err := c.invoke(ctx, endpointBrands, u, variant)
	if err != nil {
		return nil, fmt.Errorf("fetching brands: %w", err)
	}
	return data, nil
}

func (c *Client) invoke(
	ctx context.Context,
	endpoint, endpointURL, variant string,
) (json.RawMessage, error) {
	variant = c.variantOrDefault(variant)

	ctx, span := tracer.Start(ctx, "vinted.Client.Invoke", trace.WithAttributes(
		attribute.String("vinted.variant", variant),
		attribute.String("vinted.endpoint", endpoint),
	))
	defer span.End()

	data, err := c.doInvoke(ctx, endpoint, endpointURL, variant)
	metrics.APICallsTotal.WithLabelValues(endpoint, outcomeLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "api call failed")
		return nil, err
	}
	return data, nil
}

func (c *Client) doInvoke(
	ctx context.Context,
	endpoint, endpointURL, variant string,
) (json.RawMessage, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	cookie := c.cookie(ctx, variant)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrTransport, err)
	}
	req.Header = c.session.headers(variant)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: can not fetch Vinted API: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	if !json.Valid(body) {
		return nil, newMalformedError(resp.StatusCode, body)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(resp.StatusCode, body)
	}

	return json.RawMessage(body), nil
}

// cookie returns the stored cookie for variant, acquiring one if none is
// known. Acquisition failures are logged and the call proceeds without a
// cookie.
func (c *Client) cookie(ctx context.Context, variant string) string {
	if v, ok := c.store.Get(variant); ok {
		c.log.Debug("using cached cookie", "variant", variant)
		return v
	}

	c.log.Debug("fetching cookie", "variant", variant)
	ch := c.acquires.DoChan(variant, func() (any, error) {
		actx, cancel := detached(ctx)
		defer cancel()
		return c.session.Acquire(actx, variant)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Debug("cookie acquisition failed, continuing without cookie",
				"variant", variant,
				"error", res.Err,
			)
			return ""
		}
		return res.Val.(string) //nolint:forcetypeassert // Acquire only returns strings
	case <-ctx.Done():
		c.log.Debug("caller gave up waiting for cookie", "variant", variant, "error", ctx.Err())
		return ""
	}
}

// detached derives a context for an acquisition shared between callers.
// It keeps ctx's values but none of its cancellation, and is bounded by
// acquireTimeout instead.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), acquireTimeout)
}

// scheduleRefresh starts one background re-acquisition per variant. Its
// result is not awaited by the failing call.
func (c *Client) scheduleRefresh(ctx context.Context, variant string) {
	metrics.AuthRefreshTotal.Inc()
	c.log.Info("session cookie rejected, refreshing in background", "variant", variant)

	ch := c.refreshes.DoChan(variant, func() (any, error) {
		bg, cancel := detached(ctx)
		defer cancel()
		return c.session.Acquire(bg, variant)
	})

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if res := <-ch; res.Err != nil {
			c.log.Warn("background cookie refresh failed", "variant", variant, "error", res.Err)
		}
	}()
}

// outcomeLabel maps an error to a low-cardinality metric label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrDailyLimitReached):
		return "rate_limited"
	case errors.Is(err, ErrNoCookieHeader):
		return "no_cookie_header"
	case errors.Is(err, ErrTokenNotFound):
		return "token_not_found"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrUnexpectedStatus):
		return "status"
	default:
		return "transport"
	}
}
