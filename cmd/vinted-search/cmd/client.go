package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/donaldgifford/vinted-search/internal/config"
	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// newVintedClient builds the API client from config. Cookies from the
// config file take precedence over environment variables.
func newVintedClient(cfg *config.Config, log *slog.Logger) (*vinted.Client, *vinted.RateLimiter) {
	vc := cfg.Vinted

	store := vinted.NewMemoryStore(vinted.WithFallback(vinted.ChainFallback(
		vinted.StaticFallback(vc.Cookies),
		vinted.EnvFallback(vc.CookieEnvPrefix),
	)))

	opts := []vinted.Option{
		vinted.WithHTTPClient(vinted.NewHTTPClient(vc.CloudflareBypass)),
		vinted.WithCookieStore(store),
		vinted.WithHost(vc.Host),
		vinted.WithDefaultVariant(vc.DefaultVariant),
		vinted.WithLogger(log),
	}
	if vc.BaseURL != "" {
		base := strings.TrimRight(vc.BaseURL, "/")
		opts = append(opts, vinted.WithSiteURL(func(string) string { return base }))
	}
	if vc.UserAgent != "" {
		opts = append(opts, vinted.WithUserAgent(vc.UserAgent))
	}

	var rl *vinted.RateLimiter
	if vc.RateLimit.PerSecond > 0 {
		rl = vinted.NewRateLimiter(vc.RateLimit.PerSecond, vc.RateLimit.Burst, vc.RateLimit.DailyLimit)
		opts = append(opts, vinted.WithRateLimiter(rl))
	}

	return vinted.New(opts...), rl
}

// requestContext bounds a one-off command by the configured request timeout.
func requestContext(parent context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Vinted.RequestTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, cfg.Vinted.RequestTimeout)
}
