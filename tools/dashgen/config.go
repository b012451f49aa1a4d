package main

import (
	"errors"

	"github.com/donaldgifford/vinted-search/tools/dashgen/rules"
)

// KnownMetrics is the set of metric names exported by vinted-search plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP server.
	"vinted_http_request_duration_seconds":        true,
	"vinted_http_request_duration_seconds_bucket": true,
	"vinted_http_requests_total":                  true,
	"vinted_healthz_up":                           true,

	// Vinted API.
	"vinted_api_calls_total":                     true,
	"vinted_api_request_duration_seconds_bucket": true,
	"vinted_invalid_urls_total":                  true,
	"vinted_api_daily_usage":                     true,
	"vinted_api_daily_limit_hits_total":          true,

	// Session cookies.
	"vinted_cookie_fetches_total": true,
	"vinted_auth_refresh_total":   true,

	// Watches and notifications.
	"vinted_watch_polls_total":                    true,
	"vinted_watch_poll_duration_seconds_bucket":   true,
	"vinted_watch_new_items_total":                true,
	"vinted_notification_failures_total":          true,
	"vinted_notification_duration_seconds_bucket": true,

	// Recording rules.
	rules.HTTPRequestsRate: true,
	rules.HTTPErrorsRate:   true,
	rules.APICallsRate:     true,
	rules.APIFailuresRate:  true,
	rules.WatchPollsRate:   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
