package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"

	"github.com/donaldgifford/vinted-search/tools/dashgen/rules"
)

// PollsByOutcome shows watch polls per minute by outcome.
func PollsByOutcome() *timeseries.PanelBuilder {
	return series("Watch Polls / min", "Watch polls per minute split by outcome", 8).
		WithTarget(PromQuery(`sum by (outcome) (`+rules.WatchPollsRate+`) * 60`, "{{outcome}}", "A"))
}

// PollCycleDuration shows the p95 duration of a full cycle over all watches.
func PollCycleDuration() *timeseries.PanelBuilder {
	return series("Poll Cycle (p95)", "95th percentile duration of a full polling cycle over all watches", 8).
		WithTarget(Quantile(0.95, "vinted_watch_poll_duration_seconds", "p95", "A")).
		Unit("s")
}

// NewListingsRate shows listings per hour that earlier polls had not seen.
func NewListingsRate() *timeseries.PanelBuilder {
	return bars(series("New Listings / h", "Listings not seen in earlier polls", 8), 20).
		WithTarget(PromQuery(jobExpr("increase", "vinted_watch_new_items_total", "1h"), "listings/h", "A"))
}

// Notifications shows Discord webhook latency and failed deliveries.
func Notifications() *timeseries.PanelBuilder {
	return series("Notifications", "Discord webhook p95 latency and failed deliveries", FullWidth).
		WithTarget(Quantile(0.95, "vinted_notification_duration_seconds", "p95 latency (s)", "A")).
		WithTarget(PromQuery(jobExpr("increase", "vinted_notification_failures_total", "5m"), "failures", "B")).
		Legend(TableLegend("max"))
}
