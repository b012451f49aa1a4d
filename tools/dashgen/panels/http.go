package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"

	"github.com/donaldgifford/vinted-search/tools/dashgen/rules"
)

const httpDuration = "vinted_http_request_duration_seconds"

// RequestRate shows requests per second served by the API.
func RequestRate() *timeseries.PanelBuilder {
	return series("Request Rate", "API server requests per second", TSWidth).
		WithTarget(PromQuery(rules.HTTPRequestsRate, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max"))
}

// LatencyPercentiles shows p50, p95 and p99 request durations.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return series("Latency Percentiles", "API server request duration percentiles", TSWidth).
		WithTarget(Quantile(0.50, httpDuration, "p50", "A")).
		WithTarget(Quantile(0.95, httpDuration, "p95", "B")).
		WithTarget(Quantile(0.99, httpDuration, "p99", "C")).
		Unit("s").
		Legend(TableLegend("mean", "max"))
}

// ErrorRate shows 5xx responses as a share of all requests. Upstream
// failures surface here as 502s.
func ErrorRate() *timeseries.PanelBuilder {
	return series("Error Rate %", "HTTP 5xx responses as percentage of total requests, 502 means Vinted failed", TSWidth).
		WithTarget(PromQuery(rules.HTTPErrorsRate+" / "+rules.HTTPRequestsRate+" * 100", "error %", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
