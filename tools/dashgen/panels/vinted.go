package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"

	"github.com/donaldgifford/vinted-search/tools/dashgen/rules"
)

// APICallsByOutcome stacks catalog and brands calls by outcome.
func APICallsByOutcome() *timeseries.PanelBuilder {
	p := series("API Calls by Outcome",
		"Catalog and brands calls per second; non-success outcomes point at cookie or upstream trouble", TSWidth)
	return bars(p, 30).
		WithTarget(PromQuery(`sum by (outcome) (`+rules.APICallsRate+`)`, "{{outcome}}", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max"))
}

// APILatency shows the p95 Vinted round trip per endpoint.
func APILatency() *timeseries.PanelBuilder {
	return series("API Latency (p95)", "95th percentile Vinted API round trip per endpoint", TSWidth).
		WithTarget(Quantile(0.95, "vinted_api_request_duration_seconds", "{{endpoint}}", "A", "endpoint")).
		Unit("s")
}

// DailyUsage plots the rolling 24h call count against DailyBudgetHint.
func DailyUsage() *timeseries.PanelBuilder {
	return series("Daily Usage", "Calls made in the rolling 24h window of the client rate limiter", 8).
		WithTarget(PromQuery(`vinted_api_daily_usage{`+Job+`}`, "usage", "A")).
		Thresholds(ThresholdsGreenYellowRed(DailyBudgetHint*0.8, DailyBudgetHint)).
		ColorScheme(ColorSchemeThresholds())
}

// LimitHits counts calls refused by the daily budget.
func LimitHits() *stat.PanelBuilder {
	return counterStat("Budget Refusals (24h)", "Calls refused because the daily budget was spent",
		jobExpr("increase", "vinted_api_daily_limit_hits_total", "24h"), 8, TSHeight).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// InvalidURLs counts searches answered with [] because the URL did not
// translate.
func InvalidURLs() *stat.PanelBuilder {
	return counterStat("Untranslatable URLs (24h)",
		"Searches answered with an empty array because the URL was not a catalog URL",
		jobExpr("increase", "vinted_invalid_urls_total", "24h"), 8, TSHeight).
		Thresholds(ThresholdsGreenYellowRed(1, 20)).
		GraphMode(common.BigValueGraphModeNone)
}

// CookieFetches shows acquisitions by outcome next to refreshes caused by
// rejected tokens.
func CookieFetches() *timeseries.PanelBuilder {
	return series("Session Cookies",
		"Cookie acquisitions by outcome and refreshes caused by rejected tokens, per hour", TSWidth).
		WithTarget(PromQuery(
			`sum by (outcome) (`+jobExpr("increase", "vinted_cookie_fetches_total", "1h")+`)`,
			"fetch {{outcome}}", "A",
		)).
		WithTarget(PromQuery(jobExpr("increase", "vinted_auth_refresh_total", "1h"), "auth refresh", "B")).
		Legend(TableLegend("sum"))
}
