package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat shows the last /healthz probe result.
func HealthzStat() *stat.PanelBuilder {
	return counterStat("Healthz", "Health check status (1 = ok, 0 = failing)",
		`vinted_healthz_up{`+Job+`}`, StatWidth, StatHeight).
		Thresholds(ThresholdsRedGreen(1)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// BudgetGauge shows daily API usage against DailyBudgetHint.
func BudgetGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("API Budget").
		Description("Vinted API calls in the rolling 24h window").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`vinted_api_daily_usage{`+Job+`}`, "", "A")).
		Min(0).
		Max(DailyBudgetHint).
		Thresholds(ThresholdsGreenYellowRed(DailyBudgetHint*0.8, DailyBudgetHint*0.95)).
		ColorScheme(ColorSchemeThresholds())
}

// NewListingsStat shows listings reported by watches in the last day.
func NewListingsStat() *stat.PanelBuilder {
	return counterStat("New Listings (24h)", "Listings reported by watches in the last 24 hours",
		jobExpr("increase", "vinted_watch_new_items_total", "24h"), StatWidth, StatHeight).
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return counterStat("Uptime", "Time since process start",
		`time() - process_start_time_seconds{`+Job+`}`, StatWidth, StatHeight).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}
