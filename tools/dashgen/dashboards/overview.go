// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/vinted-search/tools/dashgen/panels"
)

// BuildOverview constructs the vinted-search overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Vinted Search Overview").
		Uid("vinted-search-overview").
		Tags([]string{"vinted", "vinted-search"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.BudgetGauge()).
		WithPanel(panels.NewListingsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Vinted API").
		WithPanel(panels.APICallsByOutcome()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()).
		WithPanel(panels.InvalidURLs()).
		WithPanel(panels.CookieFetches()))

	b.WithRow(dashboard.NewRowBuilder("Watches").
		WithPanel(panels.PollsByOutcome()).
		WithPanel(panels.PollCycleDuration()).
		WithPanel(panels.NewListingsRate()).
		WithPanel(panels.Notifications()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
