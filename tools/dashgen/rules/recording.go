package rules

// Recording rule names referenced by dashboards and alerts.
const (
	HTTPRequestsRate = "vinted:http_requests:rate5m"
	HTTPErrorsRate   = "vinted:http_errors:rate5m"
	APICallsRate     = "vinted:api_calls:rate5m"
	APIFailuresRate  = "vinted:api_failures:rate5m"
	WatchPollsRate   = "vinted:watch_polls:rate5m"
)

// RecordingRules returns the pre-computed rates used by the dashboard and
// the alerts.
func RecordingRules() PrometheusRule {
	return resource(RuleGroup{
		Name:     "vinted-search-recording-rules",
		Interval: "1m",
		Rules: []Rule{
			{Record: HTTPRequestsRate, Expr: `sum(rate(vinted_http_requests_total[5m]))`},
			{Record: HTTPErrorsRate, Expr: `sum(rate(vinted_http_requests_total{status=~"5.."}[5m]))`},
			{Record: APICallsRate, Expr: `sum by (endpoint, outcome) (rate(vinted_api_calls_total[5m]))`},
			{Record: APIFailuresRate, Expr: `sum(rate(vinted_api_calls_total{outcome!="success"}[5m]))`},
			{Record: WatchPollsRate, Expr: `sum by (outcome) (rate(vinted_watch_polls_total[5m]))`},
		},
	})
}
