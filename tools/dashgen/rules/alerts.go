package rules

// AlertRules returns the operational alerts for vinted-search.
func AlertRules() PrometheusRule {
	return resource(RuleGroup{
		Name: "vinted-search-alerts",
		Rules: []Rule{
			alert("VintedSearchDown", `absent(up{job="vinted-search"})`, "2m", "critical",
				"vinted-search is down",
				"The vinted-search job has been absent for more than 2 minutes."),
			alert("VintedSearchHighErrorRate", HTTPErrorsRate+` / `+HTTPRequestsRate+` > 0.05`, "5m", "warning",
				"High HTTP error rate on vinted-search",
				"More than 5% of API server requests returned 5xx over the last 5 minutes."),
			alert("VintedAPIFailing", APIFailuresRate+` / sum(`+APICallsRate+`) > 0.5`, "10m", "warning",
				"Most Vinted API calls are failing",
				"More than half of the catalog calls failed for 10 minutes. The site may be blocking the client or the cookie flow changed."),
			alert("VintedCookieAcquisitionFailing", `increase(vinted_cookie_fetches_total{outcome!="success"}[15m]) > 3`, "0m", "warning",
				"Session cookie acquisition keeps failing",
				"The site root stopped returning a session cookie. Configure a fallback cookie or enable cloudflare_bypass."),
			alert("VintedDailyBudgetSpent", `increase(vinted_api_daily_limit_hits_total[5m]) > 0`, "0m", "warning",
				"Daily Vinted API budget is spent",
				"Calls are refused until the 24h window resets. Watches pause until then."),
			alert("VintedNotificationFailures", `increase(vinted_notification_failures_total[5m]) > 0`, "1m", "warning",
				"Notification delivery failures detected",
				"One or more Discord webhook deliveries for new listings have failed."),
		},
	})
}

func alert(name, expr, forDuration, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDuration,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
