// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metric names.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/vinted-search/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// panelJSON is the subset of the Grafana panel model inspected here.
type panelJSON struct {
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Panels      []panelJSON `json:"panels"`
	Targets     []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

// Dashboard validates every panel target of a built dashboard. Panels are
// read from the dashboard's JSON model.
func Dashboard(dash any, known map[string]bool) *Result {
	res := &Result{}

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("encoding dashboard: %v", err)
		return res
	}
	var model struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for i := range model.Panels {
		checkPanel(res, &model.Panels[i], known)
	}
	return res
}

func checkPanel(res *Result, p *panelJSON, known map[string]bool) {
	if p.Type == "row" {
		for i := range p.Panels {
			checkPanel(res, &p.Panels[i], known)
		}
		return
	}

	if p.Description == "" {
		res.warnf("panel %q has no description", p.Title)
	}
	if len(p.Targets) == 0 {
		res.errorf("panel %q has no targets", p.Title)
	}
	for _, t := range p.Targets {
		checkExpr(res, "panel "+p.Title, t.Expr, known)
	}
}

// Rules validates recording and alert rule expressions. Recorded names are
// added to the known set for the rules that follow them.
func Rules(cr *rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}

	names := make(map[string]bool, len(known))
	for k, v := range known {
		names[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for i := range g.Rules {
			r := &g.Rules[i]
			id := r.Name()
			if id == "" {
				res.errorf("group %q: rule without record or alert name", g.Name)
			}
			checkExpr(res, "rule "+id, r.Expr, names)
			if r.Record != "" {
				names[r.Record] = true
			}
		}
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		res.errorf("%s: empty expression", where)
		return
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}
