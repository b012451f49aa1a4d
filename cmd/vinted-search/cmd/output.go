package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/vinted-search/internal/vinted"
	"github.com/donaldgifford/vinted-search/pkg/query"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(w io.Writer, items []vinted.Item) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tBRAND\tSIZE\tSELLER\n")
	for i := range items {
		it := &items[i]
		seller := "-"
		if it.User != nil {
			seller = it.User.Login
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			truncate(it.Title, 40),
			it.DisplayPrice(),
			orDash(it.BrandTitle),
			orDash(it.SizeTitle),
			seller,
		)
	}
	return tw.finish()
}

func printBrandsTable(w io.Writer, brands []vinted.Brand) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tSLUG\tITEMS\n")
	for i := range brands {
		tw.writef("%d\t%s\t%s\t%d\n",
			brands[i].ID,
			brands[i].Title,
			brands[i].Slug,
			brands[i].ItemCount,
		)
	}
	return tw.finish()
}

func printParsedQuery(w io.Writer, pq *query.ParsedQuery) error {
	tw := newTabWriter(w)
	tw.writef("Valid:\t%v\n", pq.Valid)
	if pq.Valid {
		tw.writef("Variant:\t%s\n", pq.Variant)
		tw.writef("Query:\t%s\n", pq.QueryString)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputRaw pretty-prints a JSON payload, falling back to the raw bytes.
func outputRaw(w io.Writer, data []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	pretty.WriteByte('\n')
	_, err := pretty.WriteTo(w)
	return err
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
