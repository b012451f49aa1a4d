package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/vinted"
	"github.com/donaldgifford/vinted-search/pkg/query"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{name: "short", in: "Nike Air", maxLen: 40, want: "Nike Air"},
		{name: "exact", in: "abcdef", maxLen: 6, want: "abcdef"},
		{name: "long", in: "abcdefghij", maxLen: 6, want: "abc..."},
		{name: "multibyte", in: "Pull côtelé à col roulé", maxLen: 10, want: "Pull cô..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.in, tt.maxLen))
		})
	}
}

func TestPrintItemsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printItemsTable(&buf, []vinted.Item{
		{
			ID:         42,
			Title:      "Air Jordan 1",
			Price:      vinted.Price{Amount: "120.0", CurrencyCode: "EUR"},
			BrandTitle: "Jordan",
			User:       &vinted.User{Login: "sneakerhead"},
		},
		{ID: 43, Title: "No brand", Price: vinted.Price{Amount: "5"}, Currency: "PLN"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "120.0 EUR")
	assert.Contains(t, out, "sneakerhead")
	assert.Contains(t, out, "5 PLN")
	assert.Contains(t, out, "-")
}

func TestPrintParsedQuery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printParsedQuery(&buf, &query.ParsedQuery{
		Valid:       true,
		Variant:     "de",
		QueryString: "search_text=levis",
	}))
	assert.Contains(t, buf.String(), "de")
	assert.Contains(t, buf.String(), "search_text=levis")

	buf.Reset()
	require.NoError(t, printParsedQuery(&buf, &query.ParsedQuery{}))
	assert.Contains(t, buf.String(), "false")
	assert.NotContains(t, buf.String(), "Variant")
}

func TestOutputRaw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRaw(&buf, []byte(`{"items":[]}`)))
	assert.Equal(t, "{\n  \"items\": []\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, outputRaw(&buf, []byte(`not json`)))
	assert.Equal(t, "not json\n", buf.String())
}
