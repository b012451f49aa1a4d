package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/pkg/query"
)

func TestDecodeURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "no escapes", in: "https://www.vinted.fr/catalog", want: "https://www.vinted.fr/catalog"},
		{name: "space", in: "a%20b", want: "a b"},
		{name: "brackets", in: "catalog%5B%5D=1", want: "catalog[]=1"},
		{name: "reserved ampersand kept", in: "h%26m", want: "h%26m"},
		{name: "reserved slash kept lowercase hex", in: "a%2fb", want: "a%2fb"},
		{name: "reserved plus kept", in: "a%2Bb", want: "a%2Bb"},
		{name: "percent sign", in: "100%25", want: "100%"},
		{name: "two byte utf8", in: "caf%C3%A9", want: "café"},
		{name: "three byte utf8", in: "%E2%82%AC", want: "€"},
		{name: "truncated escape", in: "abc%2", wantErr: true},
		{name: "non hex escape", in: "%zz", wantErr: true},
		{name: "lone continuation byte", in: "%A9", wantErr: true},
		{name: "truncated multibyte", in: "%C3", wantErr: true},
		{name: "overlong encoding", in: "%C0%AF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := query.DecodeURI(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, query.ErrMalformedEscape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
