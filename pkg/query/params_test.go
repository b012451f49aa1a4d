package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/vinted-search/pkg/query"
)

func TestParams_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(p *query.Params)
		want  string
	}{
		{
			name: "overwrite keeps first insertion position",
			build: func(p *query.Params) {
				p.Set("b", "1")
				p.Append("a", "x")
				p.Set("c", "2")
				p.Append("a", "y")
				p.Set("b", "3")
			},
			want: "b=3&a=x,y&c=2",
		},
		{
			name: "set replaces list",
			build: func(p *query.Params) {
				p.Append("colors", "1")
				p.Append("colors", "2")
				p.Set("colors", "red")
			},
			want: "colors=red",
		},
		{
			name: "append replaces scalar",
			build: func(p *query.Params) {
				p.Set("sizes", "m")
				p.Append("sizes", "l")
			},
			want: "sizes=l",
		},
		{
			name: "list values are not escaped",
			build: func(p *query.Params) {
				p.Append("brand_ids", "53")
				p.Append("brand_ids", "a b")
			},
			want: "brand_ids=53,a b",
		},
		{
			name:  "empty",
			build: func(*query.Params) {},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := query.NewParams()
			tt.build(p)
			assert.Equal(t, tt.want, p.Encode())
		})
	}
}
