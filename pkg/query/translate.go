// Package query translates Vinted catalog page URLs, as copied from a
// browser address bar, into query strings for the internal catalog API.
package query

import (
	"sort"
	"strings"
)

// DefaultHost is the host prefix every source URL must start with. The
// site variant follows it after a dot.
const DefaultHost = "www.vinted"

// idSuffixed lists array parameters whose API name carries an "_id"
// suffix that the public site omits.
var idSuffixed = map[string]struct{}{
	"catalog": {},
	"status":  {},
}

// ParsedQuery is the result of translating a source URL. When Valid is
// false the other fields are empty.
type ParsedQuery struct {
	Valid       bool   `json:"valid"`
	Variant     string `json:"variant,omitempty"`
	QueryString string `json:"query_string"`
}

// Translator converts source URLs for a given host prefix.
type Translator struct {
	Host string
}

// Translate converts rawURL using the default host.
func Translate(rawURL string, custom map[string]string) ParsedQuery {
	t := Translator{Host: DefaultHost}
	return t.Translate(rawURL, custom)
}

// Translate converts rawURL into the catalog API query string. Entries of
// custom are applied last and override anything derived from the URL.
// Translate never panics; every failure yields an invalid ParsedQuery.
func (t Translator) Translate(rawURL string, custom map[string]string) (pq ParsedQuery) {
	defer func() {
		if recover() != nil {
			pq = ParsedQuery{}
		}
	}()

	decoded, err := DecodeURI(rawURL)
	if err != nil {
		return ParsedQuery{}
	}

	variant, ok := t.variant(decoded)
	if !ok {
		return ParsedQuery{}
	}

	params := Extract(decoded)
	Merge(params, custom)

	return ParsedQuery{
		Valid:       true,
		Variant:     variant,
		QueryString: params.Encode(),
	}
}

// variant returns the lowercase alphabetic run that follows
// "https://<host>." in u.
func (t Translator) variant(u string) (string, bool) {
	host := t.Host
	if host == "" {
		host = DefaultHost
	}
	prefix := "https://" + host + "."
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}

	rest := u[len(prefix):]
	n := 0
	for n < len(rest) && rest[n] >= 'a' && rest[n] <= 'z' {
		n++
	}
	if n == 0 {
		return "", false
	}
	return rest[:n], true
}

// Extract tokenizes the query part of an already decoded URL into
// catalog API parameters.
func Extract(decoded string) *Params {
	params := NewParams()

	q := decoded
	if i := strings.IndexByte(q, '?'); i >= 0 {
		q = q[i+1:]
	} else {
		return params
	}
	if i := strings.IndexByte(q, '#'); i >= 0 {
		q = q[:i]
	}

	for _, segment := range strings.Split(q, "&") {
		tok, ok := scanSegment(segment)
		if !ok {
			continue
		}

		if !tok.array {
			params.Set(tok.name, tok.value)
			continue
		}

		name := tok.name
		if _, ok := idSuffixed[name]; ok {
			name += "_id"
		}
		params.Append(name+"s", tok.value)
	}

	return params
}

// Merge applies custom on top of params. Keys new to params are appended
// in sorted order so that the encoded output is reproducible.
func Merge(params *Params, custom map[string]string) {
	if len(custom) == 0 {
		return
	}
	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Set(k, custom[k])
	}
}

type token struct {
	name  string
	array bool
	value string
}

// scanSegment reads `name`, an optional `[]` marker, `=` and the longest
// run of permitted value characters. Trailing characters outside the value
// alphabet are ignored.
func scanSegment(s string) (token, bool) {
	i := 0
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == 0 {
		return token{}, false
	}
	tok := token{name: s[:i]}

	if strings.HasPrefix(s[i:], "[]") {
		tok.array = true
		i += 2
	}
	if i >= len(s) || s[i] != '=' {
		return token{}, false
	}
	i++

	var v strings.Builder
	for _, r := range s[i:] {
		if !isValueRune(r) {
			break
		}
		if r == ' ' {
			r = '+'
		}
		v.WriteRune(r)
	}
	tok.value = v.String()

	return tok, true
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z')
}

func isValueRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '.', r == '_', r == '+', r == '%':
		return true
	case r >= 'À' && r <= 'ú':
		return true
	}
	return false
}
