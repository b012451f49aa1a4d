package query

import "strings"

// paramValue is a single parameter value: either a scalar or a list collected
// from repeated array-style occurrences.
type paramValue struct {
	Scalar string
	List   []string
	IsList bool
}

// String renders the value the way the catalog API expects it. Lists are
// comma-joined without further escaping.
func (v paramValue) String() string {
	if v.IsList {
		return strings.Join(v.List, ",")
	}
	return v.Scalar
}

// Params is an insertion-ordered parameter map. Overwriting a key keeps
// the position where it was first inserted.
type Params struct {
	keys   []string
	values map[string]paramValue
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]paramValue)}
}

// Set stores a scalar value under key, replacing any scalar or list.
func (p *Params) Set(key, value string) {
	p.put(key, paramValue{Scalar: value})
}

// Append adds value to the list stored under key. A scalar previously
// stored under key is discarded.
func (p *Params) Append(key, value string) {
	cur, ok := p.values[key]
	if !ok || !cur.IsList {
		p.put(key, paramValue{List: []string{value}, IsList: true})
		return
	}
	cur.List = append(cur.List, value)
	p.values[key] = cur
}

// Encode joins every entry as key=value with "&".
func (p *Params) Encode() string {
	parts := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts = append(parts, k+"="+p.values[k].String())
	}
	return strings.Join(parts, "&")
}

func (p *Params) put(key string, v paramValue) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}
