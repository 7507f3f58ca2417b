package scanner

import "fmt"

// Filter decides which matched tokens reach the output. It never alters a
// token's text.
type Filter struct {
	discard map[Category]bool
}

// DefaultFilter discards whitespace and block comments. Line comments are
// kept.
func DefaultFilter() *Filter {
	f, _ := NewFilter(Whitespace, BlockComment)
	return f
}

// NewFilter returns a filter that discards the given categories.
func NewFilter(discard ...Category) (*Filter, error) {
	f := &Filter{discard: make(map[Category]bool, len(discard))}
	for _, c := range discard {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown category '%s'", c)
		}
		f.discard[c] = true
	}
	return f, nil
}

// Retains reports whether tokens of the category are kept.
func (f *Filter) Retains(category Category) bool {
	return !f.discard[category]
}

// Discarded returns the discarded categories in priority order.
func (f *Filter) Discarded() []Category {
	var out []Category
	for _, c := range Categories() {
		if f.discard[c] {
			out = append(out, c)
		}
	}
	return out
}

// Process appends tok to out unless its category is discarded.
func (f *Filter) Process(tok *Token, out []*Token) []*Token {
	if !f.Retains(tok.Type) {
		return out
	}
	return append(out, tok)
}
