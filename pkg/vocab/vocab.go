// Package vocab holds the static vocabularies of the recipe search API:
// diet and health labels, cuisine, meal and dish types, image sizes and
// nutrient codes.
//
// The tables are constant data. Each typed value is the literal the search
// API expects in a query string; Label returns the display text.
package vocab

// entry pairs an API value with its display label.
type entry[T ~string] struct {
	Value T
	Label string
}

// table is an ordered, read-only vocabulary.
type table[T ~string] []entry[T]

func (t table[T]) values() []T {
	out := make([]T, len(t))
	for i, e := range t {
		out[i] = e.Value
	}
	return out
}

func (t table[T]) label(v T) string {
	for _, e := range t {
		if e.Value == v {
			return e.Label
		}
	}
	return string(v)
}

func (t table[T]) has(v T) bool {
	for _, e := range t {
		if e.Value == v {
			return true
		}
	}
	return false
}
