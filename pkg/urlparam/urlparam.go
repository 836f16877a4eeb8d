// Package urlparam is the navigable-address side of URL synchronization.
//
// State code hands a Navigator the complete set of query values; the
// navigator serializes them and queues a URL patch for the client, which
// applies it with history.pushState or history.replaceState.
//
// Serialization rules:
//   - keys are sorted, so equal mappings give equal query strings
//   - a multi-valued key is repeated: diet=balanced&diet=low-fat
//   - the query string is replaced as a whole, never merged with the
//     previous one
//
// Example:
//
//	nav := urlparam.NewNavigator(session.QueuePatch)
//	nav.Navigate(map[string][]string{"mealType": {"Dinner"}}, urlparam.ModeReplace)
package urlparam

import (
	"net/url"
	"strings"
)

// URLMode determines how the client applies a URL update.
type URLMode int

const (
	// ModePush adds a new history entry.
	ModePush URLMode = iota

	// ModeReplace replaces the current history entry.
	ModeReplace
)

// String returns "push" or "replace".
func (m URLMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// ParseMode parses "push" or "replace". Anything else is ModeReplace.
func ParseMode(s string) URLMode {
	if strings.EqualFold(s, "push") {
		return ModePush
	}
	return ModeReplace
}

// Encode serializes values into a query string without the leading "?".
// Empty values are kept as "key=".
func Encode(values map[string][]string) string {
	return url.Values(values).Encode()
}

// Patch is a queued URL update.
type Patch struct {
	Mode  URLMode
	Query string
}

// URL returns path with the patch's query string applied. An empty query
// yields the bare path.
func (p Patch) URL(path string) string {
	if p.Query == "" {
		return path
	}
	return path + "?" + p.Query
}
