// file: internal/search/suggest.go
// version: 1.0.0
// guid: 7247f3f3-c22d-4dd4-a75a-26d765309d32

package search

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultSuggestionLimit caps Suggestions output when limit <= 0.
const DefaultSuggestionLimit = 5

// Suggestions returns distinct values of field that fuzzily match query, in
// input order, for typeahead completion. Matching is case- and
// diacritic-insensitive.
func Suggestions(records []Record, query, field string, limit int) []string {
	if query == "" || field == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	normQuery := Normalize(query, false)

	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		value, ok := rec[field].(string)
		if !ok || value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		if fuzzy.MatchFold(normQuery, Normalize(value, false)) {
			seen[value] = struct{}{}
			out = append(out, value)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}
