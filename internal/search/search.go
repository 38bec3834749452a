// file: internal/search/search.go
// version: 1.1.0
// guid: 6c105025-7514-45fd-9ef0-96c60d97746a

package search

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum token similarity for a fuzzy field match.
// Substring hits always count as a full match regardless of threshold.
const DefaultThreshold = 0.7

// Record is an opaque caller-defined structure. Only string-valued fields
// participate in matching; everything else is skipped. Records are never
// mutated.
type Record map[string]any

// Options configures a single search call. The zero value scans every
// string field of the first record, folds diacritics, applies
// DefaultThreshold and returns all matches.
type Options struct {
	// Fields lists the field names to scan. Empty means every string field
	// of the first record.
	Fields []string
	// DiacriticSensitive disables Turkish diacritic folding when true.
	DiacriticSensitive bool
	// Limit caps the number of results. Zero or negative means unlimited.
	Limit int
	// Threshold overrides DefaultThreshold when > 0. Token scores below the
	// threshold do not count as a match.
	Threshold float64
}

// Result pairs a record with its best similarity score across scanned fields.
type Result struct {
	Item  Record  `json:"item"`
	Score float64 `json:"score"`
}

// Search scores each record's configured fields against query and returns
// matches sorted by descending score. Ties preserve input order. An empty
// query matches nothing. Records with no matching field are excluded.
func Search(records []Record, query string, opts Options) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(records) == 0 {
		return nil
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = stringFields(records[0])
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	normQuery := Normalize(query, opts.DiacriticSensitive)

	var results []Result
	for _, rec := range records {
		best := 0.0
		for _, field := range fields {
			value, ok := rec[field].(string)
			if !ok || value == "" {
				continue
			}
			if s := scoreField(value, normQuery, opts.DiacriticSensitive, threshold); s > best {
				best = s
			}
			if best == 1 {
				break
			}
		}
		if best > 0 {
			results = append(results, Result{Item: rec, Score: best})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// scoreField scores a single field value against the normalized query.
// A substring hit is a full match; otherwise the best per-token similarity
// counts, and only when it clears the threshold.
func scoreField(value, normQuery string, diacriticSensitive bool, threshold float64) float64 {
	normValue := Normalize(value, diacriticSensitive)
	if normValue == "" || normQuery == "" {
		return 0
	}
	if strings.Contains(normValue, normQuery) {
		return 1
	}
	best := 0.0
	for _, token := range tokenize(normValue) {
		if s := scoreNormalized(token, normQuery); s > best {
			best = s
		}
	}
	if best < threshold {
		return 0
	}
	return best
}

// stringFields infers the scannable field list from a record: every field
// whose value is a string, in sorted order so inference is deterministic.
func stringFields(rec Record) []string {
	var fields []string
	for name, value := range rec {
		if _, ok := value.(string); ok {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}
