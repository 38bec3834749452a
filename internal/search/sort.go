// file: internal/search/sort.go
// version: 1.0.0
// guid: 46ab4382-2c17-472d-b838-b7c219a2b489

package search

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKind tells ApplySort how to compare field values.
type SortKind string

const (
	SortString SortKind = "string"
	SortNumber SortKind = "number"
	SortDate   SortKind = "date"
)

// ApplySort returns a sorted copy of records ordered by the given field.
// Strings are compared with the Turkish collation order so "ç" sorts after
// "c" rather than after "z". Missing or unparsable values sort last.
func ApplySort(records []Record, field string, kind SortKind, descending bool) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	var collator *collate.Collator
	if kind == SortString {
		collator = collate.New(language.Turkish)
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareField(out[i][field], out[j][field], kind, collator)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func compareField(a, b any, kind SortKind, collator *collate.Collator) int {
	switch kind {
	case SortNumber:
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		return compareMissing(okA, okB, func() int {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		})
	case SortDate:
		ta, okA := toTime(a)
		tb, okB := toTime(b)
		return compareMissing(okA, okB, func() int { return ta.Compare(tb) })
	default:
		if a == nil && b == nil {
			return 0
		}
		if a == nil {
			return 1
		}
		if b == nil {
			return -1
		}
		return collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// compareMissing sorts values that failed to parse after values that parsed.
func compareMissing(okA, okB bool, cmp func() int) int {
	switch {
	case okA && okB:
		return cmp()
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
