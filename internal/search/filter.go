// file: internal/search/filter.go
// version: 1.0.0
// guid: af0e72c9-1c45-48e7-95a8-1d4d3df65f58

package search

import (
	"fmt"
	"strings"
)

// Operator identifies a filter comparison.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpIn         Operator = "in"
	OpBetween    Operator = "between"
)

// Filter is a single field predicate. OpIn and OpBetween read Values;
// everything else reads Value.
type Filter struct {
	Field  string
	Op     Operator
	Value  any
	Values []any
}

// ApplyFilter returns the records matching every filter. Unknown operators
// and missing fields never panic; they simply don't match.
func ApplyFilter(records []Record, filters []Filter) []Record {
	if len(filters) == 0 {
		return records
	}
	var out []Record
	for _, rec := range records {
		ok := true
		for _, f := range filters {
			if !matchFilter(rec, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func matchFilter(rec Record, f Filter) bool {
	value, present := rec[f.Field]
	if !present {
		return false
	}
	switch f.Op {
	case OpEq:
		return compareEq(value, f.Value)
	case OpNe:
		return !compareEq(value, f.Value)
	case OpGt, OpGte, OpLt, OpLte:
		a, okA := toFloat(value)
		b, okB := toFloat(f.Value)
		if !okA || !okB {
			return false
		}
		switch f.Op {
		case OpGt:
			return a > b
		case OpGte:
			return a >= b
		case OpLt:
			return a < b
		default:
			return a <= b
		}
	case OpContains:
		return strings.Contains(lowerString(value), lowerString(f.Value))
	case OpStartsWith:
		return strings.HasPrefix(lowerString(value), lowerString(f.Value))
	case OpEndsWith:
		return strings.HasSuffix(lowerString(value), lowerString(f.Value))
	case OpIn:
		for _, candidate := range f.Values {
			if compareEq(value, candidate) {
				return true
			}
		}
		return false
	case OpBetween:
		if len(f.Values) != 2 {
			return false
		}
		v, okV := toFloat(value)
		lo, okLo := toFloat(f.Values[0])
		hi, okHi := toFloat(f.Values[1])
		return okV && okLo && okHi && v >= lo && v <= hi
	default:
		return false
	}
}

func compareEq(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func lowerString(v any) string {
	return strings.ToLower(fmt.Sprint(v))
}

// FilterBuilder accumulates filters fluently:
//
//	recs := search.NewFilterBuilder().Eq("status", "active").Gt("amount", 100).Apply(records)
type FilterBuilder struct {
	filters []Filter
}

// NewFilterBuilder returns an empty builder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

func (b *FilterBuilder) add(field string, op Operator, value any, values ...any) *FilterBuilder {
	b.filters = append(b.filters, Filter{Field: field, Op: op, Value: value, Values: values})
	return b
}

func (b *FilterBuilder) Eq(field string, value any) *FilterBuilder  { return b.add(field, OpEq, value) }
func (b *FilterBuilder) Ne(field string, value any) *FilterBuilder  { return b.add(field, OpNe, value) }
func (b *FilterBuilder) Gt(field string, value any) *FilterBuilder  { return b.add(field, OpGt, value) }
func (b *FilterBuilder) Gte(field string, value any) *FilterBuilder { return b.add(field, OpGte, value) }
func (b *FilterBuilder) Lt(field string, value any) *FilterBuilder  { return b.add(field, OpLt, value) }
func (b *FilterBuilder) Lte(field string, value any) *FilterBuilder { return b.add(field, OpLte, value) }

func (b *FilterBuilder) Contains(field, value string) *FilterBuilder {
	return b.add(field, OpContains, value)
}

func (b *FilterBuilder) StartsWith(field, value string) *FilterBuilder {
	return b.add(field, OpStartsWith, value)
}

func (b *FilterBuilder) EndsWith(field, value string) *FilterBuilder {
	return b.add(field, OpEndsWith, value)
}

func (b *FilterBuilder) In(field string, values ...any) *FilterBuilder {
	return b.add(field, OpIn, nil, values...)
}

func (b *FilterBuilder) Between(field string, lo, hi any) *FilterBuilder {
	return b.add(field, OpBetween, nil, lo, hi)
}

// Apply runs the accumulated filters against records.
func (b *FilterBuilder) Apply(records []Record) []Record {
	return ApplyFilter(records, b.filters)
}

// Build returns a copy of the accumulated filters.
func (b *FilterBuilder) Build() []Filter {
	out := make([]Filter, len(b.filters))
	copy(out, b.filters)
	return out
}
