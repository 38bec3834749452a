// file: internal/search/filter_test.go
// version: 1.0.0
// guid: 40f7e6a7-38ad-4f0f-95b8-e849b324959f

package search

import "testing"

func filterRecords() []Record {
	return []Record{
		{"id": "1", "name": "Ahmet Yılmaz", "city": "Ankara", "amount": 250.0, "status": "active"},
		{"id": "2", "name": "Mehmet Öztürk", "city": "İstanbul", "amount": 100.0, "status": "passive"},
		{"id": "3", "name": "Ayşe Demir", "city": "Ankara", "amount": 750.0, "status": "active"},
	}
}

func ids(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r["id"].(string))
	}
	return out
}

func TestApplyFilterOperators(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		want    []string
	}{
		{"eq", []Filter{{Field: "city", Op: OpEq, Value: "Ankara"}}, []string{"1", "3"}},
		{"ne", []Filter{{Field: "status", Op: OpNe, Value: "active"}}, []string{"2"}},
		{"gt", []Filter{{Field: "amount", Op: OpGt, Value: 200}}, []string{"1", "3"}},
		{"gte", []Filter{{Field: "amount", Op: OpGte, Value: 250}}, []string{"1", "3"}},
		{"lt", []Filter{{Field: "amount", Op: OpLt, Value: 250}}, []string{"2"}},
		{"lte", []Filter{{Field: "amount", Op: OpLte, Value: 250.0}}, []string{"1", "2"}},
		{"contains", []Filter{{Field: "name", Op: OpContains, Value: "mehmet"}}, []string{"2"}},
		{"startsWith", []Filter{{Field: "name", Op: OpStartsWith, Value: "ahmet"}}, []string{"1"}},
		{"endsWith", []Filter{{Field: "name", Op: OpEndsWith, Value: "demir"}}, []string{"3"}},
		{"in", []Filter{{Field: "id", Op: OpIn, Values: []any{"1", "2"}}}, []string{"1", "2"}},
		{"between", []Filter{{Field: "amount", Op: OpBetween, Values: []any{100, 300}}}, []string{"1", "2"}},
		{"combined", []Filter{
			{Field: "city", Op: OpEq, Value: "Ankara"},
			{Field: "amount", Op: OpGt, Value: 300},
		}, []string{"3"}},
		{"missing field", []Filter{{Field: "nope", Op: OpEq, Value: "x"}}, nil},
		{"unknown operator", []Filter{{Field: "id", Op: Operator("??"), Value: "1"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilter(filterRecords(), tt.filters))
			if len(got) != len(tt.want) {
				t.Fatalf("got ids %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got ids %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestApplyFilterNoFilters(t *testing.T) {
	records := filterRecords()
	got := ApplyFilter(records, nil)
	if len(got) != len(records) {
		t.Errorf("ApplyFilter with no filters returned %d records, want %d", len(got), len(records))
	}
}

func TestFilterBuilder(t *testing.T) {
	got := ids(NewFilterBuilder().
		Eq("city", "Ankara").
		Between("amount", 0, 500).
		Apply(filterRecords()))
	if len(got) != 1 || got[0] != "1" {
		t.Errorf("builder result ids = %v, want [1]", got)
	}

	filters := NewFilterBuilder().Contains("name", "a").Gt("amount", 50).Build()
	if len(filters) != 2 {
		t.Fatalf("Build returned %d filters, want 2", len(filters))
	}
	if filters[0].Op != OpContains || filters[1].Op != OpGt {
		t.Errorf("unexpected operators: %v, %v", filters[0].Op, filters[1].Op)
	}
}
