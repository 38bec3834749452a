// file: internal/search/search_test.go
// version: 1.0.0
// guid: cdfe2d7e-1802-432c-9c24-8ce66430cbba

package search

import (
	"reflect"
	"testing"
)

func testRecords() []Record {
	return []Record{
		{"id": "1", "name": "Ahmet Yılmaz", "email": "ahmet@example.com"},
		{"id": "2", "name": "Mehmet Öztürk", "email": "mehmet@example.com"},
		{"id": "3", "name": "Ayşe Demir", "email": "ayse@example.com"},
	}
}

func TestSearchExactMatch(t *testing.T) {
	results := Search(testRecords(), "Ahmet", Options{})
	if len(results) != 1 {
		t.Fatalf("Search(\"Ahmet\") returned %d results, want 1", len(results))
	}
	if got := results[0].Item["name"]; got != "Ahmet Yılmaz" {
		t.Errorf("Search(\"Ahmet\")[0].Item[\"name\"] = %v, want \"Ahmet Yılmaz\"", got)
	}
}

func TestSearchDiacriticFolding(t *testing.T) {
	results := Search(testRecords(), "ozturk", Options{DiacriticSensitive: false})
	if len(results) == 0 {
		t.Fatal("Search(\"ozturk\") returned no results, want at least one")
	}
	if got := results[0].Item["name"]; got != "Mehmet Öztürk" {
		t.Errorf("Search(\"ozturk\")[0].Item[\"name\"] = %v, want \"Mehmet Öztürk\"", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	results := Search(testRecords(), "xyz123", Options{})
	if len(results) != 0 {
		t.Errorf("Search(\"xyz123\") returned %d results, want 0", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	results := Search(testRecords(), "ahmet", Options{Limit: 1})
	if len(results) > 1 {
		t.Errorf("Search(\"ahmet\", limit 1) returned %d results, want at most 1", len(results))
	}
}

func TestSearchSpecificFields(t *testing.T) {
	results := Search(testRecords(), "example.com", Options{Fields: []string{"email"}})
	if len(results) != 3 {
		t.Errorf("Search(\"example.com\", fields=email) returned %d results, want 3", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if got := Search(testRecords(), "", Options{}); len(got) != 0 {
		t.Errorf("Search(\"\") returned %d results, want 0", len(got))
	}
	if got := Search(testRecords(), "   ", Options{}); len(got) != 0 {
		t.Errorf("Search(whitespace) returned %d results, want 0", len(got))
	}
	if got := Search(nil, "ahmet", Options{}); len(got) != 0 {
		t.Errorf("Search(empty collection) returned %d results, want 0", len(got))
	}
}

func TestSearchIdempotent(t *testing.T) {
	records := testRecords()
	first := Search(records, "ahmet", Options{})
	second := Search(records, "ahmet", Options{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Search calls differ: %v vs %v", first, second)
	}
}

func TestSearchSkipsMissingAndNonStringFields(t *testing.T) {
	records := []Record{
		{"name": "Fatma Kaya", "age": 42},
		{"email": "fatma@example.com"},
		{"name": nil},
	}
	// "age" missing on two records, non-string on the first; must not panic
	// and the first record still matches via "name".
	results := Search(records, "fatma", Options{Fields: []string{"name", "age", "email"}})
	if len(results) != 2 {
		t.Fatalf("Search over sparse records returned %d results, want 2", len(results))
	}
}

func TestSearchStableOrderOnTies(t *testing.T) {
	records := []Record{
		{"id": "a", "name": "Zeynep Arslan"},
		{"id": "b", "name": "Zeynep Arslan"},
		{"id": "c", "name": "Zeynep Arslan"},
	}
	results := Search(records, "zeynep", Options{})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := results[i].Item["id"]; got != want {
			t.Errorf("results[%d].Item[\"id\"] = %v, want %q", i, got, want)
		}
	}
}

func TestSearchRanksCloserMatchesFirst(t *testing.T) {
	records := []Record{
		{"id": "1", "name": "Ahmed Yıldız"},
		{"id": "2", "name": "Ahmet Kaya"},
	}
	// "ahmet" is a substring of record 2's name after folding and only a
	// near-match for record 1, so record 2 must rank first.
	results := Search(records, "ahmet", Options{Threshold: 0.5})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if got := results[0].Item["id"]; got != "2" {
		t.Errorf("best match id = %v, want \"2\"", got)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestSearchDiacriticSensitiveMode(t *testing.T) {
	records := []Record{{"id": "1", "name": "Öztürk"}}
	// With diacritics preserved, "ozturk" no longer equals "öztürk" but is
	// still within one threshold-clearing edit distance per rune; force the
	// strict path with a high threshold.
	results := Search(records, "ozturk", Options{DiacriticSensitive: true, Threshold: 0.9})
	if len(results) != 0 {
		t.Errorf("diacritic-sensitive Search(\"ozturk\") returned %d results, want 0", len(results))
	}
}
