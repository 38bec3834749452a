// file: internal/search/normalize_test.go
// version: 1.0.0
// guid: ab87b46c-d72a-4838-b746-df1a9cedd5ca

package search

import "testing"

func TestNormalizeFolding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ışık", "isik"},
		{"İstanbul", "istanbul"},
		{"ŞŞŞ", "sss"},
		{"ÇÇÇ", "ccc"},
		{"ĞÜÖ", "guo"},
		{"âîû", "aiu"},
		{"AHMET", "ahmet"},
		{"Mehmet Öztürk", "mehmet ozturk"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.in, false)
		if got != tt.want {
			t.Errorf("Normalize(%q, false) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDiacriticSensitive(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ışık", "ışık"},
		{"AHMET", "ahmet"},
		{"Öztürk", "öztürk"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.in, true)
		if got != tt.want {
			t.Errorf("Normalize(%q, true) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Ahmet Yılmaz", []string{"ahmet", "yılmaz"}},
		{"ahmet@example.com", []string{"ahmet", "example", "com"}},
		{"  çok   boşluk  ", []string{"çok", "boşluk"}},
		{"", nil},
		{"...", nil},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
