// file: internal/search/normalize.go
// version: 1.0.0
// guid: 1fcb2537-35c5-41a6-b1fd-8e580c0ad555

// Package search implements approximate text search over in-memory record
// collections. Staff use it to find beneficiaries, donors and volunteers by
// partial, misspelled or diacritic-mismatched queries. Every call is a pure,
// synchronous computation: nothing is cached or shared between calls.
package search

import (
	"strings"
	"unicode"
)

// foldTable maps Turkish accented letters to their closest unaccented Latin
// equivalent. Lowercase only; Normalize lowercases before folding.
var foldTable = map[rune]rune{
	'ı': 'i',
	'ş': 's',
	'ç': 'c',
	'ğ': 'g',
	'ü': 'u',
	'ö': 'o',
	'â': 'a',
	'î': 'i',
	'û': 'u',
}

// Normalize lowercases text for comparison. When diacriticSensitive is
// false, Turkish accented characters are additionally folded to their
// unaccented Latin counterparts ("ışık" becomes "isik").
func Normalize(text string, diacriticSensitive bool) string {
	lowered := strings.ToLower(text)
	if diacriticSensitive {
		return lowered
	}
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tokenize splits text into lowercase word tokens, dropping anything that is
// not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
