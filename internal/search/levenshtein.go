// file: internal/search/levenshtein.go
// version: 1.0.0
// guid: 7a5cc286-3cbd-4e08-aad2-3e2ab7e605f2

package search

// LevenshteinDistance computes the minimum number of single-rune insertions,
// deletions or substitutions needed to turn a into b. Case-sensitive at this
// layer; callers normalize first.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// Single-row DP
	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// Score computes a similarity between a and b in [0,1]. Both inputs are
// normalized with diacritic folding, so the score is case-insensitive and
// tolerant of Turkish accents. 1 means the normalized strings are equal,
// 0 means no meaningful similarity (one side empty, or the edit distance is
// at least the length of the longer string). Symmetric for all inputs.
func Score(a, b string) float64 {
	return scoreNormalized(Normalize(a, false), Normalize(b, false))
}

// scoreNormalized scores two already-normalized strings.
func scoreNormalized(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := LevenshteinDistance(a, b)
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if d >= maxLen {
		return 0
	}
	return 1 - float64(d)/float64(maxLen)
}
