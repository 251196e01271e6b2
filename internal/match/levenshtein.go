package match

import (
	"strings"
	"unicode/utf8"
)

// Levenshtein returns the number of rune insertions, deletions and
// substitutions turning a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			up := row[i]
			row[i] = min(up+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}

// editSimilarity maps the edit distance of a and b onto [0, 1].
func editSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Similarity scores two names between 0 and 1. It is the better of the edit
// similarity of their normalized forms and the share of words they have in
// common. Trailing qualifiers such as "id" are ignored.
func Similarity(a, b string) float64 {
	ta, tb := trimQualifier(Tokens(a)), trimQualifier(Tokens(b))

	return max(editSimilarity(strings.Join(ta, ""), strings.Join(tb, "")), overlap(ta, tb))
}
