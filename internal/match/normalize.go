package match

import (
	"strings"
	"unicode"
)

// qualifiers are trailing words dropped before comparing names, so that
// "seller_vat_id" still finds seller_vat.
var qualifiers = map[string]bool{
	"id":   true,
	"code": true,
	"ref":  true,
}

// Tokens splits a name into lowercase words. Separators and case changes
// start a new word; an acronym ends before the capital that starts the next
// word ("XMLName" gives xml and name).
func Tokens(s string) []string {
	var (
		words []string
		cur   []rune
	)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if len(cur) > 0 && wordBoundary(runes, i) {
			flush()
		}

		cur = append(cur, r)
	}

	flush()

	return words
}

// Normalize returns the words of s joined without separators.
func Normalize(s string) string {
	return strings.Join(Tokens(s), "")
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ', '/', ':':
		return true
	default:
		return false
	}
}

func wordBoundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func trimQualifier(words []string) []string {
	if n := len(words); n > 1 && qualifiers[words[n-1]] {
		return words[:n-1]
	}

	return words
}

// overlap is the share of distinct words two names have in common.
func overlap(a, b []string) float64 {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}

	union := len(set)
	common := 0

	seen := map[string]bool{}
	for _, w := range b {
		if seen[w] {
			continue
		}

		seen[w] = true

		if set[w] {
			common++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}

	return float64(common) / float64(union)
}
