package match

import (
	"cmp"
	"slices"
)

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.6

// Candidate is a known name scored against a query.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is ordered by descending score, then by name.
type CandidateList []Candidate

// RankCandidates scores every known name against query.
func RankCandidates(query string, known []string) CandidateList {
	out := make(CandidateList, 0, len(known))
	for _, name := range known {
		out = append(out, Candidate{Name: name, Score: Similarity(query, name)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to limit known names scoring at least DefaultMinScore
// against query, best first.
func Suggest(query string, known []string, limit int) []string {
	names := []string{}

	for _, c := range RankCandidates(query, known) {
		if c.Score < DefaultMinScore || len(names) == limit {
			break
		}

		names = append(names, c.Name)
	}

	return names
}

// Best returns the best candidate, or nil for an empty list.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}
