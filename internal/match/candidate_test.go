package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pivotFields = []string{
	"buyer_country",
	"buyer_name",
	"currency",
	"invoice_number",
	"seller_country",
	"seller_name",
	"type",
}

func TestRankCandidates(t *testing.T) {
	ranked := RankCandidates("seller_nme", pivotFields)
	require.Len(t, ranked, len(pivotFields))

	best := ranked.Best()
	require.NotNil(t, best)
	assert.Equal(t, "seller_name", best.Name)
	assert.InDelta(t, 0.9, best.Score, 1e-9)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"seller_nme", []string{"seller_name"}},
		{"InvoiceNumber", []string{"invoice_number"}},
		{"number_invoice", []string{"invoice_number"}},
		{"seller_name_id", []string{"seller_name", "buyer_name"}},
		{"invoice_number_ref", []string{"invoice_number"}},
		{"buyer_contry", []string{"buyer_country", "seller_country"}},
		{"zzzzzzzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.query, pivotFields, 2))
		})
	}
}

func TestSuggest_ScoreAtThreshold(t *testing.T) {
	// sellername and buyername are four edits apart over ten runes.
	assert.InDelta(t, DefaultMinScore, Similarity("seller_name_id", "buyer_name"), 1e-9)
	assert.Contains(t, Suggest("seller_name_id", pivotFields, 5), "buyer_name")
}

func TestSuggest_Limit(t *testing.T) {
	assert.Equal(t, []string{"buyer_country"}, Suggest("buyer_contry", pivotFields, 1))
	assert.Empty(t, Suggest("buyer_contry", pivotFields, 0))
	assert.Empty(t, Suggest("buyer_contry", nil, 3))
}

func TestCandidateListEmpty(t *testing.T) {
	var c CandidateList
	assert.Nil(t, c.Best())
}
