package xmlpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		descendant bool
		steps      []Step
	}{
		{
			name: "absolute",
			raw:  "/rsm:CrossIndustryInvoice/rsm:ExchangedDocument/ram:ID",
			steps: []Step{
				{Prefix: "rsm", Local: "CrossIndustryInvoice"},
				{Prefix: "rsm", Local: "ExchangedDocument"},
				{Prefix: "ram", Local: "ID"},
			},
		},
		{
			name:       "descendant",
			raw:        "//ram:SellerTradeParty/ram:Name",
			descendant: true,
			steps: []Step{
				{Prefix: "ram", Local: "SellerTradeParty"},
				{Prefix: "ram", Local: "Name"},
			},
		},
		{
			name: "attribute filter with slash in value",
			raw:  "/inv:Invoice/cbc:Note[@languageID='en/GB']",
			steps: []Step{
				{Prefix: "inv", Local: "Invoice"},
				{Prefix: "cbc", Local: "Note", AttrName: "languageID", AttrValue: "en/GB"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, p.Raw)
			assert.Equal(t, tt.descendant, p.Descendant)
			assert.Equal(t, tt.steps, p.Steps)
			assert.Equal(t, tt.raw, p.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		raw     string
		message string
	}{
		{"", "empty path"},
		{"rsm:CrossIndustryInvoice", "must start with / or //"},
		{"/rsm:A//ram:B", "empty segment"},
		{"/rsm:A/ID", "has no namespace prefix"},
		{"/rsm:A/ram:1D", "invalid element name"},
		{"/rsm:A/ram:B[1]", "unsupported filter"},
		{"/rsm:A/ram:B[@x=y]", "quoted value"},
		{"/rsm:A/ram:B[@x='y\"]", "mismatched quotes"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestPrefixes(t *testing.T) {
	p := MustParse("/rsm:A/ram:B/udt:C/ram:D")
	assert.Equal(t, []string{"rsm", "ram", "udt"}, p.Prefixes())
	assert.Equal(t, Step{Prefix: "ram", Local: "D"}, p.Leaf())
}
