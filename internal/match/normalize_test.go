package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"invoice_number", []string{"invoice", "number"}},
		{"InvoiceNumber", []string{"invoice", "number"}},
		{"invoiceNumber", []string{"invoice", "number"}},
		{"factur-x", []string{"factur", "x"}},
		{"XMLName", []string{"xml", "name"}},
		{"CountryID", []string{"country", "id"}},
		{"ram:CountryID", []string{"ram", "country", "id"}},
		{"amount__due ", []string{"amount", "due"}},
		{"", nil},
		{"___", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sellername", Normalize("seller_name"))
	assert.Equal(t, "sellername", Normalize("SellerName"))
	assert.Equal(t, "facturx", Normalize("factur-x"))
	assert.Empty(t, Normalize("-"))
}

func TestOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, overlap([]string{"a", "b"}, []string{"b", "a"}), 1e-9)
	assert.InDelta(t, 1.0/3, overlap([]string{"buyer", "contry"}, []string{"buyer", "name"}), 1e-9)
	assert.InDelta(t, 0.0, overlap(nil, nil), 1e-9)
	assert.InDelta(t, 0.5, overlap([]string{"a"}, []string{"a", "a", "b"}), 1e-9)
}
