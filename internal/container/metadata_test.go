package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"facturx/internal/pivot"
)

func TestDefaultMetadata(t *testing.T) {
	fields := map[string]pivot.Value{
		"seller_name":    pivot.Text("Acme SARL"),
		"invoice_number": pivot.Text("INV-2025-001"),
		"date":           pivot.Date{Year: 2025, Month: time.January, Day: 15},
		"type":           pivot.Text("380"),
	}

	assert.Equal(t, Metadata{
		Author:   "Acme SARL",
		Keywords: "Invoice, Factur-X",
		Title:    "Acme SARL: Invoice INV-2025-001",
		Subject:  "Factur-X Invoice INV-2025-001 dated 2025-01-15 issued by Acme SARL",
	}, DefaultMetadata(fields, testNow))

	fields["type"] = pivot.Text("381")
	delete(fields, "date")

	got := DefaultMetadata(fields, testNow)
	assert.Equal(t, "Refund, Factur-X", got.Keywords)
	assert.Equal(t, "Acme SARL: Refund INV-2025-001", got.Title)
	assert.Equal(t, "Factur-X Refund INV-2025-001 dated 2025-01-20 issued by Acme SARL", got.Subject)
}

func TestDefaultMetadata_Empty(t *testing.T) {
	got := DefaultMetadata(nil, testNow)
	assert.Equal(t, "Invoice, Factur-X", got.Keywords)
	assert.Equal(t, ": Invoice ", got.Title)
	assert.Empty(t, got.Author)
}

func TestSanitizeMetadata(t *testing.T) {
	got := SanitizeMetadata(map[string]any{
		"author":   "Acme",
		"title":    42,
		"subject":  nil,
		"keywords": []string{"a"},
		"producer": "ignored",
	})

	assert.Equal(t, &Metadata{Author: "Acme"}, got)
	assert.Equal(t, &Metadata{}, SanitizeMetadata(nil))
}
