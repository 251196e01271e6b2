package container

import (
	"strings"
	"time"

	"facturx/internal/pivot"
)

// refundTypeCode is the UNTDID 1001 code of a credit note.
const refundTypeCode = "381"

// Metadata is the descriptive metadata written into the Info dictionary and
// the XMP packet.
type Metadata struct {
	Author   string `json:"author" yaml:"author"`
	Keywords string `json:"keywords" yaml:"keywords"`
	Title    string `json:"title" yaml:"title"`
	Subject  string `json:"subject" yaml:"subject"`
}

// SanitizeMetadata builds Metadata from loosely typed input. Values that are
// not strings become empty strings; unknown keys are dropped.
func SanitizeMetadata(in map[string]any) *Metadata {
	str := func(key string) string {
		s, _ := in[key].(string)
		return s
	}

	return &Metadata{
		Author:   str("author"),
		Keywords: str("keywords"),
		Title:    str("title"),
		Subject:  str("subject"),
	}
}

// DefaultMetadata derives metadata from the pivot fields seller_name,
// invoice_number, date and type. A missing date is replaced by today.
func DefaultMetadata(fields map[string]pivot.Value, today time.Time) Metadata {
	text := func(name string) string {
		if v, ok := fields[name]; ok {
			return strings.TrimSpace(v.String())
		}

		return ""
	}

	docType := "Invoice"
	if text("type") == refundTypeCode {
		docType = "Refund"
	}

	date := pivot.DateOf(today)
	if d, ok := fields["date"].(pivot.Date); ok {
		date = d
	}

	seller := text("seller_name")
	number := text("invoice_number")

	return Metadata{
		Author:   seller,
		Keywords: docType + ", Factur-X",
		Title:    seller + ": " + docType + " " + number,
		Subject:  "Factur-X " + docType + " " + number + " dated " + date.Format(pivot.ISODate) + " issued by " + seller,
	}
}
