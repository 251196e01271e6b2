package pivot

import "facturx/internal/catalog"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the kind of a pivot value.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindText
	KindDate
	KindCountry
	KindCurrency
)

// KindOf maps a catalog value kind to a pivot kind.
func KindOf(k catalog.ValueKind) Kind {
	switch k {
	case catalog.KindText:
		return KindText
	case catalog.KindDate:
		return KindDate
	case catalog.KindCountry:
		return KindCountry
	case catalog.KindCurrency:
		return KindCurrency
	default:
		return 0
	}
}

// IsCode reports whether values of this kind are registry codes.
func (k Kind) IsCode() bool {
	return k == KindCountry || k == KindCurrency
}
