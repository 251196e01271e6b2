package registry

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Registry looks up codes. The returned string is the canonical form of a
// known code.
type Registry interface {
	Country(code string) (string, bool)
	Currency(code string) (string, bool)
}

// ISO is the Registry backed by the ISO tables of golang.org/x/text.
type ISO struct{}

// Default returns the ISO registry.
func Default() ISO {
	return ISO{}
}

// Country reports whether code is an assigned ISO 3166-1 alpha-2 country.
// Numeric and alpha-3 forms, macro regions and private-use codes are
// rejected.
func (ISO) Country(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return "", false
	}

	r, err := language.ParseRegion(code)
	if err != nil || !r.IsCountry() {
		return "", false
	}

	return r.String(), true
}

// Currency reports whether code is an ISO 4217 currency. The "no currency"
// code XXX is rejected.
func (ISO) Currency(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return "", false
	}

	u, err := currency.ParseISO(code)
	if err != nil || u == (currency.Unit{}) {
		return "", false
	}

	return u.String(), true
}
