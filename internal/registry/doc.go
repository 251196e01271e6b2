// Package registry validates the country and currency codes written into
// invoice documents.
//
// Countries are ISO 3166-1 alpha-2 region codes and currencies are ISO 4217
// codes, both resolved through golang.org/x/text. Lookups are case
// insensitive and return the canonical upper-case form.
package registry
