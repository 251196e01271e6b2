// Package diagnostic provides structured errors, warnings and infos
// reported while loading the field catalog and while checking invoices.
//
// Sources of diagnostics:
//   - Catalog problems (unknown flavors, unparsable paths, bad required lists)
//   - Required fields missing from an invoice document
//   - XSD violations reported by the schema validator
package diagnostic
