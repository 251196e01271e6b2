// Package invoice is the document model: an invoice XML bound to its flavor
// and level, optionally wrapped in a PDF container.
//
// A Document is either Fresh (created from the template of the configured
// level because no invoice was found) or Bound (parsed from an XML document
// or from the attachment of a PDF). The state never changes after
// construction.
package invoice
