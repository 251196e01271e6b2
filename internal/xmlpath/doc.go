// Package xmlpath evaluates the namespace-qualified element paths used by the
// field catalog against beevik/etree documents.
//
// # Path Syntax
//
// A path is a list of prefixed element names separated by "/":
//   - Absolute paths: "/rsm:CrossIndustryInvoice/rsm:ExchangedDocument/ram:ID"
//   - Descendant paths: "//ram:SellerTradeParty/ram:Name"
//   - Attribute filters: "ram:ID[@schemeID='0002']"
//
// Prefixes are resolved through a Namespaces map, never through the prefixes
// bound in the document, so a document that binds the same namespace URIs to
// other prefixes (or to the default namespace) is still matched.
//
// Ensure creates the missing elements of an absolute path. New children are
// placed according to an Order table so that the result keeps the sequence
// required by the schema.
package xmlpath
