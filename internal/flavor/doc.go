// Package flavor recognizes the invoice standard (flavor) and conformance
// level of an XML document and binds the document to the catalog entries
// that describe it.
//
// Detection is strict:
//   - the flavor is the one whose namespace prefix starts the namespace URI
//     of the root element
//   - the level is read from the version field: the last ":" segment of the
//     URN, or the second-to-last one when the last is not a known level
//
// A Resolved document owns its etree tree and caches field lookups. It is not
// safe for concurrent use. The Resolver itself is safe for concurrent use;
// compiled XSD schemas are cached per level.
package flavor
