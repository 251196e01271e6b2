// Package pivot reads and writes the flavor-independent invoice fields
// ("pivot" fields) of a resolved XML document.
//
// A field value is a Value: Text, Date or Code. Reads never consult the
// code registry, so documents produced elsewhere can still be read. Writes
// check codes against the registry and coerce values to the field kind
// before the tree is touched; a rejected write leaves the document
// unchanged.
package pivot
