// Package container reads invoice attachments out of PDF files and writes
// PDF/A-3 style containers that carry an invoice XML.
//
// Writing never modifies the source: the source bytes are parsed again into
// a new object graph that receives a new catalog holding the source page
// tree, copied output intents, the embedded XML file, an XMP metadata packet
// and a new Info dictionary.
package container
