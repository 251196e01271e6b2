package container

import "fmt"

// PacketTemplateError is returned when the XMP template of a flavor does not
// hold the extension schema description.
type PacketTemplateError struct {
	Flavor string
	Found  int
}

func (e *PacketTemplateError) Error() string {
	return fmt.Sprintf("XMP template of %s has %d rdf:Description elements, need at least 2", e.Flavor, e.Found)
}
