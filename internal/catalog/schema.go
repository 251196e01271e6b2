package catalog

// VersionField is the field holding the version URN that identifies the
// conformance level of a document. Every flavor must define a path for it.
const VersionField = "version"

// ValueKind is the kind of value a pivot field carries.
type ValueKind string

const (
	KindText     ValueKind = "text"
	KindDate     ValueKind = "date"
	KindCountry  ValueKind = "country"
	KindCurrency ValueKind = "currency"
)

// IsCode reports whether values of this kind are registry codes.
func (k ValueKind) IsCode() bool {
	return k == KindCountry || k == KindCurrency
}

// Valid reports whether k is a known kind.
func (k ValueKind) Valid() bool {
	switch k {
	case KindText, KindDate, KindCountry, KindCurrency:
		return true
	default:
		return false
	}
}

// FieldsFile is the root structure of fields.yml.
type FieldsFile struct {
	Version string  `yaml:"version"`
	Fields  []Field `yaml:"fields"`
}

// Field describes one pivot field.
type Field struct {
	// Name is the unique pivot name (e.g. "seller_name").
	Name string `yaml:"name"`
	// Kind is the value kind.
	Kind ValueKind `yaml:"kind"`
	// Description is shown by the CLI field listing.
	Description string `yaml:"description,omitempty"`
	// Paths maps a flavor ID to the element path of the field in that flavor.
	Paths map[string]string `yaml:"paths"`
}

// FlavorsFile is the root structure of flavors.yml.
type FlavorsFile struct {
	Version string   `yaml:"version"`
	Flavors []Flavor `yaml:"flavors"`
}

// Flavor describes one invoice standard family.
type Flavor struct {
	ID string `yaml:"id"`
	// NamespacePrefix is matched against the root element namespace URI.
	NamespacePrefix string `yaml:"namespace_prefix"`
	// Namespaces binds the prefixes used in field paths and in Order.
	Namespaces map[string]string `yaml:"namespaces"`
	// Attachment is the fixed attachment filename inside a PDF container.
	Attachment string `yaml:"attachment"`
	// Date controls how date fields are written and read.
	Date DateFormat `yaml:"date"`
	// Packet is the XMP extension description; nil when the flavor cannot be
	// embedded into a PDF container.
	Packet *Packet `yaml:"packet,omitempty"`
	// Order lists children of a parent element in schema sequence.
	Order map[string]StringOrArray `yaml:"order,omitempty"`
	// Levels are the conformance levels of the flavor.
	Levels []Level `yaml:"levels"`
}

// DateFormat describes the date representation of a flavor.
type DateFormat struct {
	// Layout is a Go time layout, e.g. "20060102".
	Layout string `yaml:"layout"`
	// Qualifier is written into QualifierAttr of created date elements.
	Qualifier string `yaml:"qualifier,omitempty"`
	// QualifierAttr defaults to "format" when Qualifier is set.
	QualifierAttr string `yaml:"qualifier_attr,omitempty"`
}

// Packet describes the XMP extension schema of a flavor.
type Packet struct {
	// Template is the XMP template resource; its second rdf:Description is
	// copied into every generated packet.
	Template string `yaml:"template"`
	// Namespace is the extension schema namespace URI.
	Namespace string `yaml:"namespace"`
	// Prefix is the extension schema prefix (e.g. "fx").
	Prefix string `yaml:"prefix"`
	// DocumentType is written as the DocumentType property.
	DocumentType string `yaml:"document_type"`
	// Version is written as the Version property.
	Version string `yaml:"version"`
}

// Level describes one (flavor, level) pair.
type Level struct {
	// Flavor is the owning flavor ID, set by the loader.
	Flavor string `yaml:"-"`
	ID     string `yaml:"id"`
	// Schema is the XSD resource of the level.
	Schema string `yaml:"schema"`
	// Template is the XML template resource; empty when the level cannot be
	// created from scratch.
	Template string `yaml:"template,omitempty"`
	// PacketLevel is the ConformanceLevel written into the XMP packet.
	PacketLevel string `yaml:"packet_level"`
	// Relationship is the /AFRelationship of the embedded file.
	Relationship string `yaml:"relationship"`
	// Required lists the fields that must be present for a valid document.
	Required StringOrArray `yaml:"required"`
}

// Key returns "flavor/level".
func (l *Level) Key() string {
	return l.Flavor + "/" + l.ID
}

// Level returns the level with the given ID, or nil.
func (f *Flavor) Level(id string) *Level {
	for i := range f.Levels {
		if f.Levels[i].ID == id {
			return &f.Levels[i]
		}
	}

	return nil
}

// LevelIDs returns the level IDs in declaration order.
func (f *Flavor) LevelIDs() []string {
	ids := make([]string, 0, len(f.Levels))
	for _, l := range f.Levels {
		ids = append(ids, l.ID)
	}

	return ids
}

// OrderTable returns Order as plain string slices.
func (f *Flavor) OrderTable() map[string][]string {
	out := make(map[string][]string, len(f.Order))
	for parent, children := range f.Order {
		out[parent] = []string(children)
	}

	return out
}

// afRelationships are the /AFRelationship values of PDF/A-3.
var afRelationships = []string{"Data", "Source", "Alternative", "Supplement", "Unspecified"}
