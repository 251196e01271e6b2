package catalog

import (
	"fmt"
	"io/fs"
	"slices"

	"facturx/internal/match"
	"facturx/internal/xmlpath"
)

// Catalog is a loaded, validated field and flavor catalog. It is immutable
// and safe for concurrent use.
type Catalog struct {
	fsys fs.FS

	fields     map[string]*Field
	fieldOrder []string

	flavors     map[string]*Flavor
	flavorOrder []string

	paths map[pathKey]xmlpath.Path
}

type pathKey struct {
	field  string
	flavor string
}

// New validates the definitions and indexes them. Resources are read from
// fsys on demand.
func New(fsys fs.FS, fields *FieldsFile, flavors *FlavorsFile) (*Catalog, error) {
	diags := Validate(fields, flavors)
	if !diags.IsValid() {
		return nil, &CatalogError{Source: ".", Diagnostics: diags}
	}

	c := &Catalog{
		fsys:    fsys,
		fields:  make(map[string]*Field, len(fields.Fields)),
		flavors: make(map[string]*Flavor, len(flavors.Flavors)),
		paths:   map[pathKey]xmlpath.Path{},
	}

	for i := range flavors.Flavors {
		f := &flavors.Flavors[i]
		c.flavors[f.ID] = f
		c.flavorOrder = append(c.flavorOrder, f.ID)
	}

	for i := range fields.Fields {
		fd := &fields.Fields[i]
		c.fields[fd.Name] = fd
		c.fieldOrder = append(c.fieldOrder, fd.Name)

		for flavorID, raw := range fd.Paths {
			// Validate already parsed every path.
			c.paths[pathKey{fd.Name, flavorID}] = xmlpath.MustParse(raw)
		}
	}

	return c, nil
}

// Field returns the descriptor of a field.
func (c *Catalog) Field(name string) (*Field, error) {
	fd, ok := c.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Field: name, Suggestions: match.Suggest(name, c.fieldOrder, 3)}
	}

	return fd, nil
}

// FieldPath returns the raw path of a field in a flavor.
func (c *Catalog) FieldPath(name, flavor string) (string, error) {
	p, err := c.ParsedPath(name, flavor)
	if err != nil {
		return "", err
	}

	return p.Raw, nil
}

// ParsedPath returns the parsed path of a field in a flavor.
func (c *Catalog) ParsedPath(name, flavor string) (xmlpath.Path, error) {
	if _, err := c.Field(name); err != nil {
		return xmlpath.Path{}, err
	}

	p, ok := c.paths[pathKey{name, flavor}]
	if !ok {
		return xmlpath.Path{}, &PathNotDefinedForFlavorError{Field: name, Flavor: flavor}
	}

	return p, nil
}

// FieldNames returns all field names in declaration order.
func (c *Catalog) FieldNames() []string {
	return slices.Clone(c.fieldOrder)
}

// FieldNamesFor returns the names of the fields that have a path in flavor,
// in declaration order.
func (c *Catalog) FieldNamesFor(flavor string) []string {
	var names []string

	for _, name := range c.fieldOrder {
		if _, ok := c.paths[pathKey{name, flavor}]; ok {
			names = append(names, name)
		}
	}

	return names
}

// Flavor returns the flavor with the given ID.
func (c *Catalog) Flavor(id string) (*Flavor, error) {
	f, ok := c.flavors[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFlavor, id)
	}

	return f, nil
}

// Flavors returns all flavors in declaration order.
func (c *Catalog) Flavors() []*Flavor {
	out := make([]*Flavor, 0, len(c.flavorOrder))
	for _, id := range c.flavorOrder {
		out = append(out, c.flavors[id])
	}

	return out
}

// Level returns the description of a (flavor, level) pair.
func (c *Catalog) Level(flavor, level string) (*Level, error) {
	f, err := c.Flavor(flavor)
	if err != nil {
		return nil, err
	}

	l := f.Level(level)
	if l == nil {
		return nil, fmt.Errorf("%w %q for flavor %q", ErrUnknownLevel, level, flavor)
	}

	return l, nil
}

// AttachmentNames returns the attachment filenames of all flavors.
func (c *Catalog) AttachmentNames() []string {
	var names []string

	for _, id := range c.flavorOrder {
		if a := c.flavors[id].Attachment; !slices.Contains(names, a) {
			names = append(names, a)
		}
	}

	return names
}

// FlavorForAttachment returns the flavor whose attachment filename is name.
func (c *Catalog) FlavorForAttachment(name string) (*Flavor, bool) {
	for _, id := range c.flavorOrder {
		if c.flavors[id].Attachment == name {
			return c.flavors[id], true
		}
	}

	return nil, false
}

// ReadFile reads a catalog resource.
func (c *Catalog) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog resource %s: %w", name, err)
	}

	return data, nil
}

// Sub returns the resource tree rooted at dir.
func (c *Catalog) Sub(dir string) (fs.FS, error) {
	if dir == "." || dir == "" {
		return c.fsys, nil
	}

	sub, err := fs.Sub(c.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog directory %s: %w", dir, err)
	}

	return sub, nil
}

// HasResource reports whether the resource exists.
func (c *Catalog) HasResource(name string) bool {
	if name == "" {
		return false
	}

	_, err := fs.Stat(c.fsys, name)

	return err == nil
}
