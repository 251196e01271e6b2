package flavor

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/xmlpath"
)

// xmlDeclaration is written at the top of every serialized document.
const xmlDeclaration = `version="1.0" encoding="UTF-8"`

// Resolved is an XML tree bound to the flavor and level it conforms to.
type Resolved struct {
	resolver *Resolver

	flavor *catalog.Flavor
	level  *catalog.Level
	ns     xmlpath.Namespaces
	order  xmlpath.Order

	doc   *etree.Document
	cache map[string][]*etree.Element
}

func newResolved(r *Resolver, level *catalog.Level, doc *etree.Document) (*Resolved, error) {
	f, err := r.cat.Flavor(level.Flavor)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		resolver: r,
		flavor:   f,
		level:    level,
		ns:       f.Namespaces,
		order:    f.OrderTable(),
		doc:      doc,
		cache:    map[string][]*etree.Element{},
	}, nil
}

// Flavor returns the flavor of the document.
func (d *Resolved) Flavor() *catalog.Flavor {
	return d.flavor
}

// Level returns the level of the document.
func (d *Resolved) Level() *catalog.Level {
	return d.level
}

// Tree returns the owned XML tree. Changes made through it bypass the
// lookup cache; call Invalidate afterwards.
func (d *Resolved) Tree() *etree.Document {
	return d.doc
}

// Find returns the elements holding a field. The result is cached until the
// field is invalidated.
func (d *Resolved) Find(field string) ([]*etree.Element, error) {
	if els, ok := d.cache[field]; ok {
		return els, nil
	}

	p, err := d.resolver.cat.ParsedPath(field, d.flavor.ID)
	if err != nil {
		return nil, err
	}

	els, err := p.Find(d.doc, d.ns)
	if err != nil {
		return nil, err
	}

	d.cache[field] = els

	return els, nil
}

// Ensure returns the elements holding a field, creating the missing ones in
// schema order.
func (d *Resolved) Ensure(field string) ([]*etree.Element, error) {
	p, err := d.resolver.cat.ParsedPath(field, d.flavor.ID)
	if err != nil {
		return nil, err
	}

	els, created, err := p.Ensure(d.doc, d.ns, d.order)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}

	if created > 0 {
		// New elements may match the paths of other fields.
		clear(d.cache)
		d.resolver.log.Debug("Created elements",
			zap.String("field", field), zap.Int("count", created))
	}

	return els, nil
}

// Invalidate drops the cached lookup of a field.
func (d *Resolved) Invalidate(field string) {
	delete(d.cache, field)
}

// Validate validates the tree against the XSD of its level.
func (d *Resolved) Validate() error {
	return d.resolver.ValidateAgainstSchema(d.doc, d.flavor.ID, d.level.ID)
}

// Serialize returns the tree as UTF-8 XML with a declaration and two-space
// indentation. The owned tree is not modified.
func (d *Resolved) Serialize() ([]byte, error) {
	root := d.doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%s document has no root element", d.level.Key())
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", xmlDeclaration)
	out.SetRoot(root.Copy())
	out.Indent(2)

	b, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s document: %w", d.level.Key(), err)
	}

	return b, nil
}
