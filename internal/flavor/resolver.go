package flavor

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/common"
)

// Resolver detects flavors and levels and serves the catalog resources of a
// (flavor, level) pair.
type Resolver struct {
	cat *catalog.Catalog
	log *zap.Logger

	mu      sync.Mutex
	schemas map[string]*xsd.Schema
}

// NewResolver creates a resolver over cat. A nil logger disables logging.
func NewResolver(cat *catalog.Catalog, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}

	return &Resolver{
		cat:     cat,
		log:     log,
		schemas: map[string]*xsd.Schema{},
	}
}

// Catalog returns the catalog of the resolver.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.cat
}

// DetectFlavor returns the flavor whose namespace prefix starts the
// namespace URI of root.
func (r *Resolver) DetectFlavor(root *etree.Element) (string, error) {
	if root == nil {
		return "", &UnrecognizedFlavorError{}
	}

	uri := root.NamespaceURI()
	if uri != "" {
		for _, f := range r.cat.Flavors() {
			if strings.HasPrefix(uri, f.NamespacePrefix) {
				return f.ID, nil
			}
		}
	}

	return "", &UnrecognizedFlavorError{Namespace: uri, Tag: root.FullTag()}
}

// DetectLevel reads the version URN of a flavor document and returns the
// level it names.
func (r *Resolver) DetectLevel(root *etree.Element, flavor string) (string, error) {
	f, err := r.cat.Flavor(flavor)
	if err != nil {
		return "", err
	}

	p, err := r.cat.ParsedPath(catalog.VersionField, flavor)
	if err != nil {
		return "", err
	}

	found, err := p.FindFrom(root, f.Namespaces)
	if err != nil {
		return "", err
	}

	if len(found) == 0 {
		return "", &InvalidVersionURNError{Flavor: flavor}
	}

	urn := strings.TrimSpace(found[0].Text())
	if urn == "" {
		return "", &InvalidVersionURNError{Flavor: flavor}
	}

	segments := strings.Split(urn, ":")
	for i := 1; i <= 2 && i <= len(segments); i++ {
		if candidate := segments[len(segments)-i]; f.Level(candidate) != nil {
			return candidate, nil
		}
	}

	return "", &InvalidVersionURNError{Flavor: flavor, URN: urn}
}

// Resolve detects the flavor and level of doc and binds it. The returned
// document takes ownership of doc.
func (r *Resolver) Resolve(doc *etree.Document) (*Resolved, error) {
	root := doc.Root()

	flavorID, err := r.DetectFlavor(root)
	if err != nil {
		return nil, err
	}

	levelID, err := r.DetectLevel(root, flavorID)
	if err != nil {
		return nil, err
	}

	level, err := r.cat.Level(flavorID, levelID)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Resolved invoice document",
		zap.String("flavor", flavorID), zap.String("level", levelID))

	return newResolved(r, level, doc)
}

// Parse parses XML bytes, dropping indentation, and resolves the document.
func (r *Resolver) Parse(b []byte) (*Resolved, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("failed to parse invoice XML: %w", err)
	}

	doc.Unindent()

	return r.Resolve(doc)
}

// FromTemplate creates a document from the template of a level. The version
// URN of the template must name the same flavor and level.
func (r *Resolver) FromTemplate(flavor, level string) (*Resolved, error) {
	l, err := r.cat.Level(flavor, level)
	if err != nil {
		return nil, err
	}

	if l.Template == "" || !r.cat.HasResource(l.Template) {
		return nil, &TemplateNotFoundError{Kind: ResourceTemplate, Flavor: flavor, Level: level, Resource: l.Template}
	}

	b, err := r.cat.ReadFile(l.Template)
	if err != nil {
		return nil, err
	}

	res, err := r.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", l.Template, err)
	}

	if res.Flavor().ID != flavor || res.Level().ID != level {
		return nil, fmt.Errorf("template %s declares %s, want %s", l.Template, res.Level().Key(), l.Key())
	}

	return res, nil
}

// ValidateAgainstSchema validates doc against the XSD of a level. It returns
// nil for a conforming document and a *SchemaValidationError otherwise.
func (r *Resolver) ValidateAgainstSchema(doc *etree.Document, flavor, level string) error {
	l, err := r.cat.Level(flavor, level)
	if err != nil {
		return err
	}

	schema, err := r.schema(l)
	if err != nil {
		return err
	}

	b, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize %s document: %w", l.Key(), err)
	}

	err = schema.Validate(bytes.NewReader(b))
	if err == nil {
		return nil
	}

	verr := &SchemaValidationError{Flavor: flavor, Level: level, Message: err.Error()}
	if violations, ok := xsderrors.AsValidations(err); ok {
		verr.Violations = violations
	}

	r.log.Warn("XML is not valid against the schema",
		zap.String("level", l.Key()), zap.String("error", verr.Message))

	return verr
}

// schema compiles the XSD of a level once.
func (r *Resolver) schema(l *catalog.Level) (*xsd.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.schemas[l.Schema]; ok {
		return s, nil
	}

	if !r.cat.HasResource(l.Schema) {
		return nil, &TemplateNotFoundError{Kind: ResourceSchema, Flavor: l.Flavor, Level: l.ID, Resource: l.Schema}
	}

	dir, base := common.SplitResource(l.Schema)

	fsys, err := r.cat.Sub(dir)
	if err != nil {
		return nil, err
	}

	s, err := xsd.LoadWithOptions(fsys, base, xsd.NewLoadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", l.Schema, err)
	}

	r.log.Debug("Compiled schema", zap.String("schema", l.Schema))
	r.schemas[l.Schema] = s

	return s, nil
}

// PacketTemplate parses the XMP template of a flavor.
func (r *Resolver) PacketTemplate(flavor string) (*etree.Document, error) {
	f, err := r.cat.Flavor(flavor)
	if err != nil {
		return nil, err
	}

	if f.Packet == nil || !r.cat.HasResource(f.Packet.Template) {
		nf := &TemplateNotFoundError{Kind: ResourcePacket, Flavor: flavor}
		if f.Packet != nil {
			nf.Resource = f.Packet.Template
		}

		return nil, nf
	}

	b, err := r.cat.ReadFile(f.Packet.Template)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("failed to parse packet template %s: %w", f.Packet.Template, err)
	}

	doc.Unindent()

	return doc, nil
}
