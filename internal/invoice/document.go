package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/container"
	"facturx/internal/flavor"
	"facturx/internal/pivot"
)

// ErrNoContainer is returned when PDF output is requested for a document
// that was not read from a PDF.
var ErrNoContainer = errors.New("document has no PDF container")

var pdfMagic = []byte("%PDF")

// Document is an invoice XML bound to its flavor and level.
type Document struct {
	cfg   Config
	state State

	resolver *flavor.Resolver
	codec    *pivot.Codec
	doc      *flavor.Resolved
	src      *container.Source
}

// New creates a fresh document from the template of the configured level.
func New(cfg Config) (*Document, error) {
	d, err := newDocument(cfg)
	if err != nil {
		return nil, err
	}

	if err := d.fresh(); err != nil {
		return nil, err
	}

	return d, nil
}

// FromXML parses an invoice XML document.
func FromXML(b []byte, cfg Config) (*Document, error) {
	d, err := newDocument(cfg)
	if err != nil {
		return nil, err
	}

	if err := d.bind(b); err != nil {
		return nil, err
	}

	return d, nil
}

// FromPDF reads a PDF. The document is bound to the first attachment named
// after a flavor of the catalog, or fresh when the PDF carries none.
func FromPDF(b []byte, cfg Config) (*Document, error) {
	d, err := newDocument(cfg)
	if err != nil {
		return nil, err
	}

	src, err := container.Read(b)
	if err != nil {
		return nil, err
	}

	d.src = src

	xml, name, ok, err := src.Attachment(d.cfg.Catalog.AttachmentNames()...)
	if err != nil {
		return nil, err
	}

	if !ok {
		d.cfg.Logger.Debug("No invoice attachment, using template",
			zap.String("flavor", d.cfg.Flavor), zap.String("level", d.cfg.Level))

		if err := d.fresh(); err != nil {
			return nil, err
		}

		return d, nil
	}

	if err := d.bind(xml); err != nil {
		return nil, fmt.Errorf("attachment %s: %w", name, err)
	}

	return d, nil
}

// Open reads a PDF or an XML file, chosen by content.
func Open(path string, cfg Config) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}

	if bytes.HasPrefix(b, pdfMagic) {
		return FromPDF(b, cfg)
	}

	return FromXML(b, cfg)
}

func newDocument(cfg Config) (*Document, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	return &Document{
		cfg:      cfg,
		resolver: flavor.NewResolver(cfg.Catalog, cfg.Logger),
		codec:    pivot.NewCodec(cfg.Catalog, cfg.Registry, cfg.Logger),
	}, nil
}

func (d *Document) fresh() error {
	doc, err := d.resolver.FromTemplate(d.cfg.Flavor, d.cfg.Level)
	if err != nil {
		return err
	}

	d.doc = doc
	d.state = StateFresh

	return nil
}

func (d *Document) bind(b []byte) error {
	doc, err := d.resolver.Parse(b)
	if err != nil {
		return err
	}

	d.doc = doc
	d.state = StateBound

	return nil
}

// State returns where the XML comes from.
func (d *Document) State() State {
	return d.state
}

// Flavor returns the flavor of the XML.
func (d *Document) Flavor() *catalog.Flavor {
	return d.doc.Flavor()
}

// Level returns the level of the XML.
func (d *Document) Level() *catalog.Level {
	return d.doc.Level()
}

// HasContainer reports whether the document was read from a PDF.
func (d *Document) HasContainer() bool {
	return d.src != nil
}

// Get reads a pivot field.
func (d *Document) Get(field string) (pivot.Value, bool, error) {
	return d.codec.Get(d.doc, field)
}

// Set writes a pivot field.
func (d *Document) Set(field string, v pivot.Value) error {
	return d.codec.Set(d.doc, field, v)
}

// ToDict reads every field defined for the flavor.
func (d *Document) ToDict() map[string]pivot.Value {
	return d.codec.ToDict(d.doc)
}

// SerializeXML returns the XML with a declaration and two-space indentation.
func (d *Document) SerializeXML() ([]byte, error) {
	return d.doc.Serialize()
}

// PacketTemplate returns the XMP template of the flavor.
func (d *Document) PacketTemplate() (*etree.Document, error) {
	return d.resolver.PacketTemplate(d.doc.Flavor().ID)
}

// PDF embeds the XML into the source PDF. A nil meta derives the metadata
// from the invoice fields.
func (d *Document) PDF(meta *container.Metadata) ([]byte, error) {
	if d.src == nil {
		return nil, ErrNoContainer
	}

	return d.cfg.Writer.Write(d.src, d, meta)
}

// Embed writes the XML into the PDF b. The container the document was read
// from, if any, is ignored.
func (d *Document) Embed(b []byte, meta *container.Metadata) ([]byte, error) {
	src, err := container.Read(b)
	if err != nil {
		return nil, err
	}

	return d.cfg.Writer.Write(src, d, meta)
}
