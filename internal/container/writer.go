package container

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/pivot"
)

const (
	defaultCreator = "facturx"
	attachmentDesc = "Factur-X Invoice"
)

// pdfProducer is the XMP pdf:Producer. pdfcpu stamps the same string into the
// Info /Producer of every file it writes.
var pdfProducer = "pdfcpu " + model.VersionStr

// Invoice is the document embedded by a Writer.
type Invoice interface {
	Flavor() *catalog.Flavor
	Level() *catalog.Level
	SerializeXML() ([]byte, error)
	ToDict() map[string]pivot.Value
	PacketTemplate() (*etree.Document, error)
}

// Writer assembles output containers.
type Writer struct {
	// Now is the clock used for every timestamp of a write.
	Now func() time.Time
	// Creator is written as the Info /Creator and the XMP CreatorTool.
	Creator string
	// NewID returns the XMP document and instance IDs.
	NewID func() string

	log *zap.Logger
}

// NewWriter creates a writer. A nil logger disables logging.
func NewWriter(log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Writer{
		Now:     time.Now,
		Creator: defaultCreator,
		NewID:   uuid.NewString,
		log:     log,
	}
}

// assembly is the working state of one write.
type assembly struct {
	w   *Writer
	ctx *model.Context
	inv Invoice
	xml []byte

	meta Metadata
	now  time.Time
}

// Write embeds inv into a copy of src and returns the output PDF. When meta
// is nil the metadata is derived from the invoice fields.
func (w *Writer) Write(src *Source, inv Invoice, meta *Metadata) ([]byte, error) {
	if src == nil {
		return nil, errors.New("no source PDF to embed the invoice into")
	}

	now := w.Now()

	xml, err := inv.SerializeXML()
	if err != nil {
		return nil, err
	}

	if meta == nil {
		m := DefaultMetadata(inv.ToDict(), now)
		meta = &m
	}

	tmpl, err := inv.PacketTemplate()
	if err != nil {
		return nil, err
	}

	ctx, err := readContext(src.raw)
	if err != nil {
		return nil, err
	}

	a := &assembly{w: w, ctx: ctx, inv: inv, xml: xml, meta: *meta, now: now}
	if err := a.build(tmpl); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	w.log.Debug("Wrote invoice container",
		zap.String("level", inv.Level().Key()), zap.Int("size", buf.Len()))

	return buf.Bytes(), nil
}

func (a *assembly) build(tmpl *etree.Document) error {
	xrt := a.ctx.XRefTable

	source, err := xrt.Catalog()
	if err != nil {
		return fmt.Errorf("failed to read PDF catalog: %w", err)
	}

	pages, found := source.Find("Pages")
	if !found {
		return errors.New("source PDF has no page tree")
	}

	root := types.Dict{
		"Type":  types.Name("Catalog"),
		"Pages": pages,
	}

	intents, err := a.copyOutputIntents(source)
	if err != nil {
		return err
	}

	if len(intents) > 0 {
		root["OutputIntents"] = intents
	}

	spec, err := a.embed()
	if err != nil {
		return err
	}

	f := a.inv.Flavor()

	root["Names"] = types.Dict{
		"EmbeddedFiles": types.Dict{
			"Names": types.Array{textString(f.Attachment), *spec},
		},
	}
	root["AF"] = types.Array{*spec}
	root["PageMode"] = types.Name("UseAttachments")

	md, err := a.metadata(tmpl)
	if err != nil {
		return err
	}

	root["Metadata"] = *md

	ref, err := xrt.IndRefForNewObject(root)
	if err != nil {
		return err
	}

	xrt.Root = ref
	xrt.RootDict = root

	info, err := xrt.IndRefForNewObject(a.info())
	if err != nil {
		return err
	}

	xrt.Info = info

	return nil
}

// copyOutputIntents copies the output intents of the source catalog and
// their destination profiles into new objects. Intents that are not
// dictionaries or whose profile is not a stream are left out.
func (a *assembly) copyOutputIntents(source types.Dict) (types.Array, error) {
	o, found := source.Find("OutputIntents")
	if !found {
		return nil, nil
	}

	xrt := a.ctx.XRefTable

	arr, err := xrt.DereferenceArray(o)
	if err != nil {
		return nil, fmt.Errorf("failed to read /OutputIntents: %w", err)
	}

	var out types.Array

	for _, item := range arr {
		d, err := xrt.DereferenceDict(item)
		if err != nil || d == nil {
			a.w.log.Debug("Skipping output intent", zap.Error(err))
			continue
		}

		intent, _ := d.Clone().(types.Dict)

		if p, found := d.Find("DestOutputProfile"); found {
			sd, _, err := xrt.DereferenceStreamDict(p)
			if err != nil {
				a.w.log.Debug("Skipping output intent with unreadable profile", zap.Error(err))
				continue
			}

			if sd != nil {
				profile := *sd
				profile.Dict, _ = sd.Dict.Clone().(types.Dict)

				ref, err := xrt.IndRefForNewObject(profile)
				if err != nil {
					return nil, err
				}

				intent["DestOutputProfile"] = *ref
			}
		}

		ref, err := xrt.IndRefForNewObject(intent)
		if err != nil {
			return nil, err
		}

		out = append(out, *ref)
	}

	a.w.log.Debug("Copied output intents", zap.Int("count", len(out)))

	return out, nil
}

// embed adds the XML as an embedded file and returns its file spec.
func (a *assembly) embed() (*types.IndirectRef, error) {
	xrt := a.ctx.XRefTable
	sum := md5.Sum(a.xml)

	sd := types.NewStreamDict(types.Dict{
		"Type":    types.Name("EmbeddedFile"),
		"Subtype": types.Name("text/xml"),
		"Params": types.Dict{
			"CheckSum": types.NewHexLiteral(sum[:]),
			"ModDate":  types.StringLiteral(pdfDate(a.now)),
			"Size":     types.Integer(len(a.xml)),
		},
	}, 0, nil, nil, nil)
	sd.Content = a.xml

	if err := sd.Encode(); err != nil {
		return nil, fmt.Errorf("failed to encode embedded file: %w", err)
	}

	file, err := xrt.IndRefForNewObject(sd)
	if err != nil {
		return nil, err
	}

	name := textString(a.inv.Flavor().Attachment)

	spec, err := xrt.IndRefForNewObject(types.Dict{
		"Type":           types.Name("Filespec"),
		"F":              name,
		"UF":             name,
		"Desc":           types.StringLiteral(attachmentDesc),
		"AFRelationship": types.Name(a.inv.Level().Relationship),
		"EF": types.Dict{
			"F":  *file,
			"UF": *file,
		},
	})
	if err != nil {
		return nil, err
	}

	a.w.log.Debug("Embedded invoice XML",
		zap.String("attachment", a.inv.Flavor().Attachment), zap.Int("size", len(a.xml)))

	return spec, nil
}

// metadata adds the XMP packet stream. It is left uncompressed.
func (a *assembly) metadata(tmpl *etree.Document) (*types.IndirectRef, error) {
	f := a.inv.Flavor()
	if f.Packet == nil {
		return nil, fmt.Errorf("flavor %s cannot be embedded into a PDF: no XMP packet", f.ID)
	}

	p := &packet{
		meta:       a.meta,
		producer:   pdfProducer,
		creator:    a.w.Creator,
		now:        a.now,
		documentID: a.w.NewID(),
		instanceID: a.w.NewID(),
		flavor:     f.ID,
		ext:        f.Packet,
		level:      a.inv.Level().PacketLevel,
		attachment: f.Attachment,
	}

	b, err := p.build(tmpl)
	if err != nil {
		return nil, err
	}

	sd := types.NewStreamDict(types.Dict{
		"Type":    types.Name("Metadata"),
		"Subtype": types.Name("XML"),
	}, 0, nil, nil, nil)
	sd.Content = b

	if err := sd.Encode(); err != nil {
		return nil, fmt.Errorf("failed to encode XMP packet: %w", err)
	}

	return a.ctx.XRefTable.IndRefForNewObject(sd)
}

// info returns the Info dictionary. pdfcpu adds /Producer, /CreationDate and
// /ModDate when the file is written.
func (a *assembly) info() types.Dict {
	return types.Dict{
		"Author":   textString(a.meta.Author),
		"Creator":  textString(a.w.Creator),
		"Keywords": textString(a.meta.Keywords),
		"Subject":  textString(a.meta.Subject),
		"Title":    textString(a.meta.Title),
	}
}
