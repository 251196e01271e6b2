package container

import (
	"bytes"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"facturx/internal/catalog"
)

const (
	nsX      = "adobe:ns:meta/"
	nsRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsDC     = "http://purl.org/dc/elements/1.1/"
	nsPDF    = "http://ns.adobe.com/pdf/1.3/"
	nsXMP    = "http://ns.adobe.com/xap/1.0/"
	nsXMPMM  = "http://ns.adobe.com/xap/1.0/mm/"
	nsPDFAID = "http://www.aiim.org/pdfa/ns/id/"

	packetHeader  = `begin="` + "\ufeff" + `" id="W5M0MpCehiHzreSzNTczkc9d"`
	packetTrailer = `end="w"`
)

// packet holds the values written into an XMP packet.
type packet struct {
	meta       Metadata
	producer   string
	creator    string
	now        time.Time
	documentID string
	instanceID string

	flavor     string
	ext        *catalog.Packet
	level      string
	attachment string
}

// build renders the packet. tmpl is the XMP template of the flavor; its
// second rdf:Description (the extension schema) is copied into the output.
func (p *packet) build(tmpl *etree.Document) ([]byte, error) {
	schema, err := extensionSchema(tmpl, p.flavor)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xpacket", packetHeader)

	meta := doc.CreateElement("x:xmpmeta")
	meta.CreateAttr("xmlns:x", nsX)

	rdf := meta.CreateElement("rdf:RDF")
	rdf.CreateAttr("xmlns:rdf", nsRDF)

	d := description(rdf, "pdfaid", nsPDFAID)
	d.CreateElement("pdfaid:part").SetText("3")
	d.CreateElement("pdfaid:conformance").SetText("B")

	d = description(rdf, "dc", nsDC)
	altLang(d.CreateElement("dc:title"), p.meta.Title)
	d.CreateElement("dc:creator").CreateElement("rdf:Seq").CreateElement("rdf:li").SetText(p.meta.Author)
	altLang(d.CreateElement("dc:description"), p.meta.Subject)

	d = description(rdf, "pdf", nsPDF)
	d.CreateElement("pdf:Producer").SetText(p.producer)

	stamp := xmpDate(p.now)

	d = description(rdf, "xmp", nsXMP)
	d.CreateElement("xmp:CreatorTool").SetText(p.creator)
	d.CreateElement("xmp:CreateDate").SetText(stamp)
	d.CreateElement("xmp:ModifyDate").SetText(stamp)

	d = description(rdf, "xmpMM", nsXMPMM)
	d.CreateElement("xmpMM:DocumentID").SetText("uuid:" + p.documentID)
	d.CreateElement("xmpMM:InstanceID").SetText("uuid:" + p.instanceID)

	rdf.AddChild(schema)

	d = description(rdf, p.ext.Prefix, p.ext.Namespace)
	d.CreateAttr(p.ext.Prefix+":ConformanceLevel", p.level)
	d.CreateAttr(p.ext.Prefix+":DocumentFileName", p.attachment)
	d.CreateAttr(p.ext.Prefix+":DocumentType", p.ext.DocumentType)
	d.CreateAttr(p.ext.Prefix+":Version", p.ext.Version)

	doc.CreateProcInst("xpacket", packetTrailer)
	doc.Indent(2)

	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize XMP packet: %w", err)
	}

	return bytes.TrimRight(b, "\n"), nil
}

func description(rdf *etree.Element, prefix, uri string) *etree.Element {
	d := rdf.CreateElement("rdf:Description")
	d.CreateAttr("rdf:about", "")
	d.CreateAttr("xmlns:"+prefix, uri)

	return d
}

func altLang(parent *etree.Element, text string) {
	li := parent.CreateElement("rdf:Alt").CreateElement("rdf:li")
	li.CreateAttr("xml:lang", "x-default")
	li.SetText(text)
}

// extensionSchema returns a detached copy of the second rdf:Description of
// tmpl in document order, carrying the namespace declarations it inherits.
func extensionSchema(tmpl *etree.Document, flavor string) (*etree.Element, error) {
	var found []*etree.Element

	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "Description" && el.NamespaceURI() == nsRDF {
			found = append(found, el)
		}

		for _, c := range el.ChildElements() {
			walk(c)
		}
	}

	if root := tmpl.Root(); root != nil {
		walk(root)
	}

	if len(found) < 2 {
		return nil, &PacketTemplateError{Flavor: flavor, Found: len(found)}
	}

	src := found[1]
	out := src.Copy()

	declared := map[string]string{"x": nsX, "rdf": nsRDF}
	for _, a := range out.Attr {
		if a.Space == "xmlns" {
			declared[a.Key] = a.Value
		}
	}

	for e := src.Parent(); e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Space != "xmlns" {
				continue
			}

			if _, ok := declared[a.Key]; ok {
				continue
			}

			declared[a.Key] = a.Value
			out.CreateAttr("xmlns:"+a.Key, a.Value)
		}
	}

	return out, nil
}

// xmpDate formats t as an XMP date in UTC.
func xmpDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + "+00:00"
}

// pdfDate formats t as a PDF date in UTC.
func pdfDate(t time.Time) string {
	return "D:" + t.UTC().Format("20060102150405") + "+00'00'"
}
