package container

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/davecgh/go-spew/spew"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturx/internal/container/containertest"
	"facturx/internal/flavor"
)

func writeTest(t *testing.T, spec containertest.Spec, meta *Metadata) (*testInvoice, *Source) {
	t.Helper()

	inv := newTestInvoice(t)

	src, err := Read(containertest.PDF(spec))
	require.NoError(t, err)

	out, err := newTestWriter(t).Write(src, inv, meta)
	require.NoError(t, err)

	written, err := Read(out)
	require.NoError(t, err)

	return inv, written
}

func TestWrite_RoundTrip(t *testing.T) {
	inv, out := writeTest(t, containertest.Spec{}, nil)

	want, err := inv.SerializeXML()
	require.NoError(t, err)

	got, name, ok, err := out.Attachment("factur-x.xml", "ubl.xml")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "factur-x.xml", name)
	assert.Equal(t, string(want), string(got))
}

func TestWrite_Catalog(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{}, nil)
	root := outputCatalog(t, out)

	_, found := root.Find("OutputIntents")
	assert.False(t, found, "unexpected /OutputIntents in %s", spew.Sdump(root))

	mode, found := root.Find("PageMode")
	require.True(t, found)
	assert.Equal(t, types.Name("UseAttachments"), mode)

	af, found := root.Find("AF")
	require.True(t, found)

	arr, ok := af.(types.Array)
	require.True(t, ok, "/AF is not a direct array: %s", spew.Sdump(af))
	require.Len(t, arr, 1)

	spec := deref(t, out, arr[0])
	assert.Equal(t, types.Name("Filespec"), spec["Type"])
	assert.Equal(t, "factur-x.xml", text(t, spec["UF"]))

	_, found = root.Find("Pages")
	assert.True(t, found)
}

func TestWrite_CopiesOutputIntents(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{OutputIntents: true}, nil)
	root := outputCatalog(t, out)

	o, found := root.Find("OutputIntents")
	require.True(t, found)

	arr, err := out.ctx.XRefTable.DereferenceArray(o)
	require.NoError(t, err)
	require.Len(t, arr, 1)

	intent := deref(t, out, arr[0])
	assert.Equal(t, types.Name("GTS_PDFA1"), intent["S"])
	assert.Equal(t, "sRGB IEC61966-2.1", text(t, intent["OutputConditionIdentifier"]))

	sd, content := streamContent(t, out, intent["DestOutputProfile"])
	assert.Equal(t, containertest.Profile, string(content))
	assert.Equal(t, types.Integer(3), sd.Dict["N"])
}

func TestWrite_SkipsBrokenOutputIntents(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{OutputIntents: true, BrokenIntents: true}, nil)
	root := outputCatalog(t, out)

	arr, err := out.ctx.XRefTable.DereferenceArray(root["OutputIntents"])
	require.NoError(t, err)
	require.Len(t, arr, 1)

	intent := deref(t, out, arr[0])
	assert.Equal(t, "sRGB IEC61966-2.1", text(t, intent["OutputConditionIdentifier"]))

	_, out = writeTest(t, containertest.Spec{BrokenIntents: true}, nil)
	_, found := outputCatalog(t, out).Find("OutputIntents")
	assert.False(t, found)
}

func TestWrite_EmbeddedFile(t *testing.T) {
	inv, out := writeTest(t, containertest.Spec{}, nil)
	root := outputCatalog(t, out)

	names := deref(t, out, root["Names"])
	tree := deref(t, out, names["EmbeddedFiles"])

	arr, err := out.ctx.XRefTable.DereferenceArray(tree["Names"])
	require.NoError(t, err)
	require.Len(t, arr, 2)
	assert.Equal(t, "factur-x.xml", text(t, arr[0]))

	spec := deref(t, out, arr[1])
	assert.Equal(t, types.Name("Filespec"), spec["Type"])
	assert.Equal(t, types.Name("Data"), spec["AFRelationship"])
	assert.Equal(t, "factur-x.xml", text(t, spec["UF"]))

	ef := deref(t, out, spec["EF"])
	sd, content := streamContent(t, out, ef["F"])

	xml, err := inv.SerializeXML()
	require.NoError(t, err)
	assert.Equal(t, xml, content)

	assert.Equal(t, types.Name("EmbeddedFile"), sd.Dict["Type"])
	assert.Equal(t, types.Name("text/xml"), sd.Dict["Subtype"])

	params := deref(t, out, sd.Dict["Params"])
	sum := md5.Sum(xml)

	checksum, ok := params["CheckSum"].(types.HexLiteral)
	require.True(t, ok, spew.Sdump(params))
	assert.Equal(t, hex.EncodeToString(sum[:]), strings.ToLower(string(checksum)))
	assert.Equal(t, types.Integer(len(xml)), params["Size"])
	assert.Equal(t, "D:20250120093000+00'00'", text(t, params["ModDate"]))
}

func TestWrite_Metadata(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{}, nil)
	root := outputCatalog(t, out)

	sd, content := streamContent(t, out, root["Metadata"])
	assert.Equal(t, types.Name("Metadata"), sd.Dict["Type"])
	assert.Equal(t, types.Name("XML"), sd.Dict["Subtype"])

	_, compressed := sd.Dict.Find("Filter")
	assert.False(t, compressed)

	packet := string(content)
	assert.True(t, strings.HasPrefix(packet, "<?xpacket begin=\"\ufeff\" id=\"W5M0MpCehiHzreSzNTczkc9d\"?>"))
	assert.True(t, strings.HasSuffix(packet, `<?xpacket end="w"?>`))
	assert.Contains(t, packet, "Acme SARL: Invoice INV-2025-001")
	assert.Contains(t, packet, `fx:ConformanceLevel="MINIMUM"`)
	assert.Contains(t, packet, "uuid:11111111-1111-1111-1111-111111111111")
}

func TestWrite_Info(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{}, nil)
	require.NotNil(t, out.ctx.XRefTable.Info)

	info := deref(t, out, *out.ctx.XRefTable.Info)

	assert.Equal(t, "Acme SARL", text(t, info["Author"]))
	assert.Equal(t, "Invoice, Factur-X", text(t, info["Keywords"]))
	assert.Equal(t, "Acme SARL: Invoice INV-2025-001", text(t, info["Title"]))
	assert.Equal(t, "Factur-X Invoice INV-2025-001 dated 2025-01-15 issued by Acme SARL", text(t, info["Subject"]))
	assert.Equal(t, defaultCreator, text(t, info["Creator"]))
	assert.Contains(t, info, "CreationDate")
	assert.Contains(t, info, "ModDate")
}

func TestWrite_ProducerMatchesPacket(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{}, nil)

	info := deref(t, out, *out.ctx.XRefTable.Info)
	producer := text(t, info["Producer"])
	assert.Equal(t, pdfProducer, producer)

	_, content := streamContent(t, out, outputCatalog(t, out)["Metadata"])

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(content))

	el := doc.FindElement("//pdf:Producer")
	require.NotNil(t, el)
	assert.Equal(t, producer, el.Text())
}

func TestWrite_CallerMetadata(t *testing.T) {
	meta := SanitizeMetadata(map[string]any{"title": "Facture 42", "author": "Société Générale", "subject": 42})

	_, out := writeTest(t, containertest.Spec{}, meta)
	info := deref(t, out, *out.ctx.XRefTable.Info)

	assert.Equal(t, "Facture 42", text(t, info["Title"]))
	assert.Equal(t, "Société Générale", text(t, info["Author"]))
	assert.Empty(t, text(t, info["Subject"]))
}

func TestWrite_KeepsFileID(t *testing.T) {
	_, out := writeTest(t, containertest.Spec{}, nil)

	id := out.ctx.XRefTable.ID
	require.NotEmpty(t, id)

	first, ok := id[0].(types.HexLiteral)
	require.True(t, ok, spew.Sdump(id))
	assert.Equal(t, containertest.FileID, strings.ToLower(string(first)))
}

func TestWrite_ReplacesExistingAttachment(t *testing.T) {
	inv, out := writeTest(t, containertest.Spec{Attachment: "factur-x.xml", Content: "<old/>"}, nil)

	want, err := inv.SerializeXML()
	require.NoError(t, err)

	got, _, ok, err := out.Attachment("factur-x.xml")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestWrite_Errors(t *testing.T) {
	inv := newTestInvoice(t)
	w := newTestWriter(t)

	_, err := w.Write(nil, inv, nil)
	require.Error(t, err)

	src, err := Read(containertest.PDF(containertest.Spec{}))
	require.NoError(t, err)

	ubl, err := inv.resolver.FromTemplate("ubl", "en16931")
	require.NoError(t, err)

	_, err = w.Write(src, &testInvoice{doc: ubl, codec: inv.codec, resolver: inv.resolver}, nil)

	var nf *flavor.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, flavor.ResourcePacket, nf.Kind)
}
