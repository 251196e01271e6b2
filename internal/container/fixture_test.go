package container

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"facturx/internal/catalog"
	"facturx/internal/flavor"
	"facturx/internal/pivot"
	"facturx/internal/registry"
)

var testNow = time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC)

// testInvoice adapts a resolved document to the Invoice interface.
type testInvoice struct {
	doc      *flavor.Resolved
	codec    *pivot.Codec
	resolver *flavor.Resolver
}

func (i *testInvoice) Flavor() *catalog.Flavor { return i.doc.Flavor() }
func (i *testInvoice) Level() *catalog.Level { return i.doc.Level() }
func (i *testInvoice) SerializeXML() ([]byte, error) { return i.doc.Serialize() }
func (i *testInvoice) ToDict() map[string]pivot.Value { return i.codec.ToDict(i.doc) }
func (i *testInvoice) PacketTemplate() (*etree.Document, error) {
	return i.resolver.PacketTemplate(i.doc.Flavor().ID)
}

func newTestInvoice(t *testing.T) *testInvoice {
	t.Helper()

	log := zaptest.NewLogger(t)
	cat := catalog.MustDefault()
	res := flavor.NewResolver(cat, log)

	b, err := os.ReadFile(filepath.Join("testdata", "minimum.xml"))
	require.NoError(t, err)

	doc, err := res.Parse(b)
	require.NoError(t, err)

	return &testInvoice{doc: doc, codec: pivot.NewCodec(cat, registry.Default(), log), resolver: res}
}

func newTestWriter(t *testing.T) *Writer {
	t.Helper()

	w := NewWriter(zaptest.NewLogger(t))
	w.Now = func() time.Time { return testNow }

	ids := []string{"11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222"}
	n := 0
	w.NewID = func() string {
		id := ids[n%len(ids)]
		n++

		return id
	}

	return w
}

// outputCatalog returns the catalog of a written PDF.
func outputCatalog(t *testing.T, s *Source) types.Dict {
	t.Helper()

	root, err := s.ctx.XRefTable.Catalog()
	require.NoError(t, err)

	return root
}

func deref(t *testing.T, s *Source, o types.Object) types.Dict {
	t.Helper()

	d, err := s.ctx.XRefTable.DereferenceDict(o)
	require.NoError(t, err)
	require.NotNil(t, d)

	return d
}

func streamContent(t *testing.T, s *Source, o types.Object) (*types.StreamDict, []byte) {
	t.Helper()

	sd, _, err := s.ctx.XRefTable.DereferenceStreamDict(o)
	require.NoError(t, err)
	require.NotNil(t, sd)
	require.NoError(t, sd.Decode())

	return sd, sd.Content
}

func text(t *testing.T, o types.Object) string {
	t.Helper()

	s, ok := decodeText(o)
	require.True(t, ok, "not a text string: %v", o)

	return s
}
