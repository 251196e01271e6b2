package flavor

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"facturx/internal/catalog"
)

const (
	rsmURI = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	ramURI = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	udtURI = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// minimumInvoice is a complete factur-x minimum document.
const minimumInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<rsm:CrossIndustryInvoice xmlns:rsm="` + rsmURI + `" xmlns:ram="` + ramURI + `" xmlns:udt="` + udtURI + `">
  <rsm:ExchangedDocumentContext>
    <ram:GuidelineSpecifiedDocumentContextParameter>
      <ram:ID>urn:factur-x.eu:1p0:minimum</ram:ID>
    </ram:GuidelineSpecifiedDocumentContextParameter>
  </rsm:ExchangedDocumentContext>
  <rsm:ExchangedDocument>
    <ram:ID>INV-2025-001</ram:ID>
    <ram:TypeCode>380</ram:TypeCode>
    <ram:IssueDateTime>
      <udt:DateTimeString format="102">20250115</udt:DateTimeString>
    </ram:IssueDateTime>
  </rsm:ExchangedDocument>
  <rsm:SupplyChainTradeTransaction>
    <ram:ApplicableHeaderTradeAgreement>
      <ram:SellerTradeParty>
        <ram:Name>Acme SARL</ram:Name>
        <ram:PostalTradeAddress>
          <ram:CountryID>FR</ram:CountryID>
        </ram:PostalTradeAddress>
      </ram:SellerTradeParty>
      <ram:BuyerTradeParty>
        <ram:Name>Globex GmbH</ram:Name>
        <ram:PostalTradeAddress>
          <ram:CountryID>DE</ram:CountryID>
        </ram:PostalTradeAddress>
      </ram:BuyerTradeParty>
    </ram:ApplicableHeaderTradeAgreement>
    <ram:ApplicableHeaderTradeDelivery/>
    <ram:ApplicableHeaderTradeSettlement>
      <ram:InvoiceCurrencyCode>EUR</ram:InvoiceCurrencyCode>
      <ram:SpecifiedTradeSettlementHeaderMonetarySummation>
        <ram:TaxBasisTotalAmount>100.00</ram:TaxBasisTotalAmount>
        <ram:TaxTotalAmount currencyID="EUR">20.00</ram:TaxTotalAmount>
        <ram:GrandTotalAmount>120.00</ram:GrandTotalAmount>
        <ram:DuePayableAmount>120.00</ram:DuePayableAmount>
      </ram:SpecifiedTradeSettlementHeaderMonetarySummation>
    </ram:ApplicableHeaderTradeSettlement>
  </rsm:SupplyChainTradeTransaction>
</rsm:CrossIndustryInvoice>
`

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	return NewResolver(catalog.MustDefault(), zaptest.NewLogger(t))
}

func versionDoc(t *testing.T, urn string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<rsm:CrossIndustryInvoice xmlns:rsm="`+rsmURI+`" xmlns:ram="`+ramURI+`">`+
		`<rsm:ExchangedDocumentContext><ram:GuidelineSpecifiedDocumentContextParameter>`+
		`<ram:ID>`+urn+`</ram:ID>`+
		`</ram:GuidelineSpecifiedDocumentContextParameter></rsm:ExchangedDocumentContext></rsm:CrossIndustryInvoice>`))

	return doc.Root()
}

func TestDetectFlavor(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "cii",
			xml:  `<rsm:CrossIndustryInvoice xmlns:rsm="` + rsmURI + `"/>`,
			want: "factur-x",
		},
		{
			name: "cii default namespace",
			xml:  `<CrossIndustryInvoice xmlns="` + rsmURI + `"/>`,
			want: "factur-x",
		},
		{
			name: "ubl",
			xml:  `<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"/>`,
			want: "ubl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(tt.xml))

			got, err := r.DetectFlavor(doc.Root())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFlavor_Unrecognized(t *testing.T) {
	r := newTestResolver(t)

	for _, xml := range []string{
		`<Invoice xmlns="urn:example:invoice"/>`,
		`<Invoice/>`,
		`<rsm:CrossIndustryInvoice xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryOrder:100"/>`,
	} {
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromString(xml))

		_, err := r.DetectFlavor(doc.Root())

		var ue *UnrecognizedFlavorError
		require.ErrorAs(t, err, &ue, xml)
	}

	_, err := r.DetectFlavor(nil)

	var ue *UnrecognizedFlavorError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "no root element")
}

func TestDetectLevel(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		urn  string
		want string
	}{
		{"urn:factur-x.eu:1p0:minimum", "minimum"},
		{"urn:factur-x.eu:1p0:basicwl", "basicwl"},
		{"urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic", "basic"},
		{"urn:cen.eu:en16931:2017", "en16931"},
		{"urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended", "extended"},
		{"urn:factur-x.eu:1p0:extended:1p0", "extended"},
		{"  urn:factur-x.eu:1p0:minimum\n", "minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.urn, func(t *testing.T) {
			got, err := r.DetectLevel(versionDoc(t, tt.urn), "factur-x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectLevel_Invalid(t *testing.T) {
	r := newTestResolver(t)

	for _, urn := range []string{"urn:factur-x.eu:1p0:gold", "urn:factur-x.eu:minimum:1p0:2025", "minimal"} {
		_, err := r.DetectLevel(versionDoc(t, urn), "factur-x")

		var ve *InvalidVersionURNError
		require.ErrorAs(t, err, &ve, urn)
		assert.Equal(t, strings.TrimSpace(urn), ve.URN)
	}

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<rsm:CrossIndustryInvoice xmlns:rsm="`+rsmURI+`"/>`))

	_, err := r.DetectLevel(doc.Root(), "factur-x")

	var ve *InvalidVersionURNError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, ve.URN)
	assert.Equal(t, "invalid factur-x document: version URN not found", err.Error())
}

func TestParse(t *testing.T) {
	r := newTestResolver(t)

	doc, err := r.Parse([]byte(minimumInvoice))
	require.NoError(t, err)
	assert.Equal(t, "factur-x", doc.Flavor().ID)
	assert.Equal(t, "minimum", doc.Level().ID)

	_, err = r.Parse([]byte("<rsm:CrossIndustryInvoice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse invoice XML")
}

func TestFromTemplate(t *testing.T) {
	r := newTestResolver(t)

	for _, pair := range [][2]string{{"factur-x", "minimum"}, {"factur-x", "basicwl"}, {"ubl", "en16931"}} {
		doc, err := r.FromTemplate(pair[0], pair[1])
		require.NoError(t, err, pair)
		assert.Equal(t, pair[0], doc.Flavor().ID)
		assert.Equal(t, pair[1], doc.Level().ID)
		assert.NotNil(t, doc.Tree().Root())
	}

	_, err := r.FromTemplate("factur-x", "basic")

	var nf *TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceTemplate, nf.Kind)
	assert.Equal(t, "no template defined for factur-x/basic", err.Error())

	_, err = r.FromTemplate("factur-x", "gold")
	require.ErrorIs(t, err, catalog.ErrUnknownLevel)
}

func TestValidateAgainstSchema(t *testing.T) {
	r := newTestResolver(t)

	doc, err := r.Parse([]byte(minimumInvoice))
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	// The schema is compiled once.
	require.NoError(t, doc.Validate())
	assert.Len(t, r.schemas, 1)

	fresh, err := r.FromTemplate("factur-x", "minimum")
	require.NoError(t, err)

	err = fresh.Validate()

	var se *SchemaValidationError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "minimum", se.Level)
	assert.NotEmpty(t, se.Message)
	assert.Contains(t, err.Error(), se.Message)
	assert.False(t, se.Diagnostics().IsValid())
}

func TestValidateAgainstSchema_MissingElement(t *testing.T) {
	r := newTestResolver(t)

	broken := strings.Replace(minimumInvoice, "<ram:Name>Acme SARL</ram:Name>", "", 1)

	doc, err := r.Parse([]byte(broken))
	require.NoError(t, err)

	var se *SchemaValidationError
	require.ErrorAs(t, doc.Validate(), &se)
}

func TestValidateAgainstSchema_MissingSchema(t *testing.T) {
	r := newTestResolver(t)

	doc, err := r.Parse([]byte(minimumInvoice))
	require.NoError(t, err)

	err = r.ValidateAgainstSchema(doc.Tree(), "factur-x", "extended")

	var nf *TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceSchema, nf.Kind)
	assert.Equal(t, "factur-x/xsd/FACTUR-X_EXTENDED.xsd", nf.Resource)
}

func TestPacketTemplate(t *testing.T) {
	r := newTestResolver(t)

	doc, err := r.PacketTemplate("factur-x")
	require.NoError(t, err)

	descs := doc.FindElements("//rdf:Description")
	assert.GreaterOrEqual(t, len(descs), 2)

	_, err = r.PacketTemplate("ubl")

	var nf *TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourcePacket, nf.Kind)
}
