// Package catalog provides the field and flavor catalog: YAML schema
// definitions, parsing, structural validation and the embedded default
// catalog with its templates, XSD schemas and XMP packet templates.
//
// The catalog is the single place that knows where a pivot field lives in
// each invoice flavor and which conformance levels a flavor supports.
//
// # Schema Overview
//
// fields.yml lists the pivot fields:
//
//	version: "1"
//	fields:
//	  - name: invoice_number
//	    kind: text
//	    paths:
//	      factur-x: /rsm:CrossIndustryInvoice/rsm:ExchangedDocument/ram:ID
//	      ubl: /inv:Invoice/cbc:ID
//
// flavors.yml describes each flavor and its levels:
//
//	version: "1"
//	flavors:
//	  - id: factur-x
//	    namespace_prefix: "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice"
//	    namespaces:
//	      rsm: urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100
//	    attachment: factur-x.xml
//	    date: {layout: "20060102", qualifier: "102"}
//	    levels:
//	      - id: minimum
//	        schema: factur-x/xsd/FACTUR-X_MINIMUM.xsd
//	        template: factur-x/xml/FACTUR-X_MINIMUM.xml
//	        packet_level: MINIMUM
//	        relationship: Data
//	        required: [invoice_number, date]
//
// # Field Kinds
//
//   - text: free text, written as is
//   - date: calendar date, written with the flavor's date layout
//   - country: ISO 3166-1 alpha-2 code, checked against the code registry
//   - currency: ISO 4217 code, checked against the code registry
//
// A field without a path for a flavor is not applicable to that flavor;
// lookups fail with PathNotDefinedForFlavorError and no default is applied.
//
// The catalog is immutable once loaded. Default loads the embedded catalog
// once per process.
package catalog
