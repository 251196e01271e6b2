// Package main provides the CLI entrypoint for facturx.
//
// facturx reads and writes Factur-X invoices:
//   - Dumps the pivot fields of an XML or PDF invoice as JSON, YAML or XML
//   - Checks required fields and the XSD of the invoice level
//   - Embeds an invoice XML into a PDF/A-3 container
//   - Lists the fields of the catalog
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&params{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
