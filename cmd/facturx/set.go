package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"facturx/internal/invoice"
	"facturx/internal/pivot"
)

func newSetCmd(p *params) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "set <output> <field=value>...",
		Short: "set invoice fields and write the result, chosen by the output extension",
		Long: "Set reads --input, or starts from the template of --flavor and --level, " +
			"writes each field=value pair and dumps the document to output.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := p.document(input)
			if err != nil {
				return err
			}

			for _, pair := range args[1:] {
				field, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", pair)
				}

				if err := doc.Set(strings.TrimSpace(field), pivot.Text(value)); err != nil {
					return err
				}
			}

			return doc.Dump(args[0])
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "XML or PDF invoice to start from")

	return cmd
}

// document opens path, or creates a fresh document when path is empty.
func (p *params) document(path string) (*invoice.Document, error) {
	if path != "" {
		return p.open(path)
	}

	cfg, err := p.config()
	if err != nil {
		return nil, err
	}

	return invoice.New(cfg)
}
