package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"facturx/internal/catalog"
)

func newFieldsCmd(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "list the fields of the catalog defined for --flavor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := p.config()
			if err != nil {
				return err
			}

			cat := cfg.Catalog
			if cat == nil {
				if cat, err = catalog.Default(); err != nil {
					return err
				}
			}

			if _, err := cat.Flavor(p.flavor); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, name := range cat.FieldNamesFor(p.flavor) {
				f, err := cat.Field(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Kind, f.Description)
			}

			return w.Flush()
		},
	}
}
