package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "check required fields and the XSD of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := p.open(args[0])
			if err != nil {
				return err
			}

			res := doc.Check()
			out := cmd.OutOrStdout()

			for _, d := range res.All() {
				fmt.Fprintln(out, d.String())
			}

			if err := res.Error(); err != nil {
				return fmt.Errorf("%s is not a valid %s invoice: %w", args[0], doc.Level().Key(), err)
			}

			fmt.Fprintf(out, "%s: valid %s invoice\n", args[0], doc.Level().Key())

			return nil
		},
	}
}
