package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <input> <output>",
		Short: "write an invoice as XML, JSON, YAML or PDF, chosen by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := p.open(args[0])
			if err != nil {
				return err
			}

			if err := doc.Dump(args[1]); err != nil {
				return err
			}

			p.log.Info("Dumped invoice",
				zap.String("input", args[0]), zap.String("output", args[1]),
				zap.String("level", doc.Level().Key()))

			return nil
		},
	}
}
