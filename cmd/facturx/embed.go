package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"facturx/internal/container"
)

func newEmbedCmd(p *params) *cobra.Command {
	var metaFile string

	cmd := &cobra.Command{
		Use:   "embed <pdf> <xml> <output>",
		Short: "embed an invoice XML into a PDF",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			pdf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read PDF: %w", err)
			}

			doc, err := p.open(args[1])
			if err != nil {
				return err
			}

			meta, err := readMetadata(metaFile)
			if err != nil {
				return err
			}

			out, err := doc.Embed(pdf, meta)
			if err != nil {
				return err
			}

			if err := os.WriteFile(args[2], out, 0o644); err != nil {
				return fmt.Errorf("writing file %s: %w", args[2], err)
			}

			p.log.Info("Embedded invoice",
				zap.String("pdf", args[0]), zap.String("output", args[2]),
				zap.String("level", doc.Level().Key()))

			return nil
		},
	}

	cmd.Flags().StringVar(&metaFile, "meta", "", "YAML file with author, keywords, title and subject (default: derived from the invoice)")

	return cmd
}

// readMetadata reads PDF metadata from a YAML mapping. An empty path returns
// nil.
func readMetadata(path string) (*container.Metadata, error) {
	if path == "" {
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}

	return container.SanitizeMetadata(raw), nil
}
