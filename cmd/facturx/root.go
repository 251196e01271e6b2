package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/invoice"
)

type params struct {
	catalogDir string
	flavor     string
	level      string
	verbose    bool

	log *zap.Logger
}

func newRootCmd(p *params) *cobra.Command {
	defaults := invoice.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "facturx",
		Short:         "read, check and embed Factur-X invoices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return p.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = p.log.Sync()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&p.catalogDir, "catalog", "", "directory holding fields.yml, flavors.yml and the XML resources (default: embedded catalog)")
	flags.StringVar(&p.flavor, "flavor", defaults.Flavor, "flavor of documents created from a template")
	flags.StringVar(&p.level, "level", defaults.Level, "level of documents created from a template")
	flags.BoolVarP(&p.verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(
		newDumpCmd(p),
		newValidateCmd(p),
		newEmbedCmd(p),
		newSetCmd(p),
		newFieldsCmd(p),
	)

	return cmd
}

// setup builds the logger unless one is set already.
func (p *params) setup() error {
	if p.log != nil {
		return nil
	}

	var err error

	if p.verbose {
		p.log, err = zap.NewDevelopment()
	} else {
		p.log, err = zap.NewProduction()
	}

	return err
}

// config builds the document configuration from the flags.
func (p *params) config() (invoice.Config, error) {
	cfg := invoice.DefaultConfig()
	cfg.Flavor = p.flavor
	cfg.Level = p.level
	cfg.Logger = p.log

	if p.catalogDir != "" {
		cat, err := catalog.LoadDir(p.catalogDir)
		if err != nil {
			return cfg, err
		}

		cfg.Catalog = cat
	}

	return cfg, nil
}

func (p *params) open(path string) (*invoice.Document, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}

	return invoice.Open(path, cfg)
}
