package invoice

import (
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/container"
	"facturx/internal/registry"
)

// Config holds the settings of a Document.
type Config struct {
	// Flavor and Level select the template of fresh documents.
	Flavor string
	Level  string
	// Catalog defaults to the embedded catalog.
	Catalog *catalog.Catalog
	// Registry checks the codes written into code fields.
	Registry registry.Registry
	// Writer assembles PDF output; a default writer is used when nil.
	Writer *container.Writer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns the default document configuration.
func DefaultConfig() Config {
	return Config{
		Flavor:   "factur-x",
		Level:    "minimum",
		Registry: registry.Default(),
	}
}

func (c Config) withDefaults() (Config, error) {
	if c.Catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return c, err
		}

		c.Catalog = cat
	}

	if c.Registry == nil {
		c.Registry = registry.Default()
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.Writer == nil {
		c.Writer = container.NewWriter(c.Logger)
	}

	return c, nil
}
