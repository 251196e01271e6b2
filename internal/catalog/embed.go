package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var dataFS embed.FS

// Default returns the embedded catalog. It is loaded once per process; later
// calls return the same instance (or the same error).
var Default = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, &CatalogError{Source: "embedded", Err: err}
	}

	cat, err := load(sub, "embedded")
	if err != nil {
		return nil, err
	}

	return cat, nil
})

// MustDefault returns the embedded catalog and panics if it is malformed.
func MustDefault() *Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}

	return cat
}
