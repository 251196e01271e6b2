package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog file names inside a catalog directory.
const (
	FieldsFileName  = "fields.yml"
	FlavorsFileName = "flavors.yml"
)

// LoadDir loads a catalog from a directory on disk. Resources referenced by
// the catalog are resolved relative to dir.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &CatalogError{Source: dir, Err: err}
	}

	if !info.IsDir() {
		return nil, &CatalogError{Source: dir, Err: errors.New("not a directory")}
	}

	return load(os.DirFS(dir), dir)
}

// Load loads a catalog from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	return load(fsys, ".")
}

func load(fsys fs.FS, source string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, FieldsFileName)
	if err != nil {
		return nil, &CatalogError{Source: source, Err: fmt.Errorf("failed to read %s: %w", FieldsFileName, err)}
	}

	fields, err := ParseFields(data)
	if err != nil {
		return nil, &CatalogError{Source: source, Err: err}
	}

	data, err = fs.ReadFile(fsys, FlavorsFileName)
	if err != nil {
		return nil, &CatalogError{Source: source, Err: fmt.Errorf("failed to read %s: %w", FlavorsFileName, err)}
	}

	flavors, err := ParseFlavors(data)
	if err != nil {
		return nil, &CatalogError{Source: source, Err: err}
	}

	cat, err := New(fsys, fields, flavors)
	if err != nil {
		var ce *CatalogError
		if errors.As(err, &ce) {
			ce.Source = source
		}

		return nil, err
	}

	return cat, nil
}

// ParseFields parses fields.yml. Unknown keys are rejected.
func ParseFields(data []byte) (*FieldsFile, error) {
	var ff FieldsFile

	if err := decodeStrict(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FieldsFileName, err)
	}

	if ff.Version == "" {
		ff.Version = "1"
	}

	return &ff, nil
}

// ParseFlavors parses flavors.yml. Unknown keys are rejected.
func ParseFlavors(data []byte) (*FlavorsFile, error) {
	var ff FlavorsFile

	if err := decodeStrict(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FlavorsFileName, err)
	}

	applyDefaults(&ff)

	return &ff, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(out)
	if errors.Is(err, io.EOF) {
		return errors.New("document is empty")
	}

	return err
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(ff *FlavorsFile) {
	if ff.Version == "" {
		ff.Version = "1"
	}

	for i := range ff.Flavors {
		f := &ff.Flavors[i]
		if f.Date.Qualifier != "" && f.Date.QualifierAttr == "" {
			f.Date.QualifierAttr = "format"
		}

		for j := range f.Levels {
			l := &f.Levels[j]
			l.Flavor = f.ID

			if l.Relationship == "" {
				l.Relationship = "Data"
			}
		}
	}
}
