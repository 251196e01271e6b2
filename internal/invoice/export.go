package invoice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"facturx/internal/container"
	"facturx/internal/pivot"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// JSON returns the pivot fields as an indented JSON object.
func (d *Document) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(pivot.Export(d.ToDict()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields as JSON: %w", err)
	}

	return append(b, '\n'), nil
}

// YAML returns the pivot fields as a YAML mapping.
func (d *Document) YAML() ([]byte, error) {
	b, err := yaml.Marshal(pivot.Export(d.ToDict()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields as YAML: %w", err)
	}

	return b, nil
}

// WriteXML writes the XML to path.
func (d *Document) WriteXML(path string) error {
	b, err := d.SerializeXML()
	if err != nil {
		return err
	}

	return writeFile(path, b)
}

// WriteJSON writes the pivot fields to path as JSON.
func (d *Document) WriteJSON(path string) error {
	b, err := d.JSON()
	if err != nil {
		return err
	}

	return writeFile(path, b)
}

// WriteYAML writes the pivot fields to path as YAML.
func (d *Document) WriteYAML(path string) error {
	b, err := d.YAML()
	if err != nil {
		return err
	}

	return writeFile(path, b)
}

// WritePDF embeds the XML into the source PDF and writes the result to path.
func (d *Document) WritePDF(path string, meta *container.Metadata) error {
	b, err := d.PDF(meta)
	if err != nil {
		return err
	}

	return writeFile(path, b)
}

// Dump writes the document to path in the format named by its extension:
// .xml, .json, .yml/.yaml or .pdf.
func (d *Document) Dump(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		return d.WriteXML(path)
	case ".json":
		return d.WriteJSON(path)
	case ".yml", ".yaml":
		return d.WriteYAML(path)
	case ".pdf":
		return d.WritePDF(path, nil)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, b, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
