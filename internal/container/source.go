package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	api.DisableConfigDir()
}

// Source is a parsed PDF. It is read-only; writers parse its bytes again.
type Source struct {
	raw []byte
	ctx *model.Context
}

// Read parses PDF bytes.
func Read(b []byte) (*Source, error) {
	ctx, err := readContext(b)
	if err != nil {
		return nil, err
	}

	return &Source{raw: b, ctx: ctx}, nil
}

// ReadFile reads and parses a PDF file.
func ReadFile(path string) (*Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF file: %w", err)
	}

	return Read(b)
}

func readContext(b []byte) (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(b), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	if ctx.XRefTable.Root == nil {
		return nil, errors.New("failed to parse PDF: no document catalog")
	}

	return ctx, nil
}

// Bytes returns the source bytes.
func (s *Source) Bytes() []byte {
	return s.raw
}

// Attachment returns the content and name of the first embedded file whose
// name is one of names. The name is /UF when present, else /F. It reports
// false when there is none.
func (s *Source) Attachment(names ...string) (b []byte, name string, ok bool, err error) {
	// pdfcpu panics on file specs without an /EF stream.
	defer func() {
		if r := recover(); r != nil {
			b, name, ok = nil, "", false
			err = fmt.Errorf("failed to read embedded files: malformed file spec: %v", r)
		}
	}()

	aa, err := s.ctx.ListAttachments()
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to read embedded files: %w", err)
	}

	for _, a := range aa {
		if !slices.Contains(names, a.FileName) {
			continue
		}

		full, err := s.ctx.ExtractAttachment(a)
		if err != nil {
			return nil, "", false, fmt.Errorf("attachment %s: %w", a.FileName, err)
		}

		if full == nil || full.Reader == nil {
			return nil, "", false, fmt.Errorf("attachment %s: no embedded file stream", a.FileName)
		}

		content, err := io.ReadAll(full.Reader)
		if err != nil {
			return nil, "", false, fmt.Errorf("attachment %s: %w", a.FileName, err)
		}

		return content, a.FileName, true, nil
	}

	return nil, "", false, nil
}
