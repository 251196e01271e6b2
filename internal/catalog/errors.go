package catalog

import (
	"errors"
	"fmt"
	"strings"

	"facturx/internal/diagnostic"
)

// CatalogError reports a catalog that cannot be used: unreadable or
// malformed YAML, or a structure that fails validation.
type CatalogError struct {
	// Source is the catalog file or directory.
	Source string
	// Diagnostics is set when structural validation failed.
	Diagnostics *diagnostic.Diagnostics
	// Err is the underlying read or parse error, if any.
	Err error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
	}

	if e.Diagnostics != nil {
		if err := e.Diagnostics.Error(); err != nil {
			return fmt.Sprintf("catalog %s: %v", e.Source, err)
		}
	}

	return fmt.Sprintf("catalog %s: invalid", e.Source)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// UnknownFieldError is returned for a field name the catalog does not define.
type UnknownFieldError struct {
	Field       string
	Suggestions []string
}

func (e *UnknownFieldError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown field %q", e.Field)
	}

	return fmt.Sprintf("unknown field %q (did you mean %s?)", e.Field, strings.Join(e.Suggestions, ", "))
}

// PathNotDefinedForFlavorError is returned for a known field that has no
// path in the requested flavor.
type PathNotDefinedForFlavorError struct {
	Field  string
	Flavor string
}

func (e *PathNotDefinedForFlavorError) Error() string {
	return fmt.Sprintf("field %q is not defined for flavor %q", e.Field, e.Flavor)
}

// Sentinel errors for lookups of flavors and levels.
var (
	ErrUnknownFlavor = errors.New("unknown flavor")
	ErrUnknownLevel  = errors.New("unknown level")
)
