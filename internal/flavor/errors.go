package flavor

import (
	"fmt"
	"strings"

	xsderrors "github.com/jacoelho/xsd/errors"

	"facturx/internal/diagnostic"
)

// UnrecognizedFlavorError is returned when the root namespace of a document
// matches no flavor of the catalog.
type UnrecognizedFlavorError struct {
	Namespace string
	Tag       string
}

func (e *UnrecognizedFlavorError) Error() string {
	if e.Tag == "" {
		return "unrecognized invoice flavor: document has no root element"
	}

	if e.Namespace == "" {
		return fmt.Sprintf("unrecognized invoice flavor: root element %s has no namespace", e.Tag)
	}

	return fmt.Sprintf("unrecognized invoice flavor: root element %s in namespace %q", e.Tag, e.Namespace)
}

// InvalidVersionURNError is returned when the version field is missing or
// names no level of the flavor.
type InvalidVersionURNError struct {
	Flavor string
	URN    string
}

func (e *InvalidVersionURNError) Error() string {
	if e.URN == "" {
		return fmt.Sprintf("invalid %s document: version URN not found", e.Flavor)
	}

	return fmt.Sprintf("invalid %s version URN %q", e.Flavor, e.URN)
}

// ResourceKind names the kind of catalog resource a TemplateNotFoundError
// refers to.
type ResourceKind string

const (
	ResourceTemplate ResourceKind = "template"
	ResourceSchema   ResourceKind = "schema"
	ResourcePacket   ResourceKind = "packet"
)

// TemplateNotFoundError is returned when a template, schema or packet
// template is not available for a flavor or level.
type TemplateNotFoundError struct {
	Kind     ResourceKind
	Flavor   string
	Level    string
	Resource string
}

func (e *TemplateNotFoundError) Error() string {
	scope := e.Flavor
	if e.Level != "" {
		scope += "/" + e.Level
	}

	if e.Resource == "" {
		return fmt.Sprintf("no %s defined for %s", e.Kind, scope)
	}

	return fmt.Sprintf("%s %s for %s not found", e.Kind, e.Resource, scope)
}

// SchemaValidationError is returned when a document does not conform to the
// XSD of its level. Message is the validator's text, unmodified.
type SchemaValidationError struct {
	Flavor     string
	Level      string
	Message    string
	Violations []xsderrors.Validation
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s XML is not valid against the %s/%s schema: %s", e.Flavor, e.Flavor, e.Level, e.Message)
}

// Diagnostics returns one error diagnostic per violation, or a single one
// carrying Message when the validator reported no structured violations.
func (e *SchemaValidationError) Diagnostics() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	scope := e.Flavor + "/" + e.Level

	if len(e.Violations) == 0 {
		res.AddError("schema", e.Message, scope, "")
		return res
	}

	for i := range e.Violations {
		v := &e.Violations[i]

		msg := v.Message
		if len(v.Expected) > 0 {
			msg += " (expected: " + strings.Join(v.Expected, ", ") + ")"
		}

		res.AddError(v.Code, msg, scope, v.Path)
	}

	return res
}
