package invoice

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"facturx/internal/diagnostic"
	"facturx/internal/flavor"
)

// IsValid reports whether every required field of the level is present and
// the XML conforms to the schema of the level.
func (d *Document) IsValid() bool {
	return d.Check().IsValid()
}

// Check returns the problems behind IsValid: one error per missing required
// field and one per schema violation.
func (d *Document) Check() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	level := d.doc.Level()
	scope := level.Key()

	for _, name := range level.Required {
		_, ok, err := d.codec.Get(d.doc, name)

		switch {
		case err != nil:
			res.AddError("unreadable_field", err.Error(), scope, name)
		case !ok:
			res.AddError("missing_required_field", fmt.Sprintf("required field %s is missing", name), scope, name)
		}
	}

	err := d.doc.Validate()

	var se *flavor.SchemaValidationError

	switch {
	case err == nil:
	case errors.As(err, &se):
		res.Merge(*se.Diagnostics())
	default:
		res.AddError("schema_unavailable", err.Error(), scope, "")
	}

	d.cfg.Logger.Debug("Checked invoice",
		zap.String("level", scope), zap.Int("errors", len(res.Errors)))

	return res
}
