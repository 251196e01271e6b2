package pivot

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"facturx/internal/catalog"
	"facturx/internal/flavor"
	"facturx/internal/registry"
)

// Codec reads and writes pivot fields of resolved documents.
type Codec struct {
	cat *catalog.Catalog
	reg registry.Registry
	log *zap.Logger
}

// NewCodec creates a codec. A nil logger disables logging.
func NewCodec(cat *catalog.Catalog, reg registry.Registry, log *zap.Logger) *Codec {
	if log == nil {
		log = zap.NewNop()
	}

	return &Codec{cat: cat, reg: reg, log: log}
}

// Get reads a field. A field whose element is missing or blank is absent:
// Get returns ok false and no error.
func (c *Codec) Get(doc *flavor.Resolved, field string) (Value, bool, error) {
	fd, err := c.cat.Field(field)
	if err != nil {
		return nil, false, err
	}

	els, err := doc.Find(field)
	if err != nil {
		return nil, false, err
	}

	if len(els) == 0 {
		return nil, false, nil
	}

	raw := els[0].Text()

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false, nil
	}

	switch kind := KindOf(fd.Kind); kind {
	case KindDate:
		d, err := ParseDate(text, doc.Flavor().Date.Layout)
		if err != nil {
			return nil, false, &KindMismatchError{Field: field, Want: KindDate, Got: KindText, Err: err}
		}

		return d, true, nil
	case KindCountry, KindCurrency:
		return Code{Value: text, Type: kind}, true, nil
	default:
		return Text(raw), true, nil
	}
}

// Set writes a field, creating the elements of its path when missing. The
// value is coerced to the field kind and codes are checked against the
// registry before the tree is modified.
//
// Get does not always return what Set was given. Codes are stored in their
// registry form, so Country("fr") reads back as Country("FR"). Text made only
// of whitespace is written but reads back absent.
func (c *Codec) Set(doc *flavor.Resolved, field string, v Value) error {
	fd, err := c.cat.Field(field)
	if err != nil {
		return err
	}

	if _, err := c.cat.ParsedPath(field, doc.Flavor().ID); err != nil {
		return err
	}

	kind := KindOf(fd.Kind)

	text, err := c.coerce(doc.Flavor(), field, kind, v)
	if err != nil {
		return err
	}

	els, err := doc.Ensure(field)
	if err != nil {
		return err
	}

	for _, el := range els {
		el.SetText(text)

		if kind == KindDate {
			setQualifier(el, doc.Flavor().Date)
		}
	}

	doc.Invalidate(field)

	c.log.Debug("Set field",
		zap.String("field", field), zap.Stringer("kind", kind), zap.Int("elements", len(els)))

	return nil
}

// ToDict reads every field the flavor of doc defines. Fields that cannot be
// read are skipped.
func (c *Codec) ToDict(doc *flavor.Resolved) map[string]Value {
	out := map[string]Value{}

	for _, name := range c.cat.FieldNamesFor(doc.Flavor().ID) {
		v, ok, err := c.Get(doc, name)
		if err != nil {
			c.log.Debug("Skipped field", zap.String("field", name), zap.Error(err))
			continue
		}

		if ok {
			out[name] = v
		}
	}

	return out
}

// coerce returns the text to write for v into a field of the given kind.
func (c *Codec) coerce(f *catalog.Flavor, field string, kind Kind, v Value) (string, error) {
	if v == nil {
		return "", &KindMismatchError{Field: field, Want: kind}
	}

	switch kind {
	case KindText:
		if t, ok := v.(Text); ok {
			return string(t), nil
		}
	case KindDate:
		switch d := v.(type) {
		case Date:
			if !d.Valid() {
				return "", &KindMismatchError{Field: field, Want: KindDate, Got: KindDate, Err: fmt.Errorf("no such day %d-%02d-%02d", d.Year, d.Month, d.Day)}
			}

			return d.Format(f.Date.Layout), nil
		case Text:
			parsed, err := parseDateText(strings.TrimSpace(string(d)), f.Date.Layout)
			if err != nil {
				return "", &KindMismatchError{Field: field, Want: KindDate, Got: KindText, Err: err}
			}

			return parsed.Format(f.Date.Layout), nil
		}
	case KindCountry, KindCurrency:
		var code string

		switch cv := v.(type) {
		case Code:
			if cv.Type != kind {
				return "", &KindMismatchError{Field: field, Want: kind, Got: cv.Type}
			}

			code = cv.Value
		case Text:
			code = string(cv)
		default:
			return "", &KindMismatchError{Field: field, Want: kind, Got: v.Kind()}
		}

		canonical, ok := c.lookup(kind, code)
		if !ok {
			return "", &InvalidCodeError{Field: field, Kind: kind, Code: code}
		}

		return canonical, nil
	}

	return "", &KindMismatchError{Field: field, Want: kind, Got: v.Kind()}
}

func (c *Codec) lookup(kind Kind, code string) (string, bool) {
	switch kind {
	case KindCountry:
		return c.reg.Country(code)
	case KindCurrency:
		return c.reg.Currency(code)
	default:
		return "", false
	}
}

// parseDateText accepts ISO dates and dates in the flavor layout.
func parseDateText(s, layout string) (Date, error) {
	d, err := ParseDate(s, ISODate)
	if err == nil {
		return d, nil
	}

	if layout == ISODate {
		return Date{}, err
	}

	return ParseDate(s, layout)
}

// setQualifier adds the date format qualifier when the element has none.
func setQualifier(el *etree.Element, df catalog.DateFormat) {
	if df.Qualifier == "" || el.SelectAttr(df.QualifierAttr) != nil {
		return
	}

	el.CreateAttr(df.QualifierAttr, df.Qualifier)
}
