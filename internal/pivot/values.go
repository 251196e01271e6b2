package pivot

import (
	"fmt"
	"time"
)

// ISODate is the layout accepted for text written into date fields, in
// addition to the flavor's own layout.
const ISODate = "2006-01-02"

// Value is a pivot field value: Text, Date or Code.
type Value interface {
	Kind() Kind
	String() string

	value()
}

// Text is free text.
type Text string

func (Text) Kind() Kind { return KindText }

func (t Text) String() string { return string(t) }

func (Text) value() {}

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses s with a Go time layout.
func ParseDate(s, layout string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q with layout %q: %w", s, layout, err)
	}

	return DateOf(t), nil
}

func (Date) Kind() Kind { return KindDate }

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(ISODate)
}

func (Date) value() {}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Format formats the date with a Go time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Valid reports whether the date names an existing calendar day.
func (d Date) Valid() bool {
	return d.Month >= time.January && d.Month <= time.December && DateOf(d.Time()) == d
}

// Code is a registry code: a country or a currency.
type Code struct {
	Value string
	Type  Kind
}

// Country returns a country code value.
func Country(code string) Code {
	return Code{Value: code, Type: KindCountry}
}

// Currency returns a currency code value.
func Currency(code string) Code {
	return Code{Value: code, Type: KindCurrency}
}

func (c Code) Kind() Kind { return c.Type }

func (c Code) String() string { return c.Value }

func (Code) value() {}

// Export converts values to their string form for JSON and YAML output.
func Export(values map[string]Value) map[string]string {
	out := make(map[string]string, len(values))
	for name, v := range values {
		out[name] = v.String()
	}

	return out
}
