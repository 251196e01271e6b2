package pivot

import "fmt"

// InvalidCodeError is returned when a code is not known to the registry.
type InvalidCodeError struct {
	Field string
	Kind  Kind
	Code  string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("field %s: invalid %s code %q", e.Field, e.Kind, e.Code)
}

// KindMismatchError is returned when a value cannot be coerced to the kind of
// the field it is written to.
type KindMismatchError struct {
	Field string
	Want  Kind
	Got   Kind
	Err   error
}

func (e *KindMismatchError) Error() string {
	msg := fmt.Sprintf("field %s: cannot write %s value into %s field", e.Field, e.Got, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *KindMismatchError) Unwrap() error {
	return e.Err
}
