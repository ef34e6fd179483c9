package sky

import "fmt"

// Construction-time validation failures come in four kinds, checked with
// errors.As. No partially valid component is ever returned.

// A QuantityError reports an input that is not a usable physical quantity,
// e.g. the zero value or a value with no unit attached.
type QuantityError struct {
	Msg string
}

func (e *QuantityError) Error() string { return e.Msg }

// A ShapeError reports a quantity whose rank or dimensions violate the
// component's broadcasting invariants.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string { return e.Msg }

// A ResolutionError reports a pixel count that is not a valid HEALPix
// resolution.
type ResolutionError struct {
	Msg string
}

func (e *ResolutionError) Error() string { return e.Msg }

// A UnitError reports a quantity that cannot be converted to the unit a
// component requires.
type UnitError struct {
	Msg string
}

func (e *UnitError) Error() string { return e.Msg }

func quantityErrorf(format string, args ...any) error {
	return &QuantityError{fmt.Sprintf(format, args...)}
}

func shapeErrorf(format string, args ...any) error {
	return &ShapeError{fmt.Sprintf(format, args...)}
}

func resolutionErrorf(format string, args ...any) error {
	return &ResolutionError{fmt.Sprintf(format, args...)}
}

func unitErrorf(format string, args ...any) error {
	return &UnitError{fmt.Sprintf(format, args...)}
}
