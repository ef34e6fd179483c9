// Package quantity provides unit-tagged numeric arrays with NumPy-style
// broadcasting, modeled after the dimensional bookkeeping in
// gonum.org/v1/gonum/unit. It is the value type the sky-component scaling
// engine computes with: amplitude maps, reference frequencies, and spectral
// parameters are all quantities.
package quantity

import (
	"fmt"
	"log"
)

// A Quantity is a numeric array tagged with a physical unit. Data is stored
// row-major. The zero value is invalid and is rejected by the validation
// layer of package sky.
type Quantity struct {
	data  []float64
	shape []int
	unit  Unit
}

// New creates a quantity from data with the given shape. The data slice is
// used directly, not copied.
func New(data []float64, shape []int, u Unit) (Quantity, error) {
	if shapeSize(shape) != len(data) {
		return Quantity{}, fmt.Errorf(
			"quantity: shape %v does not hold %d values", shape, len(data))
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return Quantity{data, s, u}, nil
}

// Scalar creates a (1, 1)-shaped quantity holding a single value.
func Scalar(v float64, u Unit) Quantity {
	return Quantity{[]float64{v}, []int{1, 1}, u}
}

// Vector creates a rank-1 quantity.
func Vector(vals []float64, u Unit) Quantity {
	d := make([]float64, len(vals))
	copy(d, vals)
	return Quantity{d, []int{len(vals)}, u}
}

// Filled creates a quantity of the given shape with every element set to v.
func Filled(shape []int, v float64, u Unit) Quantity {
	s := make([]int, len(shape))
	copy(s, shape)
	d := make([]float64, shapeSize(s))
	for i := range d {
		d[i] = v
	}
	return Quantity{d, s, u}
}

// Unit returns the unit tag.
func (q Quantity) Unit() Unit {
	return q.unit
}

// Shape returns a copy of the array shape.
func (q Quantity) Shape() []int {
	s := make([]int, len(q.shape))
	copy(s, q.shape)
	return s
}

// Dim returns the size of axis i.
func (q Quantity) Dim(i int) int {
	return q.shape[i]
}

// Rank returns the number of axes.
func (q Quantity) Rank() int {
	return len(q.shape)
}

// Size returns the total number of elements.
func (q Quantity) Size() int {
	return len(q.data)
}

// Data returns the underlying values in row-major order. The slice is shared
// with the quantity.
func (q Quantity) Data() []float64 {
	return q.data
}

// At returns the element at the given multi-index.
func (q Quantity) At(idx ...int) float64 {
	if len(idx) != len(q.shape) {
		log.Panicf("quantity: index rank %d does not match shape %v", len(idx), q.shape)
	}
	off := 0
	for ax, i := range idx {
		if i < 0 || i >= q.shape[ax] {
			log.Panicf("quantity: index %v out of range for shape %v", idx, q.shape)
		}
		off = off*q.shape[ax] + i
	}
	return q.data[off]
}

// Row returns a view of row i of a rank-2 quantity.
func (q Quantity) Row(i int) []float64 {
	if len(q.shape) != 2 {
		log.Panicf("quantity: Row on rank-%d quantity", len(q.shape))
	}
	n := q.shape[1]
	return q.data[i*n : (i+1)*n]
}

// Copy returns a deep copy.
func (q Quantity) Copy() Quantity {
	d := make([]float64, len(q.data))
	copy(d, q.data)
	s := make([]int, len(q.shape))
	copy(s, q.shape)
	return Quantity{d, s, q.unit}
}

// Reshape returns a view with a new shape of equal size.
func (q Quantity) Reshape(shape ...int) Quantity {
	if shapeSize(shape) != len(q.data) {
		log.Panicf("quantity: cannot reshape %v to %v", q.shape, shape)
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return Quantity{q.data, s, q.unit}
}

// Expand returns a view with a size-1 axis inserted at the given position.
// axis may equal the rank, appending a trailing axis.
func (q Quantity) Expand(axis int) Quantity {
	if axis < 0 || axis > len(q.shape) {
		log.Panicf("quantity: cannot insert axis %d into shape %v", axis, q.shape)
	}
	s := make([]int, 0, len(q.shape)+1)
	s = append(s, q.shape[:axis]...)
	s = append(s, 1)
	s = append(s, q.shape[axis:]...)
	return Quantity{q.data, s, q.unit}
}

// WithUnit relabels the quantity without converting values. It is meant for
// attaching units to raw numbers and for kernels whose numeric output
// already embodies a unit change.
func (q Quantity) WithUnit(u Unit) Quantity {
	return Quantity{q.data, q.shape, u}
}

// SI returns the quantity rescaled to SI base units.
func (q Quantity) SI() Quantity {
	if q.unit.scale == 1 {
		return q.WithUnit(q.unit.si())
	}
	out := q.Copy()
	for i := range out.data {
		out.data[i] *= q.unit.scale
	}
	out.unit = q.unit.si()
	return out
}

// A ConversionError reports a failed unit conversion.
type ConversionError struct {
	From, To string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("quantity: cannot convert %q to %q", e.From, e.To)
}

// To converts the quantity to the target unit. Units with equal dimensions
// convert directly; otherwise each equivalence is tried in order.
func (q Quantity) To(target Unit, eqs ...Equivalency) (Quantity, error) {
	if q.unit.IsZero() || target.IsZero() {
		return Quantity{}, &ConversionError{q.unit.String(), target.String()}
	}
	if q.unit.Compatible(target) {
		factor := q.unit.scale / target.scale
		out := q.Copy()
		for i := range out.data {
			out.data[i] *= factor
		}
		out.unit = target
		return out, nil
	}
	for _, eq := range eqs {
		if out, ok := eq.convert(q, target); ok {
			return out, nil
		}
	}
	return Quantity{}, &ConversionError{q.unit.String(), target.String()}
}

func (q Quantity) String() string {
	return fmt.Sprintf("Quantity(shape=%v, unit=%s)", q.shape, q.unit)
}
