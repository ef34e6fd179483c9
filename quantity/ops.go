package quantity

import (
	"log"
	"math"
)

// Arithmetic broadcasts operands and composes units. Dimensional misuse in
// the scaling kernels is a programming error, so these panic rather than
// return errors; the validation layer guarantees the shapes and units of
// everything a constructed component computes with.

// Mul returns the broadcast elementwise product. Units multiply.
func Mul(a, b Quantity) Quantity {
	data, shape := zip(a, b, func(x, y float64) float64 { return x * y })
	return Quantity{data, shape, a.unit.Mul(b.unit)}
}

// Div returns the broadcast elementwise quotient. Units divide.
func Div(a, b Quantity) Quantity {
	data, shape := zip(a, b, func(x, y float64) float64 { return x / y })
	return Quantity{data, shape, a.unit.Div(b.unit)}
}

// Add returns the broadcast elementwise sum in a's unit. b must be
// convertible to a's unit.
func Add(a, b Quantity) Quantity {
	bc, err := b.To(a.unit)
	if err != nil {
		log.Panicf("quantity: adding %s to %s", b.unit, a.unit)
	}
	data, shape := zip(a, bc, func(x, y float64) float64 { return x + y })
	return Quantity{data, shape, a.unit}
}

// Sub returns the broadcast elementwise difference in a's unit.
func Sub(a, b Quantity) Quantity {
	bc, err := b.To(a.unit)
	if err != nil {
		log.Panicf("quantity: subtracting %s from %s", b.unit, a.unit)
	}
	data, shape := zip(a, bc, func(x, y float64) float64 { return x - y })
	return Quantity{data, shape, a.unit}
}

// Pow returns base raised to exp, broadcast elementwise. Both operands must
// be dimensionless; scale prefixes are folded in before exponentiation.
func Pow(base, exp Quantity) Quantity {
	if !base.unit.IsDimensionless() || !exp.unit.IsDimensionless() {
		log.Panicf("quantity: pow of %s by %s", base.unit, exp.unit)
	}
	data, shape := zip(base.SI(), exp.SI(), math.Pow)
	return Quantity{data, shape, Dimensionless}
}

// Apply returns f mapped over every element, tagged with unit u.
func Apply(q Quantity, f func(float64) float64, u Unit) Quantity {
	out := q.Copy()
	for i := range out.data {
		out.data[i] = f(out.data[i])
	}
	out.unit = u
	return out
}

// Combine returns f applied over the broadcast of a and b, tagged with unit
// u. It is the escape hatch for kernels whose elementwise form does not
// decompose into unit-tracked products.
func Combine(a, b Quantity, f func(x, y float64) float64, u Unit) Quantity {
	data, shape := zip(a, b, f)
	return Quantity{data, shape, u}
}
