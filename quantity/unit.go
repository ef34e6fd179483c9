package quantity

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// A Unit is a named physical unit. It carries the multiplicative factor that
// converts a value expressed in the unit to SI base units, together with the
// base-unit exponents tracked with gonum's dimension algebra.
type Unit struct {
	name  string
	scale float64
	dims  unit.Dimensions
}

// Units used throughout the sky model.
var (
	Dimensionless = Unit{"", 1, nil}

	Hertz     = Unit{"Hz", 1, unit.Dimensions{unit.TimeDim: -1}}
	MegaHertz = Unit{"MHz", 1e6, unit.Dimensions{unit.TimeDim: -1}}
	GigaHertz = Unit{"GHz", 1e9, unit.Dimensions{unit.TimeDim: -1}}

	Kelvin      = Unit{"K", 1, unit.Dimensions{unit.TemperatureDim: 1}}
	MilliKelvin = Unit{"mK", 1e-3, unit.Dimensions{unit.TemperatureDim: 1}}
	MicroKelvin = Unit{"uK", 1e-6, unit.Dimensions{unit.TemperatureDim: 1}}

	// Rayleigh-Jeans brightness temperature and CMB thermodynamic
	// temperature share the kelvin dimension. Converting between the two
	// conventions is the job of the CMB scaling kernel, not the unit layer.
	KelvinRJ       = Unit{"K_RJ", 1, unit.Dimensions{unit.TemperatureDim: 1}}
	MicroKelvinRJ  = Unit{"uK_RJ", 1e-6, unit.Dimensions{unit.TemperatureDim: 1}}
	KelvinCMB      = Unit{"K_CMB", 1, unit.Dimensions{unit.TemperatureDim: 1}}
	MicroKelvinCMB = Unit{"uK_CMB", 1e-6, unit.Dimensions{unit.TemperatureDim: 1}}

	// 1 Jy = 1e-26 W m^-2 Hz^-1.
	Jansky      = Unit{"Jy", 1e-26, unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2}}
	MilliJansky = Unit{"mJy", 1e-29, unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2}}
	MegaJansky  = Unit{"MJy", 1e-20, unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2}}

	Steradian = Unit{"sr", 1, unit.Dimensions{unit.AngleDim: 2}}

	Meter      = Unit{"m", 1, unit.Dimensions{unit.LengthDim: 1}}
	Millimeter = Unit{"mm", 1e-3, unit.Dimensions{unit.LengthDim: 1}}
	Micrometer = Unit{"um", 1e-6, unit.Dimensions{unit.LengthDim: 1}}

	KilometerPerSecond = Unit{
		"km/s", 1e3, unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -1},
	}

	Radian = Unit{"rad", 1, unit.Dimensions{unit.AngleDim: 1}}
	Degree = Unit{"deg", degToRad, unit.Dimensions{unit.AngleDim: 1}}
)

const degToRad = 0.017453292519943295

// Name returns the unit symbol, e.g. "uK_RJ".
func (u Unit) Name() string {
	return u.name
}

// Scale returns the factor converting one of u to SI base units.
func (u Unit) Scale() float64 {
	return u.scale
}

// IsZero reports whether u is the zero value, i.e. no unit was attached.
func (u Unit) IsZero() bool {
	return u.scale == 0
}

// IsDimensionless reports whether u carries no base-unit exponents.
func (u Unit) IsDimensionless() bool {
	for _, p := range u.dims {
		if p != 0 {
			return false
		}
	}
	return true
}

// Compatible reports whether u and v share dimensions, meaning values are
// directly convertible between them.
func (u Unit) Compatible(v Unit) bool {
	return dimsEqual(u.dims, v.dims)
}

// Mul returns the product unit.
func (u Unit) Mul(v Unit) Unit {
	return Unit{composeName(u.name, v.name, " "), u.scale * v.scale, combineDims(u.dims, v.dims, 1)}
}

// Div returns the quotient unit.
func (u Unit) Div(v Unit) Unit {
	return Unit{composeName(u.name, v.name, "/"), u.scale / v.scale, combineDims(u.dims, v.dims, -1)}
}

func (u Unit) String() string {
	if u.name == "" {
		return "dimensionless"
	}
	return u.name
}

// si returns the canonical SI base unit with the same dimensions.
func (u Unit) si() Unit {
	return Unit{formatDims(u.dims), 1, u.dims}
}

func composeName(a, b, sep string) string {
	switch {
	case a == "" && b == "":
		return ""
	case b == "":
		return a
	case a == "":
		if sep == "/" {
			return "1/" + b
		}
		return b
	default:
		return a + sep + b
	}
}

func dimsEqual(a, b unit.Dimensions) bool {
	for d, p := range a {
		if p != 0 && b[d] != p {
			return false
		}
	}
	for d, p := range b {
		if p != 0 && a[d] != p {
			return false
		}
	}
	return true
}

func combineDims(a, b unit.Dimensions, sign int) unit.Dimensions {
	out := unit.Dimensions{}
	for d, p := range a {
		out[d] += p
	}
	for d, p := range b {
		out[d] += sign * p
	}
	for d, p := range out {
		if p == 0 {
			delete(out, d)
		}
	}
	return out
}

var dimSymbols = map[unit.Dimension]string{
	unit.LengthDim:      "m",
	unit.MassDim:        "kg",
	unit.TimeDim:        "s",
	unit.TemperatureDim: "K",
	unit.AngleDim:       "rad",
	unit.CurrentDim:     "A",
}

func formatDims(dims unit.Dimensions) string {
	parts := make([]string, 0, len(dims))
	for d, p := range dims {
		if p == 0 {
			continue
		}
		sym, ok := dimSymbols[d]
		if !ok {
			sym = fmt.Sprintf("dim(%d)", int(d))
		}
		if p == 1 {
			parts = append(parts, sym)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", sym, p))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
