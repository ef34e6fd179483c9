package sky

import "github.com/cosmolab/skymodel/quantity"

// CMBTemperature is the CMB monopole temperature T_0 in kelvin (BP9).
const CMBTemperature = 2.7255

// DefaultOutputUnit is the unit every amplitude map must be convertible to.
// Emission is produced in Rayleigh-Jeans brightness temperature.
var DefaultOutputUnit = quantity.MicroKelvinRJ

// DefaultFreqUnit is the unit frequencies are reduced to before scaling.
var DefaultFreqUnit = quantity.GigaHertz

// DefaultGalacticCut is the default latitude band masked when fitting the
// CMB solar dipole.
var DefaultGalacticCut = quantity.Scalar(10, quantity.Degree)
