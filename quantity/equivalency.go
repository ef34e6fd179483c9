package quantity

import "gonum.org/v1/gonum/unit"

// An Equivalency bridges units of different dimensions that are
// interchangeable in a physical context, in the manner of astropy's unit
// equivalencies.
type Equivalency interface {
	convert(q Quantity, target Unit) (Quantity, bool)
}

var (
	freqDims   = unit.Dimensions{unit.TimeDim: -1}
	lengthDims = unit.Dimensions{unit.LengthDim: 1}
	tempDims   = unit.Dimensions{unit.TemperatureDim: 1}
	fluxSrDims = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.AngleDim: -2}
)

type spectral struct{}

// Spectral returns the equivalence between frequency and wavelength,
// nu = c / lambda.
func Spectral() Equivalency {
	return spectral{}
}

func (spectral) convert(q Quantity, target Unit) (Quantity, bool) {
	from := q.unit.dims
	to := target.dims
	if dimsEqual(from, freqDims) && dimsEqual(to, lengthDims) ||
		dimsEqual(from, lengthDims) && dimsEqual(to, freqDims) {
		// c/x converts Hz to m and m to Hz alike.
		flipped := Apply(q.SI(), func(v float64) float64 {
			return SpeedOfLight / v
		}, Unit{"", 1, to})
		out, err := flipped.To(target)
		return out, err == nil
	}
	return Quantity{}, false
}

type brightnessTemperature struct {
	freqSI Quantity
}

// BrightnessTemperature returns the frequency-dependent Rayleigh-Jeans
// equivalence between flux density per steradian and brightness
// temperature, T = S c^2 / (2 k nu^2). The conversion broadcasts freq
// against the converted quantity.
func BrightnessTemperature(freq Quantity) Equivalency {
	fsi, err := freq.To(Hertz, Spectral())
	if err != nil {
		// A non-frequency argument is a programming error; validation
		// checks reference frequencies before any conversion runs.
		panic(err)
	}
	return brightnessTemperature{fsi.SI()}
}

func (bt brightnessTemperature) convert(q Quantity, target Unit) (Quantity, bool) {
	const c2over2k = SpeedOfLight * SpeedOfLight / (2 * BoltzmannConstant)
	from := q.unit.dims
	to := target.dims
	switch {
	case dimsEqual(from, fluxSrDims) && dimsEqual(to, tempDims):
		kelvin := Combine(q.SI(), bt.freqSI, func(s, nu float64) float64 {
			return s * c2over2k / (nu * nu)
		}, Kelvin)
		out, err := kelvin.To(target)
		return out, err == nil
	case dimsEqual(from, tempDims) && dimsEqual(to, fluxSrDims):
		flux := Combine(q.SI(), bt.freqSI, func(t, nu float64) float64 {
			return t * (nu * nu) / c2over2k
		}, JanskyPerSr.si())
		out, err := flux.To(target)
		return out, err == nil
	}
	return Quantity{}, false
}

// JanskyPerSr is the flux-density-per-solid-angle unit the spinning dust
// template and point-source amplitudes are expressed in.
var JanskyPerSr = Jansky.Div(Steradian)
