package sky

import (
	"log"
	"math"

	"github.com/cosmolab/skymodel/quantity"
)

// The scaling kernels are pure numeric transforms. Each one maps a set of
// frequencies and per-component spectral parameters to the dimensionless
// factor that scales the amplitude map from its reference frequency.
// Multi-frequency input grows a trailing frequency axis on the result.
//
// Kernel preconditions (frequency-compatible units, validated shapes) are
// established by the component constructors; violating them here panics.

// freqAxis prepares the operands of a kernel for broadcasting. A scalar
// frequency is shaped (1, 1); a frequency list is shaped (1, 1, F) and every
// other operand gains a trailing size-1 axis.
func freqAxis(
	freqs quantity.Quantity, qs ...quantity.Quantity,
) (quantity.Quantity, []quantity.Quantity) {
	out := make([]quantity.Quantity, len(qs))
	if freqs.Size() == 1 {
		copy(out, qs)
		return freqs.Reshape(1, 1), out
	}
	for i, q := range qs {
		out[i] = q.Expand(q.Rank())
	}
	return freqs.Reshape(1, 1, freqs.Size()), out
}

// asFreq reduces a frequency-compatible quantity (frequency or wavelength)
// to the given frequency unit.
func asFreq(q quantity.Quantity, u quantity.Unit) quantity.Quantity {
	out, err := q.To(u, quantity.Spectral())
	if err != nil {
		log.Panicf("sky: scaling kernel fed non-frequency quantity: %v", err)
	}
	return out
}

// PowerLawScaling computes (freq/freqRef)^index. The index broadcasts
// per-Stokes and per-pixel or per-source.
func PowerLawScaling(freqs, freqRef, index quantity.Quantity) quantity.Quantity {
	f, rest := freqAxis(asFreq(freqs, DefaultFreqUnit), asFreq(freqRef, DefaultFreqUnit), index)
	ratio := quantity.Div(f, rest[0])
	return quantity.Pow(ratio, rest[1])
}

// ModifiedBlackbodyScaling computes (freq/freqRef)^(beta-2) scaled by the
// Planck blackbody ratio B(freq, T)/B(freqRef, T). The ratio is evaluated
// through expm1 so that small frequencies and temperatures stay finite.
func ModifiedBlackbodyScaling(freqs, freqRef, beta, T quantity.Quantity) quantity.Quantity {
	f, rest := freqAxis(asFreq(freqs, DefaultFreqUnit), asFreq(freqRef, DefaultFreqUnit), beta, T)
	fr := rest[0]

	exponent := quantity.Sub(rest[1], quantity.Scalar(2, quantity.Dimensionless))
	powTerm := quantity.Pow(quantity.Div(f, fr), exponent)

	x := planckX(f, rest[2])
	x0 := planckX(fr, rest[2])
	bbRatio := quantity.Combine(x, x0, func(xv, x0v float64) float64 {
		r := xv / x0v
		return r * r * r * expm1Ratio(x0v, xv)
	}, quantity.Dimensionless)

	return quantity.Mul(powTerm, bbRatio)
}

// planckX computes the dimensionless h*nu/(k_B*T).
func planckX(freq, T quantity.Quantity) quantity.Quantity {
	const hOverK = quantity.PlanckConstant / quantity.BoltzmannConstant
	return quantity.Combine(freq.SI(), T.SI(), func(nu, t float64) float64 {
		return hOverK * nu / t
	}, quantity.Dimensionless)
}

// expm1Ratio computes expm1(a)/expm1(b) without overflowing for large
// arguments.
func expm1Ratio(a, b float64) float64 {
	if a > 700 || b > 700 {
		la := a
		if a <= 700 {
			la = math.Log(math.Expm1(a))
		}
		lb := b
		if b <= 700 {
			lb = math.Log(math.Expm1(b))
		}
		return math.Exp(la - lb)
	}
	return math.Expm1(a) / math.Expm1(b)
}

// FreeFreeScaling computes (freqRef/freq)^2 scaled by the Gaunt factor
// ratio g(freq, Te)/g(freqRef, Te).
func FreeFreeScaling(freqs, freqRef, Te quantity.Quantity) quantity.Quantity {
	// The closed-form Gaunt factor assumes nu in GHz and Te in kelvin
	// (the 1e-4 constant is T/10^4 K), so both are reduced to those
	// units before evaluation.
	f, rest := freqAxis(asFreq(freqs, quantity.GigaHertz), asFreq(freqRef, quantity.GigaHertz), Te)
	fr := rest[0]
	te := mustTo(rest[1], quantity.Kelvin)

	gf := quantity.Combine(f, te, gauntFactor, quantity.Dimensionless)
	gf0 := quantity.Combine(fr, te, gauntFactor, quantity.Dimensionless)

	inverseSquare := quantity.Pow(
		quantity.Div(fr, f), quantity.Scalar(2, quantity.Dimensionless))
	return quantity.Mul(inverseSquare, quantity.Div(gf, gf0))
}

// gauntFactor evaluates the free-free Gaunt factor for nu in GHz and Te in
// kelvin.
func gauntFactor(nuGHz, teK float64) float64 {
	const sqrt3OverPi = 1.7320508075688772 / math.Pi
	return math.Log(
		math.Exp(5.96-sqrt3OverPi*math.Log(nuGHz*math.Pow(teK*1e-4, -1.5))) + math.E)
}

// SpinningDustScaling interpolates a spinning-dust SED template at the
// frequencies shifted by 30 GHz / freqPeak. The model is undefined outside
// the template's frequency range; such evaluation points scale to exactly
// zero, with the broadcast shape preserved.
func SpinningDustScaling(
	freqs, freqRef, freqPeak quantity.Quantity, tmpl *SpinningDustTemplate,
) quantity.Quantity {
	f, rest := freqAxis(asFreq(freqs, DefaultFreqUnit), asFreq(freqRef, DefaultFreqUnit), freqPeak)
	peakScale := quantity.Div(
		quantity.Scalar(spinningDustPivotGHz, quantity.GigaHertz),
		asFreq(rest[1], quantity.GigaHertz))

	scaled := quantity.Mul(f, peakScale).SI()
	scaledRef := quantity.Mul(rest[0], peakScale).SI()
	return quantity.Combine(scaled, scaledRef, tmpl.ratio, quantity.Dimensionless)
}

// ThermodynamicToBrightnessScaling converts a thermodynamic (CMB)
// temperature fluctuation to Rayleigh-Jeans brightness: x^2 e^x/(e^x-1)^2
// with x = h*freq/(k_B*T_0). The result carries a leading size-1 Stokes
// axis; the caller broadcasts it across polarization.
func ThermodynamicToBrightnessScaling(freqs quantity.Quantity) quantity.Quantity {
	f, _ := freqAxis(asFreq(freqs, DefaultFreqUnit))
	return quantity.Apply(f.SI(), func(nu float64) float64 {
		const hOverK = quantity.PlanckConstant / quantity.BoltzmannConstant
		x := hOverK * nu / CMBTemperature
		// x^2 e^x/(e^x-1)^2 == (x / (2 sinh(x/2)))^2, which stays finite
		// for any positive x.
		v := x / (2 * math.Sinh(x/2))
		return v * v
	}, quantity.Dimensionless)
}

func mustTo(q quantity.Quantity, u quantity.Unit) quantity.Quantity {
	out, err := q.To(u)
	if err != nil {
		log.Panicf("sky: scaling kernel fed incompatible unit: %v", err)
	}
	return out
}
