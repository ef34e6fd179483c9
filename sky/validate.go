package sky

import (
	"sort"

	"github.com/cosmolab/skymodel/healpix"
	"github.com/cosmolab/skymodel/quantity"
)

// A Family selects the validation rules for a component's amplitude field.
type Family int

const (
	// Diffuse components carry HEALPix maps in brightness temperature.
	Diffuse Family = iota
	// PointSource components carry per-source flux densities.
	PointSource
	// Line components carry velocity-integrated brightness. No concrete
	// line component ships yet; the family exists for emission-line work.
	Line
)

// Validate checks the amplitude, reference frequency, and spectral
// parameters of a component before construction. The shapes of these
// quantities are critical to the scaling engine, which relies on
// broadcasting them against each other.
func Validate(
	fam Family,
	amp, freqRef quantity.Quantity,
	params map[string]quantity.Quantity,
) error {
	if err := validateFreqRef(freqRef); err != nil {
		return err
	}
	if err := validateAmp(fam, amp, freqRef); err != nil {
		return err
	}
	return validateSpectralParameters(fam, amp, params)
}

func validateFreqRef(freqRef quantity.Quantity) error {
	if freqRef.Size() == 0 || freqRef.Unit().IsZero() {
		return quantityErrorf("reference frequency must be a quantity with a unit")
	}
	s := freqRef.Shape()
	if len(s) != 2 || s[1] != 1 || (s[0] != 1 && s[0] != 3) {
		return shapeErrorf(
			"shape of reference frequency must be (1, 1) or (3, 1) "+
				"depending on if the component is polarized, got %v", s)
	}
	if _, err := freqRef.To(DefaultFreqUnit, quantity.Spectral()); err != nil {
		return unitErrorf(
			"reference frequency must have units compatible with %s, got %s",
			DefaultFreqUnit, freqRef.Unit())
	}
	return nil
}

func validateAmp(fam Family, amp, freqRef quantity.Quantity) error {
	if amp.Size() == 0 || amp.Unit().IsZero() {
		return quantityErrorf("amplitude map must be a quantity with a unit")
	}
	if amp.Rank() != 2 {
		return shapeErrorf(
			"amplitude map must have shape (1, n) or (3, n), got %v", amp.Shape())
	}
	if fam == Diffuse {
		if _, err := healpix.NsideFromNpix(amp.Dim(1)); err != nil {
			return resolutionErrorf(
				"the number of pixels (%d) in the amplitude map does not "+
					"correspond to a valid HEALPix nside", amp.Dim(1))
		}
	}
	if amp.Dim(0) != freqRef.Dim(0) {
		return shapeErrorf(
			"leading dimension of the amplitude map (%d) must equal that of "+
				"the reference frequency (%d)", amp.Dim(0), freqRef.Dim(0))
	}

	// The unit check divides out the per-steradian or per-velocity part
	// for the families whose amplitudes are stored that way.
	checked := amp
	switch fam {
	case PointSource:
		checked = quantity.Div(amp, quantity.Scalar(1, quantity.Steradian))
	case Line:
		checked = quantity.Div(amp, quantity.Scalar(1, quantity.KilometerPerSecond))
	}
	bt := quantity.BrightnessTemperature(freqRef)
	if _, err := checked.To(DefaultOutputUnit, bt); err != nil {
		return unitErrorf(
			"amplitude map must have units compatible with %s, got %s",
			DefaultOutputUnit, amp.Unit())
	}
	return nil
}

func validateSpectralParameters(
	fam Family,
	amp quantity.Quantity,
	params map[string]quantity.Quantity,
) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := params[name]
		if p.Size() == 0 || p.Unit().IsZero() {
			return quantityErrorf(
				"spectral parameter %s must be a quantity with a unit", name)
		}
		if p.Rank() < 2 || p.Dim(0) != amp.Dim(0) {
			return shapeErrorf(
				"spectral parameter %s must have shape (%d, 1) or (%d, n), got %v",
				name, amp.Dim(0), amp.Dim(0), p.Shape())
		}
		if fam == Diffuse && p.Dim(1) > 1 {
			if _, err := healpix.NsideFromNpix(p.Dim(1)); err != nil {
				return resolutionErrorf(
					"the number of pixels (%d) in the spectral parameter map %s "+
						"does not correspond to a valid HEALPix nside", p.Dim(1), name)
			}
		}
	}
	return nil
}
