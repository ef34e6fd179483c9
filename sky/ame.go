package sky

import "github.com/cosmolab/skymodel/quantity"

// AME is the anomalous microwave emission component: spinning dust whose
// SED follows a tabulated template shifted by the peak frequency parameter
// (BeyondPlanck 2020, section 3.3.4).
type AME struct {
	componentBase
	template *SpinningDustTemplate
}

// NewAME creates a spinning dust component with peak frequency freqPeak,
// using the embedded spdust2 cold-neutral-medium template. The template is
// loaded per instance and owned exclusively by it.
func NewAME(amp, freqRef, freqPeak quantity.Quantity) (*AME, error) {
	return NewAMEWithTemplate(amp, freqRef, freqPeak, loadSpinningDustTemplate())
}

// NewAMEWithTemplate creates a spinning dust component with a caller-built
// SED template.
func NewAMEWithTemplate(
	amp, freqRef, freqPeak quantity.Quantity, tmpl *SpinningDustTemplate,
) (*AME, error) {
	params := map[string]quantity.Quantity{"freq_peak": freqPeak}
	if err := Validate(Diffuse, amp, freqRef, params); err != nil {
		return nil, err
	}
	if _, err := freqPeak.To(DefaultFreqUnit, quantity.Spectral()); err != nil {
		return nil, unitErrorf(
			"peak frequency must have units compatible with %s, got %s",
			DefaultFreqUnit, freqPeak.Unit())
	}
	if tmpl == nil {
		return nil, quantityErrorf("spinning dust template must be provided")
	}
	return &AME{newBase("ame", amp, freqRef, params), tmpl}, nil
}

// FreqScaling interpolates the template at freq * 30GHz/freqPeak relative
// to the reference frequency. Evaluation points whose shifted frequency
// falls outside the template range scale to exactly zero.
func (a *AME) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	f, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return SpinningDustScaling(f, a.freqRef, a.params["freq_peak"], a.template), nil
}

// ScaleTo computes the spinning dust emission at freqs.
func (a *AME) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	return a.scaleEmission(a.FreqScaling(freqs))
}

func (a *AME) String() string {
	return componentString(a)
}
