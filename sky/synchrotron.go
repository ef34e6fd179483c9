package sky

import "github.com/cosmolab/skymodel/quantity"

// Synchrotron is a diffuse component following a power law in
// Rayleigh-Jeans temperature with spectral index beta (BeyondPlanck 2020,
// section 3.3.1).
type Synchrotron struct {
	componentBase
}

// NewSynchrotron creates a synchrotron component from an amplitude map, a
// reference frequency, and the power-law index beta.
func NewSynchrotron(amp, freqRef, beta quantity.Quantity) (*Synchrotron, error) {
	params := map[string]quantity.Quantity{"beta": beta}
	if err := Validate(Diffuse, amp, freqRef, params); err != nil {
		return nil, err
	}
	return &Synchrotron{newBase("synch", amp, freqRef, params)}, nil
}

// FreqScaling computes (freq/freqRef)^beta.
func (s *Synchrotron) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	f, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return PowerLawScaling(f, s.freqRef, s.params["beta"]), nil
}

// ScaleTo computes the synchrotron emission at freqs.
func (s *Synchrotron) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	return s.scaleEmission(s.FreqScaling(freqs))
}

func (s *Synchrotron) String() string {
	return componentString(s)
}
