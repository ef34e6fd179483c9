package sky

import "github.com/cosmolab/skymodel/quantity"

// ThermalDust is a diffuse component following a modified blackbody with
// power-law index beta and dust temperature T (BeyondPlanck 2020, section
// 3.3.3).
type ThermalDust struct {
	componentBase
}

// NewThermalDust creates a thermal dust component. beta and T are
// independent per-pixel spectral parameters.
func NewThermalDust(amp, freqRef, beta, T quantity.Quantity) (*ThermalDust, error) {
	params := map[string]quantity.Quantity{"beta": beta, "T": T}
	if err := Validate(Diffuse, amp, freqRef, params); err != nil {
		return nil, err
	}
	return &ThermalDust{newBase("dust", amp, freqRef, params)}, nil
}

// FreqScaling computes (freq/freqRef)^(beta-2) * B(freq, T)/B(freqRef, T).
func (d *ThermalDust) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	f, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return ModifiedBlackbodyScaling(f, d.freqRef, d.params["beta"], d.params["T"]), nil
}

// ScaleTo computes the thermal dust emission at freqs.
func (d *ThermalDust) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	return d.scaleEmission(d.FreqScaling(freqs))
}

func (d *ThermalDust) String() string {
	return componentString(d)
}
