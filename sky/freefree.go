package sky

import "github.com/cosmolab/skymodel/quantity"

// FreeFree is a diffuse component whose spectrum follows the optically thin
// free-free Gaunt factor with electron temperature T_e (BeyondPlanck 2020,
// section 3.3.2).
type FreeFree struct {
	componentBase
}

// NewFreeFree creates a free-free component with electron temperature Te.
func NewFreeFree(amp, freqRef, Te quantity.Quantity) (*FreeFree, error) {
	params := map[string]quantity.Quantity{"T_e": Te}
	if err := Validate(Diffuse, amp, freqRef, params); err != nil {
		return nil, err
	}
	return &FreeFree{newBase("ff", amp, freqRef, params)}, nil
}

// FreqScaling computes (freqRef/freq)^2 * g(freq, Te)/g(freqRef, Te).
func (f *FreeFree) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	fq, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return FreeFreeScaling(fq, f.freqRef, f.params["T_e"]), nil
}

// ScaleTo computes the free-free emission at freqs.
func (f *FreeFree) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	return f.scaleEmission(f.FreqScaling(freqs))
}

func (f *FreeFree) String() string {
	return componentString(f)
}
