package sky

import (
	"github.com/cosmolab/skymodel/catalog"
	"github.com/cosmolab/skymodel/quantity"
)

// Radio is the point-source component: per-source flux densities following
// a power law with spectral index alpha (BeyondPlanck 2020, section 3.4.1).
// The amplitude's second axis counts sources, not pixels.
type Radio struct {
	componentBase
	catalog *catalog.Catalog
}

// NewRadio creates a radio point-source component. The catalog maps each
// source to an angular coordinate; its length must equal the amplitude's
// source count. The catalog is read-only after construction.
func NewRadio(amp, freqRef, alpha quantity.Quantity, cat *catalog.Catalog) (*Radio, error) {
	params := map[string]quantity.Quantity{"alpha": alpha}
	if err := Validate(PointSource, amp, freqRef, params); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, quantityErrorf("a point source catalog must be provided")
	}
	if cat.Len() != amp.Dim(1) {
		return nil, shapeErrorf(
			"number of point sources (%d) does not match the number of "+
				"cataloged coordinates (%d)", amp.Dim(1), cat.Len())
	}
	return &Radio{newBase("radio", amp, freqRef, params), cat}, nil
}

// Catalog returns the source coordinate catalog.
func (r *Radio) Catalog() *catalog.Catalog {
	return r.catalog
}

// FreqScaling computes (freq/freqRef)^(alpha-2).
func (r *Radio) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	f, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	index := quantity.Sub(r.params["alpha"], quantity.Scalar(2, quantity.Dimensionless))
	return PowerLawScaling(f, r.freqRef, index), nil
}

// ScaleTo computes the per-source emission at freqs, in the amplitude's
// flux density unit.
func (r *Radio) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	return r.scaleEmission(r.FreqScaling(freqs))
}

func (r *Radio) String() string {
	return componentString(r)
}
