package sky

import (
	"log"

	"github.com/cosmolab/skymodel/healpix"
	"github.com/cosmolab/skymodel/quantity"
)

// A DipoleFitter fits a monopole and dipole to a full-sky intensity map,
// excluding pixels within galCut radians of the galactic plane.
type DipoleFitter interface {
	FitDipole(pixels []float64, nside int, galCut float64) (mono float64, dip [3]float64, err error)
}

// healpixDipoleFitter is the default fitter, backed by the masked
// least-squares fit in package healpix.
type healpixDipoleFitter struct{}

func (healpixDipoleFitter) FitDipole(
	pixels []float64, nside int, galCut float64,
) (float64, [3]float64, error) {
	return healpix.FitDipole(pixels, nside, galCut)
}

// CMB is the cosmic microwave background component. Its amplitude map is
// stored in thermodynamic (CMB) temperature units; scaling to a frequency
// converts to Rayleigh-Jeans brightness (BeyondPlanck 2020, section 3.2).
//
// CMB is the one component with mutable state: RemoveDipole subtracts the
// fitted solar dipole from the intensity map in place. Callers evaluating a
// shared instance from multiple goroutines must serialize RemoveDipole
// themselves; all other methods are read-only.
type CMB struct {
	componentBase
	removedDipole quantity.Quantity
	fitter        DipoleFitter
	logger        *log.Logger
}

// NewCMB creates a CMB component from a thermodynamic-temperature
// amplitude map.
func NewCMB(amp, freqRef quantity.Quantity) (*CMB, error) {
	if err := Validate(Diffuse, amp, freqRef, nil); err != nil {
		return nil, err
	}
	return &CMB{
		componentBase: newBase("cmb", amp, freqRef, map[string]quantity.Quantity{}),
		fitter:        healpixDipoleFitter{},
		logger:        log.Default(),
	}, nil
}

// SetLogger redirects the component's diagnostic notices.
func (c *CMB) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetDipoleFitter replaces the dipole fitting backend.
func (c *CMB) SetDipoleFitter(fitter DipoleFitter) {
	c.fitter = fitter
}

// FreqScaling computes the thermodynamic-to-brightness factor
// x^2 e^x/(e^x-1)^2 with a leading size-1 Stokes axis.
func (c *CMB) FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error) {
	f, err := toFreq(freqs)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return ThermodynamicToBrightnessScaling(f), nil
}

// ScaleTo computes the CMB emission at freqs in Rayleigh-Jeans brightness
// temperature.
func (c *CMB) ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error) {
	em, err := c.scaleEmission(c.FreqScaling(freqs))
	if err != nil {
		return quantity.Quantity{}, err
	}
	// The kernel's numeric factor is the unit conversion; relabel from the
	// thermodynamic convention to Rayleigh-Jeans.
	out, err := em.To(quantity.MicroKelvin)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return out.WithUnit(quantity.MicroKelvinRJ), nil
}

// Dipole returns the solar dipole map fitted from the intensity component,
// masking pixels within galCut of the galactic plane. If a dipole has
// already been removed, the cached removed dipole is returned unchanged and
// galCut is ignored, with a logged notice.
func (c *CMB) Dipole(galCut quantity.Quantity) (quantity.Quantity, error) {
	if c.removedDipole.Size() > 0 {
		c.logger.Printf(
			"sky: returning previously removed dipole signal (galactic cut ignored)")
		return c.removedDipole, nil
	}
	mono, dip, err := c.fitDipole(galCut)
	if err != nil {
		return quantity.Quantity{}, err
	}
	nside, _ := healpix.NsideFromNpix(c.amp.Dim(1))
	return quantity.Vector(healpix.DipoleMap(nside, mono, dip), c.amp.Unit()), nil
}

// RemoveDipole fits the solar dipole and subtracts it from the intensity
// component in place, caching the removed map for Dipole. A second call is
// an idempotent no-op: the already-removed dipole stays cached and a notice
// is logged.
func (c *CMB) RemoveDipole(galCut quantity.Quantity) error {
	if c.removedDipole.Size() > 0 {
		c.logger.Printf("sky: dipole already removed, ignoring repeated removal")
		return nil
	}
	mono, dip, err := c.fitDipole(galCut)
	if err != nil {
		return err
	}
	nside, _ := healpix.NsideFromNpix(c.amp.Dim(1))
	fitted := healpix.DipoleMap(nside, mono, dip)
	intensity := c.amp.Row(0)
	for p := range intensity {
		intensity[p] -= fitted[p]
	}
	c.removedDipole = quantity.Vector(fitted, c.amp.Unit())
	return nil
}

func (c *CMB) fitDipole(galCut quantity.Quantity) (float64, [3]float64, error) {
	cut, err := galCut.To(quantity.Radian)
	if err != nil {
		return 0, [3]float64{}, unitErrorf(
			"galactic cut must be an angle, got %s", galCut.Unit())
	}
	nside, err := healpix.NsideFromNpix(c.amp.Dim(1))
	if err != nil {
		// Unreachable: the amplitude map was validated at construction.
		panic(err)
	}
	return c.fitter.FitDipole(c.amp.Row(0), nside, cut.Data()[0])
}

func (c *CMB) String() string {
	return componentString(c)
}
