package sky

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cosmolab/skymodel/quantity"
)

// A Component is a sky emission component: an amplitude field at a
// reference frequency plus the spectral parameters of one scaling law.
// Components are immutable after construction, except for the CMB's
// optional dipole removal, and may be evaluated concurrently.
type Component interface {
	// Label returns the component's short name, e.g. "synch".
	Label() string

	// Amp returns the amplitude field of shape (1, n) or (3, n). The
	// returned quantity shares storage with the component and must be
	// treated as read-only.
	Amp() quantity.Quantity

	// FreqRef returns the reference frequency, shaped (1, 1) or (3, 1),
	// in the default frequency unit.
	FreqRef() quantity.Quantity

	// SpectralParameters returns the named spectral parameters.
	SpectralParameters() map[string]quantity.Quantity

	// FreqScaling computes the dimensionless factor that scales the
	// amplitude field from the reference frequency to freqs. A
	// multi-frequency input adds a trailing frequency axis.
	FreqScaling(freqs quantity.Quantity) (quantity.Quantity, error)

	// ScaleTo computes the component emission at freqs,
	// amp * FreqScaling(freqs).
	ScaleTo(freqs quantity.Quantity) (quantity.Quantity, error)
}

// componentBase carries the fields and evaluation plumbing shared by all
// components.
type componentBase struct {
	label   string
	amp     quantity.Quantity
	freqRef quantity.Quantity
	params  map[string]quantity.Quantity
}

// newBase stores validated construction inputs. The reference frequency is
// normalized to the default frequency unit so kernels can form ratios
// directly.
func newBase(
	label string,
	amp, freqRef quantity.Quantity,
	params map[string]quantity.Quantity,
) componentBase {
	fr, err := freqRef.To(DefaultFreqUnit, quantity.Spectral())
	if err != nil {
		// Unreachable: Validate has already vetted freqRef.
		panic(err)
	}
	return componentBase{label, amp, fr, params}
}

func (c *componentBase) Label() string {
	return c.label
}

func (c *componentBase) Amp() quantity.Quantity {
	return c.amp
}

func (c *componentBase) FreqRef() quantity.Quantity {
	return c.freqRef
}

func (c *componentBase) SpectralParameters() map[string]quantity.Quantity {
	out := make(map[string]quantity.Quantity, len(c.params))
	for name, p := range c.params {
		out[name] = p
	}
	return out
}

// scaleEmission multiplies the amplitude field by a computed scaling
// factor, growing a trailing frequency axis on the amplitude when the
// scaling carries one.
func (c *componentBase) scaleEmission(
	scaling quantity.Quantity, err error,
) (quantity.Quantity, error) {
	if err != nil {
		return quantity.Quantity{}, err
	}
	amp := c.amp
	for amp.Rank() < scaling.Rank() {
		amp = amp.Expand(amp.Rank())
	}
	return quantity.Mul(amp, scaling), nil
}

// toFreq reduces a caller-provided frequency quantity to the default
// frequency unit, or reports a UnitError.
func toFreq(freqs quantity.Quantity) (quantity.Quantity, error) {
	if freqs.Size() == 0 || freqs.Unit().IsZero() {
		return quantity.Quantity{}, quantityErrorf(
			"frequencies must be a quantity with a unit")
	}
	f, err := freqs.To(DefaultFreqUnit, quantity.Spectral())
	if err != nil {
		return quantity.Quantity{}, unitErrorf(
			"frequencies must have units compatible with %s, got %s",
			DefaultFreqUnit, freqs.Unit())
	}
	return f, nil
}

func componentString(c Component) string {
	names := make([]string, 0)
	for name := range c.SpectralParameters() {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s(%s)", c.Label(), strings.Join(names, ", "))
}
