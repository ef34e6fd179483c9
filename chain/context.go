// Package chain adapts raw sampled-chain fields into the constructor
// arguments the sky components expect. Chains store quantities under
// upstream names, often unitless and in full map shape; the context renames
// them, attaches units, and reshapes them per component family.
package chain

import (
	"fmt"

	"github.com/cosmolab/skymodel/quantity"
	"github.com/cosmolab/skymodel/sky"
)

// A Kind tags a component family for rule lookup.
type Kind string

// The component kinds with chain-context rules.
const (
	Synchrotron Kind = "synch"
	ThermalDust Kind = "dust"
	FreeFree    Kind = "ff"
	AME         Kind = "ame"
	CMB         Kind = "cmb"
	Radio       Kind = "radio"
)

// global marks rules applying to every kind.
const global Kind = ""

// A Context is an explicit table of per-kind adaptation rules: field
// renames, unit attachments, and shape fixups, resolved by lookup.
type Context struct {
	renames map[Kind]map[string]string
	units   map[Kind]map[string]quantity.Unit
}

// DefaultContext returns the rules matching the Commander chain file
// conventions.
func DefaultContext() *Context {
	return &Context{
		renames: map[Kind]map[string]string{
			global:   {"nu_ref": "freq_ref"},
			Radio:    {"specind": "alpha"},
			AME:      {"nu_p": "freq_peak"},
			FreeFree: {"Te": "T_e"},
		},
		units: map[Kind]map[string]quantity.Unit{
			global: {"freq_ref": quantity.Hertz},
			Synchrotron: {"amp": quantity.MicroKelvinRJ},
			ThermalDust: {"amp": quantity.MicroKelvinRJ, "T": quantity.Kelvin},
			FreeFree:    {"amp": quantity.MicroKelvinRJ, "T_e": quantity.Kelvin},
			AME:         {"amp": quantity.MicroKelvinRJ, "freq_peak": quantity.GigaHertz},
			CMB:         {"amp": quantity.MicroKelvinCMB},
			Radio:       {"amp": quantity.MilliJansky},
		},
	}
}

// Apply runs the rename, unit, and reshape rules for a kind over raw chain
// fields, returning a mapping keyed by the names the component constructor
// expects. The input map is not modified.
func (c *Context) Apply(
	kind Kind, fields map[string]quantity.Quantity,
) (map[string]quantity.Quantity, error) {
	out := make(map[string]quantity.Quantity, len(fields))
	for name, q := range fields {
		out[c.rename(kind, name)] = q
	}
	c.attachUnits(kind, out)

	if err := reshapeFreqRef(out); err != nil {
		return nil, err
	}
	if kind == Radio {
		takeFirstStokesRow(out, "alpha")
	}
	collapseUniform(out)
	return out, nil
}

func (c *Context) rename(kind Kind, name string) string {
	if to, ok := c.renames[kind][name]; ok {
		return to
	}
	if to, ok := c.renames[global][name]; ok {
		return to
	}
	return name
}

// attachUnits overrides the unit tag of each field with a registered rule.
// Chains store raw numbers; attaching is a relabel, not a conversion.
func (c *Context) attachUnits(kind Kind, fields map[string]quantity.Quantity) {
	for name, q := range fields {
		if u, ok := c.units[kind][name]; ok {
			fields[name] = q.WithUnit(u)
		} else if u, ok := c.units[global][name]; ok {
			fields[name] = q.WithUnit(u)
		}
	}
}

// reshapeFreqRef converts the reference frequency to the default frequency
// unit and shapes it (1, 1) or (3, 1) to match the amplitude's leading
// dimension.
func reshapeFreqRef(fields map[string]quantity.Quantity) error {
	freqRef, ok := fields["freq_ref"]
	if !ok {
		return nil
	}
	amp, ok := fields["amp"]
	if !ok || amp.Rank() != 2 {
		return &sky.ShapeError{Msg: fmt.Sprintf(
			"chain: amplitude of shape (1, n) or (3, n) required to shape "+
				"the reference frequency, got %v", amp.Shape())}
	}
	converted, err := freqRef.To(sky.DefaultFreqUnit, quantity.Spectral())
	if err != nil {
		return &sky.UnitError{Msg: fmt.Sprintf(
			"chain: reference frequency must be frequency-like, got %s",
			freqRef.Unit())}
	}
	switch amp.Dim(0) {
	case 1:
		fields["freq_ref"] = quantity.Scalar(converted.Data()[0], converted.Unit())
	case 3:
		if converted.Size() != 3 {
			return &sky.ShapeError{Msg: fmt.Sprintf(
				"chain: cannot reshape a %d-value reference frequency to (3, 1)",
				converted.Size())}
		}
		fields["freq_ref"] = converted.Reshape(3, 1)
	default:
		return &sky.ShapeError{Msg: fmt.Sprintf(
			"chain: cannot reshape reference frequency for %d Stokes components",
			amp.Dim(0))}
	}
	return nil
}

// takeFirstStokesRow reduces a rank-2 field to its intensity row. Radio
// chains store the spectral index per Stokes component, but point sources
// are unpolarized.
func takeFirstStokesRow(fields map[string]quantity.Quantity, name string) {
	q, ok := fields[name]
	if !ok || q.Rank() != 2 || q.Dim(0) == 1 {
		return
	}
	row := q.Row(0)
	vals := make([]float64, len(row))
	copy(vals, row)
	fields[name] = quantity.Vector(vals, q.Unit()).Reshape(1, len(vals))
}

// collapseUniform reduces full-shaped spectral parameters to (S, 1) scalars
// when every spatial value is the same. Chains tend to store scalars as
// constant maps.
func collapseUniform(fields map[string]quantity.Quantity) {
	for name, q := range fields {
		if name == "amp" || name == "freq_ref" || q.Size() <= 1 {
			continue
		}
		switch q.Rank() {
		case 1:
			if v, ok := uniformValue(q.Data()); ok {
				fields[name] = quantity.Scalar(v, q.Unit())
			}
		case 2:
			vals := make([]float64, q.Dim(0))
			uniform := true
			for i := range vals {
				v, ok := uniformValue(q.Row(i))
				if !ok {
					uniform = false
					break
				}
				vals[i] = v
			}
			if uniform {
				fields[name] = quantity.Vector(vals, q.Unit()).Reshape(q.Dim(0), 1)
			}
		}
	}
}

func uniformValue(vals []float64) (float64, bool) {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return 0, false
		}
	}
	return vals[0], true
}
