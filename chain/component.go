package chain

import (
	"fmt"

	"github.com/cosmolab/skymodel/catalog"
	"github.com/cosmolab/skymodel/quantity"
	"github.com/cosmolab/skymodel/sky"
)

// NewComponent adapts raw chain fields with the context's rules and
// constructs the component of the given kind. Radio requires a source
// catalog; it is ignored for every other kind.
func (c *Context) NewComponent(
	kind Kind,
	fields map[string]quantity.Quantity,
	cat *catalog.Catalog,
) (sky.Component, error) {
	adapted, err := c.Apply(kind, fields)
	if err != nil {
		return nil, err
	}

	switch kind {
	case Synchrotron:
		args, err := take(adapted, "amp", "freq_ref", "beta")
		if err != nil {
			return nil, err
		}
		return sky.NewSynchrotron(args[0], args[1], args[2])
	case ThermalDust:
		args, err := take(adapted, "amp", "freq_ref", "beta", "T")
		if err != nil {
			return nil, err
		}
		return sky.NewThermalDust(args[0], args[1], args[2], args[3])
	case FreeFree:
		args, err := take(adapted, "amp", "freq_ref", "T_e")
		if err != nil {
			return nil, err
		}
		return sky.NewFreeFree(args[0], args[1], args[2])
	case AME:
		args, err := take(adapted, "amp", "freq_ref", "freq_peak")
		if err != nil {
			return nil, err
		}
		return sky.NewAME(args[0], args[1], args[2])
	case CMB:
		args, err := take(adapted, "amp", "freq_ref")
		if err != nil {
			return nil, err
		}
		return sky.NewCMB(args[0], args[1])
	case Radio:
		args, err := take(adapted, "amp", "freq_ref", "alpha")
		if err != nil {
			return nil, err
		}
		return sky.NewRadio(args[0], args[1], args[2], cat)
	default:
		return nil, fmt.Errorf("chain: unknown component kind %q", kind)
	}
}

func take(
	fields map[string]quantity.Quantity, names ...string,
) ([]quantity.Quantity, error) {
	out := make([]quantity.Quantity, len(names))
	for i, name := range names {
		q, ok := fields[name]
		if !ok {
			return nil, &sky.QuantityError{Msg: fmt.Sprintf(
				"chain: required field %q is missing", name)}
		}
		out[i] = q
	}
	return out, nil
}
