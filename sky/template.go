package sky

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/cosmolab/skymodel/quantity"
)

// spinningDustPivotGHz is the pivot frequency of the spdust2 template;
// peak-frequency shifts are expressed relative to it.
const spinningDustPivotGHz = 30.0

// spdust2 SED template for the cold neutral medium: frequency in GHz,
// emissivity in Jy/sr.
//
//go:embed data/spdust2_cnm.dat
var spdust2Data []byte

// A SpinningDustTemplate is a tabulated spinning-dust SED, reduced to SI
// (frequency in Hz, amplitude in brightness-temperature kelvin) and
// interpolated piecewise-linearly. Each AME instance owns its template
// exclusively.
type SpinningDustTemplate struct {
	minHz, maxHz float64
	pl           interp.PiecewiseLinear
}

// NewSpinningDustTemplate builds a template from tabulated frequencies and
// amplitudes. Frequencies must be strictly increasing. Amplitudes given as
// flux density per steradian are converted to brightness temperature with
// the frequency-dependent Rayleigh-Jeans equivalence.
func NewSpinningDustTemplate(freqs, amps quantity.Quantity) (*SpinningDustTemplate, error) {
	if freqs.Size() != amps.Size() || freqs.Size() < 2 {
		return nil, fmt.Errorf(
			"sky: template needs matching frequency and amplitude columns, got %d and %d",
			freqs.Size(), amps.Size())
	}
	fsi, err := freqs.To(quantity.Hertz, quantity.Spectral())
	if err != nil {
		return nil, fmt.Errorf("sky: template frequencies: %w", err)
	}
	asi, err := amps.To(quantity.Kelvin, quantity.BrightnessTemperature(freqs))
	if err != nil {
		return nil, fmt.Errorf("sky: template amplitudes: %w", err)
	}

	t := &SpinningDustTemplate{
		minHz: floats.Min(fsi.Data()),
		maxHz: floats.Max(fsi.Data()),
	}
	if err := t.pl.Fit(fsi.Data(), asi.Data()); err != nil {
		return nil, fmt.Errorf("sky: template interpolation: %w", err)
	}
	return t, nil
}

// ratio returns the interpolated template amplitude at nu divided by the
// one at nu0, both in Hz, or 0 when either falls outside the tabulated
// range.
func (t *SpinningDustTemplate) ratio(nu, nu0 float64) float64 {
	if nu < t.minHz || nu > t.maxHz || nu0 < t.minHz || nu0 > t.maxHz {
		return 0
	}
	return t.pl.Predict(nu) / t.pl.Predict(nu0)
}

// loadSpinningDustTemplate parses the embedded spdust2 table. The asset is
// part of the build, so a parse failure is fatal.
func loadSpinningDustTemplate() *SpinningDustTemplate {
	var freqs, amps []float64
	sc := bufio.NewScanner(bytes.NewReader(spdust2Data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Panicf("sky: malformed spdust2 line %q", line)
		}
		f, err1 := strconv.ParseFloat(fields[0], 64)
		a, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			log.Panicf("sky: malformed spdust2 line %q", line)
		}
		freqs = append(freqs, f)
		amps = append(amps, a)
	}

	t, err := NewSpinningDustTemplate(
		quantity.Vector(freqs, quantity.GigaHertz),
		quantity.Vector(amps, quantity.JanskyPerSr))
	if err != nil {
		log.Panicf("sky: embedded spdust2 template: %v", err)
	}
	return t
}
