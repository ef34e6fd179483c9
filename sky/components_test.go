package sky_test

import (
	"errors"
	"fmt"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cosmolab/skymodel/catalog"
	"github.com/cosmolab/skymodel/quantity"
	"github.com/cosmolab/skymodel/sky"
)

var _ = Describe("Synchrotron", func() {
	var (
		ampData []float64
		comp    *sky.Synchrotron
	)

	BeforeEach(func() {
		ampData = make([]float64, 12)
		for i := range ampData {
			ampData[i] = float64(i + 1)
		}
		amp, err := quantity.New(ampData, []int{1, 12}, quantity.MicroKelvinRJ)
		Expect(err).NotTo(HaveOccurred())
		comp, err = sky.NewSynchrotron(amp, ghz(30), dimless(-3))
		Expect(err).NotTo(HaveOccurred())
	})

	It("scales the amplitude map by the power law", func() {
		out, err := comp.ScaleTo(ghz(70))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Shape()).To(Equal([]int{1, 12}))
		Expect(out.Unit().Name()).To(Equal("uK_RJ"))

		factor := math.Pow(70.0/30.0, -3)
		for p, want := range ampData {
			Expect(out.At(0, p)).To(BeNumerically("~", want*factor, 1e-12))
		}
	})

	It("returns the amplitude map at the reference frequency", func() {
		out, err := comp.ScaleTo(ghz(30))
		Expect(err).NotTo(HaveOccurred())
		for p, want := range ampData {
			Expect(out.At(0, p)).To(Equal(want))
		}
	})

	It("adds a trailing axis for frequency lists", func() {
		freqs := quantity.Vector([]float64{30, 70}, quantity.GigaHertz)
		out, err := comp.ScaleTo(freqs)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Shape()).To(Equal([]int{1, 12, 2}))

		factor := math.Pow(70.0/30.0, -3)
		for p, want := range ampData {
			Expect(out.At(0, p, 0)).To(Equal(want))
			Expect(out.At(0, p, 1)).To(BeNumerically("~", want*factor, 1e-12))
		}
	})

	It("rejects non-frequency evaluation points", func() {
		_, err := comp.ScaleTo(kelvin(30))
		var unitErr *sky.UnitError
		Expect(errors.As(err, &unitErr)).To(BeTrue(), "got %T: %v", err, err)
	})

	It("rejects unit-less evaluation points", func() {
		_, err := comp.ScaleTo(quantity.Quantity{})
		var qErr *sky.QuantityError
		Expect(errors.As(err, &qErr)).To(BeTrue(), "got %T: %v", err, err)
	})

	It("propagates validation failures from construction", func() {
		_, err := sky.NewSynchrotron(diffuseMap(1, 13, 1), ghz(30), dimless(-3))
		var resErr *sky.ResolutionError
		Expect(errors.As(err, &resErr)).To(BeTrue(), "got %T: %v", err, err)
	})

	It("describes itself by label and parameters", func() {
		Expect(comp.Label()).To(Equal("synch"))
		Expect(fmt.Sprint(comp)).To(Equal("synch(beta)"))
	})
})

var _ = Describe("ThermalDust", func() {
	It("is the identity at the reference frequency", func() {
		comp, err := sky.NewThermalDust(
			diffuseMap(1, 12, 40), ghz(545), dimless(1.6), kelvin(20))
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.Label()).To(Equal("dust"))

		out, err := comp.ScaleTo(ghz(545))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(Equal(40.0))
		}
	})

	It("exposes its spectral parameters", func() {
		comp, err := sky.NewThermalDust(
			diffuseMap(1, 12, 40), ghz(545), dimless(1.6), kelvin(20))
		Expect(err).NotTo(HaveOccurred())

		params := comp.SpectralParameters()
		Expect(params).To(HaveKey("beta"))
		Expect(params).To(HaveKey("T"))
		Expect(params["T"].Unit().Name()).To(Equal("K"))
	})
})

var _ = Describe("FreeFree", func() {
	It("scales by the Gaunt-corrected inverse square law", func() {
		comp, err := sky.NewFreeFree(diffuseMap(1, 12, 10), ghz(40), kelvin(7000))
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.Label()).To(Equal("ff"))

		out, err := comp.ScaleTo(ghz(40))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(Equal(10.0))
		}

		out, err = comp.ScaleTo(ghz(100))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(BeNumerically(">", 0))
			Expect(v).To(BeNumerically("<", 10))
		}
	})
})

var _ = Describe("AME", func() {
	It("evaluates the embedded spinning dust template", func() {
		comp, err := sky.NewAME(diffuseMap(1, 12, 5), ghz(22), ghz(30))
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.Label()).To(Equal("ame"))

		out, err := comp.ScaleTo(ghz(40))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(BeNumerically(">", 0))
		}
	})

	It("scales to zero outside the template range", func() {
		comp, err := sky.NewAME(diffuseMap(1, 12, 5), ghz(22), ghz(30))
		Expect(err).NotTo(HaveOccurred())

		out, err := comp.ScaleTo(ghz(3000))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Shape()).To(Equal([]int{1, 12}))
		for _, v := range out.Data() {
			Expect(v).To(BeZero())
		}
	})

	It("interpolates a caller-supplied template", func() {
		tmpl, err := sky.NewSpinningDustTemplate(
			quantity.Vector([]float64{10, 20}, quantity.GigaHertz),
			quantity.Vector([]float64{1, 2}, quantity.Kelvin))
		Expect(err).NotTo(HaveOccurred())

		comp, err := sky.NewAMEWithTemplate(
			diffuseMap(1, 12, 2), ghz(10), ghz(30), tmpl)
		Expect(err).NotTo(HaveOccurred())

		out, err := comp.ScaleTo(ghz(15))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(BeNumerically("~", 3, 1e-12))
		}
	})

	It("rejects a non-frequency peak", func() {
		_, err := sky.NewAME(diffuseMap(1, 12, 5), ghz(22), kelvin(30))
		var unitErr *sky.UnitError
		Expect(errors.As(err, &unitErr)).To(BeTrue(), "got %T: %v", err, err)
	})

	It("rejects a missing template", func() {
		_, err := sky.NewAMEWithTemplate(diffuseMap(1, 12, 5), ghz(22), ghz(30), nil)
		var qErr *sky.QuantityError
		Expect(errors.As(err, &qErr)).To(BeTrue(), "got %T: %v", err, err)
	})
})

var _ = Describe("Radio", func() {
	var cat *catalog.Catalog

	BeforeEach(func() {
		var err error
		cat, err = catalog.Load(strings.NewReader(
			"10 0\n20 5\n30 -5\n40 45\n50 -45\n"))
		Expect(err).NotTo(HaveOccurred())
	})

	newRadio := func(nsrc int) (*sky.Radio, error) {
		amp := quantity.Filled([]int{1, nsrc}, 100, quantity.MilliJansky)
		return sky.NewRadio(amp, ghz(30), dimless(-0.5), cat)
	}

	It("scales flux densities by (freq/freqRef)^(alpha-2)", func() {
		comp, err := newRadio(5)
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.Label()).To(Equal("radio"))

		out, err := comp.ScaleTo(ghz(30))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range out.Data() {
			Expect(v).To(Equal(100.0))
		}

		out, err = comp.ScaleTo(ghz(60))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Unit().Name()).To(Equal("mJy"))
		factor := math.Pow(2, -0.5-2)
		for _, v := range out.Data() {
			Expect(v).To(BeNumerically("~", 100*factor, 1e-12))
		}
	})

	It("keeps the source catalog", func() {
		comp, err := newRadio(5)
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.Catalog().Len()).To(Equal(5))
		lon, lat := comp.Catalog().Coords(1)
		Expect(lon).To(Equal(20.0))
		Expect(lat).To(Equal(5.0))
	})

	It("rejects a catalog of the wrong length", func() {
		_, err := newRadio(4)
		var shapeErr *sky.ShapeError
		Expect(errors.As(err, &shapeErr)).To(BeTrue(), "got %T: %v", err, err)
	})

	It("rejects a missing catalog", func() {
		amp := quantity.Filled([]int{1, 5}, 100, quantity.MilliJansky)
		_, err := sky.NewRadio(amp, ghz(30), dimless(-0.5), nil)
		var qErr *sky.QuantityError
		Expect(errors.As(err, &qErr)).To(BeTrue(), "got %T: %v", err, err)
	})
})
