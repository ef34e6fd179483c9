package sky_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cosmolab/skymodel/quantity"
	"github.com/cosmolab/skymodel/sky"
)

var _ = Describe("Validate", func() {
	var (
		amp     quantity.Quantity
		freqRef quantity.Quantity
		params  map[string]quantity.Quantity
	)

	BeforeEach(func() {
		amp = diffuseMap(1, 12, 25)
		freqRef = ghz(30)
		params = map[string]quantity.Quantity{"beta": dimless(-3.1)}
	})

	It("accepts an intensity-only diffuse component", func() {
		Expect(sky.Validate(sky.Diffuse, amp, freqRef, params)).To(Succeed())
	})

	It("accepts a polarized diffuse component", func() {
		amp = diffuseMap(3, 48, 25)
		freqRef = quantity.Vector([]float64{30, 30, 30}, quantity.GigaHertz).
			Reshape(3, 1)
		params["beta"] = quantity.Filled([]int{3, 1}, -3.1, quantity.Dimensionless)
		Expect(sky.Validate(sky.Diffuse, amp, freqRef, params)).To(Succeed())
	})

	It("accepts a wavelength-valued reference frequency", func() {
		freqRef = quantity.Scalar(10, quantity.Millimeter)
		Expect(sky.Validate(sky.Diffuse, amp, freqRef, params)).To(Succeed())
	})

	It("accepts a flux-density amplitude map", func() {
		amp = quantity.Filled([]int{1, 12}, 1, quantity.JanskyPerSr)
		Expect(sky.Validate(sky.Diffuse, amp, freqRef, params)).To(Succeed())
	})

	DescribeTable("rejected inputs",
		func(mutate func(), want any) {
			mutate()
			err := sky.Validate(sky.Diffuse, amp, freqRef, params)
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, want)).To(BeTrue(), "got %T: %v", err, err)
		},
		Entry("zero-value amplitude",
			func() { amp = quantity.Quantity{} },
			new(*sky.QuantityError)),
		Entry("amplitude without a unit",
			func() {
				amp, _ = quantity.New(make([]float64, 12), []int{1, 12}, quantity.Unit{})
			},
			new(*sky.QuantityError)),
		Entry("rank-1 amplitude",
			func() { amp = quantity.Vector(make([]float64, 12), quantity.MicroKelvinRJ) },
			new(*sky.ShapeError)),
		Entry("amplitude with an invalid pixel count",
			func() { amp = diffuseMap(1, 13, 25) },
			new(*sky.ResolutionError)),
		Entry("amplitude and reference frequency Stokes mismatch",
			func() { amp = diffuseMap(3, 12, 25) },
			new(*sky.ShapeError)),
		Entry("amplitude in a non-brightness unit",
			func() { amp = quantity.Filled([]int{1, 12}, 1, quantity.GigaHertz) },
			new(*sky.UnitError)),
		Entry("reference frequency with two rows",
			func() {
				freqRef = quantity.Vector([]float64{30, 44}, quantity.GigaHertz).
					Reshape(2, 1)
			},
			new(*sky.ShapeError)),
		Entry("reference frequency in kelvin",
			func() { freqRef = kelvin(30) },
			new(*sky.UnitError)),
		Entry("zero-value reference frequency",
			func() { freqRef = quantity.Quantity{} },
			new(*sky.QuantityError)),
		Entry("spectral parameter without a unit",
			func() { params["beta"] = quantity.Quantity{} },
			new(*sky.QuantityError)),
		Entry("rank-1 spectral parameter",
			func() { params["beta"] = quantity.Vector([]float64{-3.1}, quantity.Dimensionless) },
			new(*sky.ShapeError)),
		Entry("spectral parameter Stokes mismatch",
			func() {
				params["beta"] = quantity.Filled([]int{3, 1}, -3.1, quantity.Dimensionless)
			},
			new(*sky.ShapeError)),
		Entry("spectral parameter map with an invalid pixel count",
			func() {
				params["beta"] = quantity.Filled([]int{1, 13}, -3.1, quantity.Dimensionless)
			},
			new(*sky.ResolutionError)),
	)

	Context("point-source amplitudes", func() {
		It("does not require a HEALPix source count", func() {
			amp = quantity.Filled([]int{1, 7}, 100, quantity.MilliJansky)
			Expect(sky.Validate(sky.PointSource, amp, freqRef, params)).To(Succeed())
		})

		It("rejects brightness-temperature amplitudes", func() {
			amp = quantity.Filled([]int{1, 7}, 100, quantity.MicroKelvinRJ)
			err := sky.Validate(sky.PointSource, amp, freqRef, params)
			var unitErr *sky.UnitError
			Expect(errors.As(err, &unitErr)).To(BeTrue(), "got %T: %v", err, err)
		})
	})

	Context("line amplitudes", func() {
		It("accepts velocity-integrated brightness", func() {
			u := quantity.MicroKelvinRJ.Mul(quantity.KilometerPerSecond)
			amp = quantity.Filled([]int{1, 7}, 10, u)
			Expect(sky.Validate(sky.Line, amp, freqRef, params)).To(Succeed())
		})

		It("rejects plain brightness temperature", func() {
			amp = quantity.Filled([]int{1, 7}, 10, quantity.MicroKelvinRJ)
			err := sky.Validate(sky.Line, amp, freqRef, params)
			var unitErr *sky.UnitError
			Expect(errors.As(err, &unitErr)).To(BeTrue(), "got %T: %v", err, err)
		})
	})
})
