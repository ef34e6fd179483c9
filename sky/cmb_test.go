package sky_test

import (
	"bytes"
	"errors"
	"log"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/cosmolab/skymodel/healpix"
	"github.com/cosmolab/skymodel/quantity"
	"github.com/cosmolab/skymodel/sky"
)

var _ = Describe("CMB", func() {
	newCMB := func(m []float64) *sky.CMB {
		amp := quantity.Vector(m, quantity.MicroKelvinCMB).Reshape(1, len(m))
		comp, err := sky.NewCMB(amp, ghz(100))
		Expect(err).NotTo(HaveOccurred())
		return comp
	}

	It("scales thermodynamic amplitudes to brightness temperature", func() {
		comp := newCMB(make([]float64, 12))
		Expect(comp.Label()).To(Equal("cmb"))

		uniform := make([]float64, 12)
		for p := range uniform {
			uniform[p] = 10
		}
		out, err := newCMB(uniform).ScaleTo(ghz(100))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Unit().Name()).To(Equal("uK_RJ"))

		hOverK := quantity.PlanckConstant / quantity.BoltzmannConstant
		x := hOverK * 100e9 / sky.CMBTemperature
		want := 10 * x * x * math.Exp(x) / (math.Expm1(x) * math.Expm1(x))
		for p := 0; p < 12; p++ {
			Expect(out.At(0, p)).To(BeNumerically("~", want, 1e-12))
		}
	})

	Context("dipole handling", func() {
		var (
			injected []float64
			comp     *sky.CMB
			logBuf   *bytes.Buffer
		)

		BeforeEach(func() {
			injected = healpix.DipoleMap(2, 50, [3]float64{3, -2, 1.5})
			comp = newCMB(injected)
			logBuf = &bytes.Buffer{}
			comp.SetLogger(log.New(logBuf, "", 0))
		})

		It("fits the dipole without modifying the map", func() {
			dip, err := comp.Dipole(sky.DefaultGalacticCut)
			Expect(err).NotTo(HaveOccurred())
			Expect(dip.Size()).To(Equal(48))
			Expect(dip.Unit().Name()).To(Equal("uK_CMB"))

			for p := 0; p < 48; p++ {
				Expect(dip.Data()[p]).To(BeNumerically("~", injected[p], 1e-9))
				Expect(comp.Amp().At(0, p)).To(Equal(injected[p]))
			}
		})

		It("removes the fitted dipole in place", func() {
			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())
			for p := 0; p < 48; p++ {
				Expect(comp.Amp().At(0, p)).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("returns the cached dipole after removal, ignoring the cut", func() {
			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())

			dip, err := comp.Dipole(quantity.Scalar(80, quantity.Degree))
			Expect(err).NotTo(HaveOccurred())
			Expect(logBuf.String()).To(ContainSubstring("previously removed"))
			for p := 0; p < 48; p++ {
				Expect(dip.Data()[p]).To(BeNumerically("~", injected[p], 1e-9))
			}
		})

		It("treats repeated removal as a no-op", func() {
			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())
			after := append([]float64{}, comp.Amp().Data()...)

			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())
			Expect(logBuf.String()).To(ContainSubstring("already removed"))
			Expect(comp.Amp().Data()).To(Equal(after))
		})

		It("rejects a non-angle galactic cut", func() {
			err := comp.RemoveDipole(ghz(10))
			var unitErr *sky.UnitError
			Expect(errors.As(err, &unitErr)).To(BeTrue(), "got %T: %v", err, err)
		})
	})

	Context("with a mock fitter", func() {
		var (
			mockCtrl *gomock.Controller
			fitter   *MockDipoleFitter
			comp     *sky.CMB
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			fitter = NewMockDipoleFitter(mockCtrl)
			comp = newCMB(make([]float64, 12))
			comp.SetDipoleFitter(fitter)
			comp.SetLogger(log.New(&bytes.Buffer{}, "", 0))
		})

		It("delegates fitting and caches the result", func() {
			fitter.EXPECT().
				FitDipole(gomock.Any(), 1, gomock.Any()).
				Return(5.0, [3]float64{1, 0, 0}, nil).
				Times(1)

			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())

			fitted := healpix.DipoleMap(1, 5, [3]float64{1, 0, 0})
			for p := 0; p < 12; p++ {
				Expect(comp.Amp().At(0, p)).To(BeNumerically("~", -fitted[p], 1e-12))
			}

			// The second removal must not refit.
			Expect(comp.RemoveDipole(sky.DefaultGalacticCut)).To(Succeed())
		})

		It("propagates fitter failures", func() {
			fitter.EXPECT().
				FitDipole(gomock.Any(), 1, gomock.Any()).
				Return(0.0, [3]float64{}, errors.New("degenerate mask"))

			err := comp.RemoveDipole(sky.DefaultGalacticCut)
			Expect(err).To(MatchError(ContainSubstring("degenerate mask")))
		})
	})
})
