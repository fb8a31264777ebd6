package rabi_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rabisim/internal/analysis"
	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/integrators"
	"github.com/san-kum/rabisim/internal/quantum"
	"github.com/san-kum/rabisim/internal/rabi"
)

var _ = Describe("DrivenHamiltonian", func() {
	var h rabi.DrivenHamiltonian

	BeforeEach(func() {
		h = rabi.NewHamiltonian(rabi.DefaultParams())
	})

	It("builds the static and coupling terms from the parameters", func() {
		p := rabi.Params{Delta: 0.4, Eps0: 2, A: 0.3, W: 1}
		h := rabi.NewHamiltonian(p)

		expectedH0 := quantum.FromRows([][]complex128{
			{-1, -0.2},
			{-0.2, 1},
		})
		Expect(quantum.EqualApprox(h.H0, expectedH0, 1e-12)).To(BeTrue())
		Expect(quantum.EqualApprox(h.H1, quantum.SigmaX().ScaleReal(-0.3), 1e-12)).To(BeTrue())
		Expect(h.W).To(Equal(1.0))
	})

	It("equals H0 when the drive phase is zero", func() {
		Expect(quantum.EqualApprox(h.At(0), h.H0, 1e-15)).To(BeTrue())
	})

	It("adds the full coupling at a quarter period", func() {
		quarter := h.Period() / 4
		Expect(quantum.EqualApprox(h.At(quarter), h.H0.Add(h.H1), 1e-12)).To(BeTrue())
	})

	It("is periodic in the drive phase", func() {
		period := 2 * math.Pi / h.W
		for _, t := range []float64{0, 0.13, 1.7, 12.345, 49.9} {
			Expect(quantum.EqualApprox(h.At(t+period), h.At(t), 1e-9)).To(BeTrue(), "t=%f", t)
		}
	})

	It("is pure", func() {
		first := h.At(3.21)
		_ = h.At(7.5)
		Expect(quantum.EqualApprox(h.At(3.21), first, 1e-15)).To(BeTrue())
	})

	It("has an infinite period when undriven", func() {
		Expect(math.IsInf(rabi.DrivenHamiltonian{W: 0}.Period(), 1)).To(BeTrue())
	})
})

var _ = Describe("CollapseOperators", func() {
	DescribeTable("includes a channel only when its rate is positive",
		func(gamma1, gamma2, nth float64, expected int) {
			p := rabi.Params{Gamma1: gamma1, Gamma2: gamma2, NTh: nth}
			Expect(rabi.CollapseOperators(p)).To(HaveLen(expected))
		},
		Entry("no dissipation", 0.0, 0.0, 0.0, 0),
		Entry("relaxation only, zero temperature", 0.025, 0.0, 0.0, 1),
		Entry("relaxation and dephasing", 0.025, 0.01, 0.0, 2),
		Entry("dephasing only", 0.0, 0.01, 0.0, 1),
		Entry("thermal bath", 0.025, 0.0, 0.5, 2),
		Entry("all channels", 0.025, 0.01, 0.5, 3),
		Entry("thermal occupation without coupling", 0.0, 0.0, 0.5, 0),
	)

	It("scales the lowering operator by the square root of the relaxation rate", func() {
		ops := rabi.CollapseOperators(rabi.Params{Gamma1: 0.04})
		Expect(ops).To(HaveLen(1))
		Expect(quantum.EqualApprox(ops[0], quantum.Destroy(2).ScaleReal(0.2), 1e-12)).To(BeTrue())
	})

	It("does not build a dephasing operator when gamma2 is zero", func() {
		ops := rabi.CollapseOperators(rabi.DefaultParams())
		Expect(ops).To(HaveLen(1))
		Expect(ops[0].At(0, 0)).To(BeZero())
		Expect(ops[0].At(1, 1)).To(BeZero())
	})

	It("keeps the zero temperature channel in the channel list", func() {
		channels := rabi.Channels(rabi.DefaultParams())
		Expect(channels).To(HaveLen(3))
		Expect(channels[1].Name).To(Equal("excitation"))
		Expect(channels[1].Rate).To(BeZero())
	})
})

var _ = Describe("Params", func() {
	It("rejects negative rates", func() {
		_, err := rabi.Integrate(context.Background(), rabi.Params{Gamma1: -1}, rabi.GroundState(), rabi.Linspace(0, 1, 10))
		Expect(err).To(MatchError(rabi.ErrNegativeRate))
		Expect(rabi.Params{Gamma2: -0.1}.Validate()).To(MatchError(ContainSubstring("gamma2")))
		Expect(rabi.DefaultParams().Validate()).To(Succeed())
	})
})

var _ = Describe("Linspace", func() {
	It("spans the interval inclusively", func() {
		ts := rabi.Linspace(0, 50, 500)
		Expect(ts).To(HaveLen(500))
		Expect(ts[0]).To(Equal(0.0))
		Expect(ts[499]).To(BeNumerically("~", 50, 1e-12))
		Expect(ts[1]).To(BeNumerically("~", 50.0/499, 1e-12))
		for i := 1; i < len(ts); i++ {
			Expect(ts[i]).To(BeNumerically(">", ts[i-1]))
		}
	})

	It("handles degenerate sizes", func() {
		Expect(rabi.Linspace(0, 1, 0)).To(BeEmpty())
		Expect(rabi.Linspace(3, 4, 1)).To(Equal([]float64{3}))
	})
})

var _ = Describe("Integrate", func() {
	const window = 200

	var (
		ctx   context.Context
		tlist []float64
		p     rabi.Params
	)

	BeforeEach(func() {
		ctx = context.Background()
		tlist = rabi.Linspace(0, 50, 500)
		p = rabi.Params{
			Delta:  0,
			Eps0:   2 * math.Pi,
			A:      0.1 * math.Pi,
			W:      2 * math.Pi,
			Gamma1: 0.025,
			Gamma2: 0,
		}
	})

	It("returns one real value per grid point, starting at zero", func() {
		pex, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())
		Expect(pex).To(HaveLen(500))
		Expect(pex[0]).To(BeNumerically("~", 0, 1e-12))
		for _, v := range pex {
			Expect(v).To(BeNumerically(">=", -1e-6))
			Expect(v).To(BeNumerically("<=", 1+1e-6))
		}
	})

	It("shows Rabi oscillations damped by relaxation", func() {
		damped, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())

		p.Gamma1 = 0
		lossless, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())

		peaks := analysis.FindPeaks(damped, 0.2)
		Expect(len(peaks)).To(BeNumerically(">=", 2))
		Expect(damped[peaks[0]]).To(BeNumerically(">", 0.8))

		// resonant Rabi period is 2π/A = 20
		period, ok := analysis.PeakSpacing(tlist, lossless, 0.2)
		Expect(ok).To(BeTrue())
		Expect(period).To(BeNumerically("~", 20, 1))

		Expect(analysis.LateAmplitude(damped, window)).To(BeNumerically("<", analysis.LateAmplitude(lossless, window)-0.05))
	})

	It("changes the oscillation period when only the drive frequency changes", func() {
		resonant, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())

		p.W = 1.05 * 2 * math.Pi
		detuned, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())

		resonantPeriod, ok := analysis.PeakSpacing(tlist, resonant, 0.2)
		Expect(ok).To(BeTrue())
		detunedPeriod, ok := analysis.PeakSpacing(tlist, detuned, 0.2)
		Expect(ok).To(BeTrue())

		// generalized Rabi frequency sqrt(A² + Δ²) shortens the period to ~14
		Expect(detunedPeriod).To(BeNumerically("<", resonantPeriod-3))
	})

	It("leaves the qubit in the ground state without drive or dissipation", func() {
		p.A, p.Gamma1 = 0, 0
		pex, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range pex {
			Expect(v).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("agrees across integrators", func() {
		adaptive, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist)
		Expect(err).NotTo(HaveOccurred())

		fixed, err := rabi.Integrate(ctx, p, rabi.GroundState(), tlist,
			rabi.WithIntegrator(integrators.NewRK4()),
			rabi.WithConfig(dynamo.Config{Dt: 0.005}))
		Expect(err).NotTo(HaveOccurred())

		for i := range adaptive {
			Expect(fixed[i]).To(BeNumerically("~", adaptive[i], 1e-5))
		}
	})

	It("propagates solver errors", func() {
		_, err := rabi.Integrate(ctx, p, rabi.GroundState(), []float64{0, 1, 1})
		Expect(err).To(MatchError(dynamo.ErrInvalidGrid))

		_, err = rabi.Integrate(ctx, p, quantum.Basis(3, 0), tlist)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("returns the full solver result", func() {
		res, err := rabi.Solve(ctx, p, rabi.GroundState(), tlist, rabi.WithMetrics())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Times).To(Equal(tlist))
		Expect(res.Expect).To(HaveLen(1))
	})
})
