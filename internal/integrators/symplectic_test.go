package integrators_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/integrators"
	"github.com/san-kum/sympend/internal/physics"
)

func energyBand(tr *physics.Trajectory, p physics.Params) float64 {
	e := tr.Energies(p)
	band := 0.0
	for _, v := range e {
		band = math.Max(band, math.Abs(v-e[0]))
	}
	return band
}

var _ = Describe("Integrate", func() {
	var (
		params physics.Params
		right  physics.InitialState
	)

	BeforeEach(func() {
		params = physics.DefaultParams()
		right = physics.InitialState{Angle1: math.Pi / 2, Angle2: math.Pi / 2}
	})

	Context("with invalid input", func() {
		It("rejects fewer than two samples", func() {
			tr, err := integrators.Integrate(params, right, 1, 0.02)
			Expect(err).To(MatchError(dynamo.ErrInvalidStep))
			Expect(tr).To(BeNil())
		})

		DescribeTable("rejects a bad step size",
			func(dt float64) {
				_, err := integrators.Integrate(params, right, 10, dt)
				Expect(errors.Is(err, dynamo.ErrInvalidStep)).To(BeTrue())
			},
			Entry("zero", 0.0),
			Entry("negative", -0.02),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects a negative mass before stepping", func() {
			params.Mass1 = -1
			tr, err := integrators.Integrate(params, right, 1000, 0.02)
			Expect(errors.Is(err, dynamo.ErrInvalidParameters)).To(BeTrue())
			Expect(tr).To(BeNil())
		})

		It("rejects a non-finite initial angle", func() {
			_, err := integrators.Integrate(params, physics.InitialState{Angle1: math.NaN()}, 10, 0.02)
			Expect(errors.Is(err, dynamo.ErrInvalidParameters)).To(BeTrue())
		})
	})

	DescribeTable("keeps the rest state exactly at rest",
		func(m1, m2, l1, l2, g float64) {
			p, err := physics.NewParams(m1, m2, l1, l2, g)
			Expect(err).NotTo(HaveOccurred())
			tr, err := integrators.Integrate(p, physics.InitialState{}, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < tr.Len(); i++ {
				Expect(tr.State(i)).To(Equal(dynamo.State{0, 0, 0, 0}))
			}
		},
		Entry("unit", 1.0, 1.0, 1.0, 1.0, physics.DefaultGravity),
		Entry("heavy upper bob", 5.0, 0.2, 1.0, 1.0, physics.DefaultGravity),
		Entry("unequal arms", 2.0, 0.5, 1.5, 0.7, physics.DefaultGravity),
		Entry("tiny lower bob on a long arm", 0.3, 1e-3, 0.25, 4.0, 1.62),
		Entry("strong gravity", 1.7, 2.3, 0.6, 0.9, 274.0),
	)

	DescribeTable("starts from the requested configuration",
		func(a1, a2 float64) {
			init := physics.InitialState{Angle1: a1, Angle2: a2}
			tr, err := integrators.Integrate(params, init, 50, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Angle1[0]).To(Equal(a1))
			Expect(tr.Angle2[0]).To(Equal(a2))
			Expect(tr.Momentum1[0]).To(BeZero())
			Expect(tr.Momentum2[0]).To(BeZero())
		},
		Entry("reference", math.Pi/2, math.Pi/2),
		Entry("opposed", 0.3, -0.3),
		Entry("inverted", math.Pi, 0.0),
		Entry("wound", 7.5, -12.0),
	)

	It("staggers the first step", func() {
		dt := 0.02
		tr, err := integrators.Integrate(params, right, 2, dt)
		Expect(err).NotTo(HaveOccurred())

		// Released from rest the velocity is zero, so the angles hold and
		// the momenta pick up the gravitational torque at those angles.
		Expect(tr.Angle1[1]).To(Equal(right.Angle1))
		Expect(tr.Angle2[1]).To(Equal(right.Angle2))
		f1, f2 := physics.ForceAt(right.Angle1, right.Angle2, 0, 0, params)
		Expect(tr.Momentum1[1]).To(Equal(dt * f1))
		Expect(tr.Momentum2[1]).To(Equal(dt * f2))
	})

	Context("with the reference configuration", func() {
		var tr *physics.Trajectory

		BeforeEach(func() {
			var err error
			tr, err = integrators.Integrate(params, right, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces the full fixed-length run", func() {
			Expect(tr.Len()).To(Equal(1000))
			Expect(tr.Horizon()).To(BeNumerically("~", 20, 1e-9))
			Expect(tr.FirstNonFinite()).To(Equal(-1))
		})

		It("follows the staggered recurrence at every sample", func() {
			dt := tr.Dt
			for i := 0; i < tr.Len()-1; i++ {
				w1, w2 := physics.VelocityAt(tr.Angle1[i], tr.Angle2[i], tr.Momentum1[i], tr.Momentum2[i], params)
				Expect(tr.Angle1[i+1]).To(BeNumerically("~", tr.Angle1[i]+dt*w1, 1e-12))
				Expect(tr.Angle2[i+1]).To(BeNumerically("~", tr.Angle2[i]+dt*w2, 1e-12))

				f1, f2 := physics.ForceAt(tr.Angle1[i+1], tr.Angle2[i+1], tr.Momentum1[i], tr.Momentum2[i], params)
				Expect(tr.Momentum1[i+1]).To(BeNumerically("~", tr.Momentum1[i]+dt*f1, 1e-12))
				Expect(tr.Momentum2[i+1]).To(BeNumerically("~", tr.Momentum2[i]+dt*f2, 1e-12))
			}
		})

		It("agrees with a half-step run early in the motion", func() {
			fine, err := integrators.Integrate(params, right, 2000, 0.01)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 50; i++ {
				Expect(math.Abs(tr.Angle1[i]-fine.Angle1[2*i])).To(BeNumerically("<", 0.1))
				Expect(math.Abs(tr.Angle2[i]-fine.Angle2[2*i])).To(BeNumerically("<", 0.1))
			}
		})
	})

	Context("at small amplitude", func() {
		small := physics.InitialState{Angle1: 0.3, Angle2: 0.3}

		It("keeps the relative energy drift small", func() {
			tr, err := integrators.Integrate(params, small, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			e0 := physics.Energy(small.Angle1, small.Angle2, 0, 0, params)
			Expect(energyBand(tr, params) / math.Abs(e0)).To(BeNumerically("<", 5e-3))
		})

		It("holds energy far better than explicit Euler", func() {
			tr, err := integrators.Integrate(params, small, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			dp, err := physics.NewDoublePendulum(params)
			Expect(err).NotTo(HaveOccurred())
			euler, err := integrators.Run(integrators.NewEuler(), dp, dp.InitialState(small), 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(energyBand(tr, params)).To(BeNumerically("<", energyBand(euler, params)/100))
		})

		It("converges under step refinement over the whole horizon", func() {
			coarse, err := integrators.Integrate(params, small, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			fine, err := integrators.Integrate(params, small, 2000, 0.01)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < coarse.Len(); i++ {
				Expect(math.Abs(coarse.Angle1[i]-fine.Angle1[2*i])).To(BeNumerically("<", 0.02))
				Expect(math.Abs(coarse.Angle2[i]-fine.Angle2[2*i])).To(BeNumerically("<", 0.02))
			}
		})
	})

	It("handles unequal masses and lengths", func() {
		p, err := physics.NewParams(2, 0.5, 1.5, 0.7, physics.DefaultGravity)
		Expect(err).NotTo(HaveOccurred())
		init := physics.InitialState{Angle1: 0.4, Angle2: -0.2}

		tr, err := integrators.Integrate(p, init, 2000, 0.01)
		Expect(err).NotTo(HaveOccurred())
		e0 := physics.Energy(init.Angle1, init.Angle2, 0, 0, p)
		Expect(energyBand(tr, p) / math.Abs(e0)).To(BeNumerically("<", 1e-2))
	})

	It("stops at the first non-finite sample", func() {
		tr, err := integrators.Integrate(params, right, 100, 1e300)

		var div *dynamo.DivergenceError
		Expect(errors.As(err, &div)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrNumericalDivergence)).To(BeTrue())
		Expect(div.Step).To(Equal(2))
		Expect(tr.Len()).To(Equal(3))
		Expect(tr.FirstNonFinite()).To(Equal(2))
		Expect(tr.Finite(1)).To(BeTrue())
	})

	It("shares its first step with the state-level stepper", func() {
		p, err := physics.NewParams(1.3, 0.8, 0.9, 1.1, physics.DefaultGravity)
		Expect(err).NotTo(HaveOccurred())
		init := physics.InitialState{Angle1: 1.1, Angle2: -0.6}

		tr, err := integrators.Integrate(p, init, 2, 0.02)
		Expect(err).NotTo(HaveOccurred())

		// From rest both force kernels reduce to the gravity torque.
		dp, err := physics.NewDoublePendulum(p)
		Expect(err).NotTo(HaveOccurred())
		run, err := integrators.Run(integrators.NewSymplecticEuler(), dp, dp.InitialState(init), 2, 0.02)
		Expect(err).NotTo(HaveOccurred())

		Expect(run.State(1)).To(Equal(tr.State(1)))
	})
})
