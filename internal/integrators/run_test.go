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

// oscillator is a unit harmonic oscillator without the Canonical halves, so
// SymplecticEuler has to split Derive.
type oscillator struct{}

func (oscillator) StateDim() int { return 2 }
func (oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

var _ = Describe("Run", func() {
	var (
		dp    *physics.DoublePendulum
		small dynamo.State
	)

	BeforeEach(func() {
		var err error
		dp, err = physics.NewDoublePendulum(physics.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		small = dp.InitialState(physics.InitialState{Angle1: 0.3, Angle2: 0.3})
	})

	DescribeTable("keeps higher-order steppers close to the initial energy",
		func(stepper dynamo.Integrator) {
			tr, err := integrators.Run(stepper, dp, small, 1000, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(energyBand(tr, dp.Params)).To(BeNumerically("<", 1e-4))
		},
		Entry("rk4", integrators.NewRK4()),
		Entry("rk45", integrators.NewRK45()),
	)

	It("lets explicit Euler gain energy", func() {
		euler, err := integrators.Run(integrators.NewEuler(), dp, small, 1000, 0.02)
		Expect(err).NotTo(HaveOccurred())
		symp, err := integrators.Run(integrators.NewSymplecticEuler(), dp, small, 1000, 0.02)
		Expect(err).NotTo(HaveOccurred())

		Expect(energyBand(euler, dp.Params)).To(BeNumerically(">", 100*energyBand(symp, dp.Params)))
	})

	It("carries non-zero starting momenta", func() {
		x0 := dynamo.State{0.1, 0.2, 0.5, -0.5}
		tr, err := integrators.Run(integrators.NewRK4(), dp, x0, 10, 0.02)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.State(0)).To(Equal(x0))
	})

	It("rejects systems of the wrong dimension", func() {
		_, err := integrators.Run(integrators.NewEuler(), oscillator{}, dynamo.State{1, 0}, 10, 0.01)
		Expect(errors.Is(err, dynamo.ErrInvalidParameters)).To(BeTrue())
	})

	It("rejects a non-finite starting state", func() {
		_, err := integrators.Run(integrators.NewEuler(), dp, dynamo.State{math.NaN(), 0, 0, 0}, 10, 0.01)
		Expect(errors.Is(err, dynamo.ErrInvalidParameters)).To(BeTrue())
	})
})

var _ = Describe("SymplecticEuler", func() {
	It("splits a plain system through Derive", func() {
		stepper := integrators.NewSymplecticEuler()
		x := dynamo.State{1, 0}
		for i := 0; i < 10000; i++ {
			x = stepper.Step(oscillator{}, x, float64(i)*0.01, 0.01)
		}
		energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
		Expect(energy).To(BeNumerically("~", 0.5, 0.01))
	})

	It("does not modify its input", func() {
		x := dynamo.State{1, 0}
		integrators.NewSymplecticEuler().Step(oscillator{}, x, 0, 0.1)
		Expect(x).To(Equal(dynamo.State{1, 0}))
	})
})
