package metrics

import "github.com/san-kum/rabisim/internal/quantum"

// TimeDependentOperator is anything that yields an operator for a time,
// such as the drive Hamiltonian.
type TimeDependentOperator interface {
	At(t float64) *quantum.Operator
}

// Energy is the time average of <H(t)> over the observed samples.
type Energy struct {
	name        string
	h           TimeDependentOperator
	samples     int
	totalEnergy float64
}

func NewEnergy(h TimeDependentOperator) *Energy {
	return &Energy{
		name: "mean_energy",
		h:    h,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(t float64, rho *quantum.Operator) {
	e.totalEnergy += real(quantum.Expect(e.h.At(t), rho))
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}
