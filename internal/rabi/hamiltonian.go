// Package rabi is the driven two-level experiment: it turns physical
// parameters into a drive Hamiltonian and collapse operators, runs the
// master-equation solver once, and returns the excitation probability.
package rabi

import (
	"math"

	"github.com/san-kum/rabisim/internal/quantum"
)

// DrivenHamiltonian is H(t) = H0 + H1·sin(W·t).
type DrivenHamiltonian struct {
	H0 *quantum.Operator
	H1 *quantum.Operator
	W  float64
}

// At evaluates the Hamiltonian at time t. H0 and H1 must share a dimension.
func (h DrivenHamiltonian) At(t float64) *quantum.Operator {
	return h.H0.Add(h.H1.ScaleReal(math.Sin(h.W * t)))
}

// Period returns the drive period 2π/W, or +Inf for an undriven system.
func (h DrivenHamiltonian) Period() float64 {
	if h.W == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(h.W)
}

// NewHamiltonian builds the qubit Hamiltonian
//
//	H0 = -(Delta/2)·σx - (Eps0/2)·σz
//	H1 = -A·σx
//
// driven at angular frequency W.
func NewHamiltonian(p Params) DrivenHamiltonian {
	sx, sz := quantum.SigmaX(), quantum.SigmaZ()
	return DrivenHamiltonian{
		H0: sx.ScaleReal(-p.Delta / 2).Sub(sz.ScaleReal(p.Eps0 / 2)),
		H1: sx.ScaleReal(-p.A),
		W:  p.W,
	}
}
