package solver

import (
	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/quantum"
)

// schrodinger is dψ/dt = -i H(t) ψ.
type schrodinger struct {
	h Hamiltonian
	n int
}

func (s *schrodinger) StateDim() int { return 2 * s.n }

func (s *schrodinger) Derive(x dynamo.State, t float64) dynamo.State {
	psi := unpackKet(x)
	hpsi := s.h.At(t).Apply(psi)
	for i := range hpsi {
		hpsi[i] *= -1i
	}
	return packKet(hpsi)
}

// lindblad is dρ/dt = -i[H(t), ρ] + Σ_k (C_k ρ C_k† - ½{C_k† C_k, ρ}).
type lindblad struct {
	h     Hamiltonian
	cOps  []*quantum.Operator
	cDags []*quantum.Operator
	decay *quantum.Operator // Σ_k C_k† C_k
	n     int
}

func newLindblad(h Hamiltonian, cOps []*quantum.Operator, n int) *lindblad {
	l := &lindblad{
		h:     h,
		cOps:  cOps,
		cDags: make([]*quantum.Operator, len(cOps)),
		decay: quantum.Zero(n),
		n:     n,
	}
	for k, c := range cOps {
		l.cDags[k] = c.Dag()
		l.decay = l.decay.Add(l.cDags[k].Mul(c))
	}
	return l
}

func (l *lindblad) StateDim() int { return 2 * l.n * l.n }

func (l *lindblad) Derive(x dynamo.State, t float64) dynamo.State {
	rho := unpackOperator(x, l.n)

	drho := quantum.Commutator(l.h.At(t), rho).Scale(-1i)
	for k, c := range l.cOps {
		drho = drho.Add(c.Mul(rho).Mul(l.cDags[k]))
	}
	drho = drho.Sub(quantum.AntiCommutator(l.decay, rho).ScaleReal(0.5))

	return packOperator(drho)
}
