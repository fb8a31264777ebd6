package rabi

import (
	"math"

	"github.com/san-kum/rabisim/internal/quantum"
)

// Channel is one dissipation channel: an operator and the rate it acts at.
type Channel struct {
	Name     string
	Rate     float64
	Operator *quantum.Operator
}

// Channels lists relaxation, thermal excitation and dephasing with their
// rates, including channels whose rate is zero.
func Channels(p Params) []Channel {
	sm := quantum.SigmaMinus()
	return []Channel{
		{Name: "relaxation", Rate: p.Gamma1 * (1 + p.NTh), Operator: sm},
		{Name: "excitation", Rate: p.Gamma1 * p.NTh, Operator: sm.Dag()},
		{Name: "dephasing", Rate: p.Gamma2, Operator: quantum.SigmaZ()},
	}
}

// CollapseOperators returns sqrt(rate)·L for every channel with a strictly
// positive rate. Zero-rate channels are left out entirely.
func CollapseOperators(p Params) []*quantum.Operator {
	ops := make([]*quantum.Operator, 0, 3)
	for _, ch := range Channels(p) {
		if ch.Rate > 0 {
			ops = append(ops, ch.Operator.ScaleReal(math.Sqrt(ch.Rate)))
		}
	}
	return ops
}
