package metrics

import (
	"math"

	"github.com/san-kum/rabisim/internal/quantum"
)

// MinPurity records the smallest Tr(rho²) seen. It stays at 1 for
// closed-system evolution and drops as dissipation mixes the state.
type MinPurity struct {
	name    string
	min     float64
	samples int
}

func NewMinPurity() *MinPurity {
	return &MinPurity{name: "min_purity"}
}

func (m *MinPurity) Name() string { return m.name }

func (m *MinPurity) Observe(t float64, rho *quantum.Operator) {
	p := quantum.Purity(rho)
	if m.samples == 0 {
		m.min = p
	} else {
		m.min = math.Min(m.min, p)
	}
	m.samples++
}

func (m *MinPurity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinPurity) Reset() {
	m.min = 0
	m.samples = 0
}
