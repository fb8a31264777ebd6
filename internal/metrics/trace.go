package metrics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/rabisim/internal/quantum"
)

// TraceDrift tracks max |Tr(rho) - 1|. The Lindblad equation preserves the
// trace, so this measures integration error.
type TraceDrift struct {
	name     string
	maxDrift float64
}

func NewTraceDrift() *TraceDrift {
	return &TraceDrift{name: "trace_drift"}
}

func (m *TraceDrift) Name() string { return m.name }

func (m *TraceDrift) Observe(t float64, rho *quantum.Operator) {
	drift := cmplx.Abs(rho.Trace() - 1)
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *TraceDrift) Value() float64 { return m.maxDrift }

func (m *TraceDrift) Reset() { m.maxDrift = 0 }
