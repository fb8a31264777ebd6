package integrators

import (
	"testing"

	"github.com/san-kum/rabisim/internal/dynamo"
)

// benchLindblad mimics the size of a vectorized two-level density matrix.
type benchLindblad struct{}

func (b *benchLindblad) StateDim() int { return 8 }
func (b *benchLindblad) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, 8)
	for i := 0; i < 4; i++ {
		dx[i] = x[i+4] - 0.01*x[i]
		dx[i+4] = -x[i] - 0.01*x[i+4]
	}
	return dx
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &benchLindblad{}
	x := dynamo.State{1, 0, 0, 0, 0, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchLindblad{}
	x := dynamo.State{1, 0, 0, 0, 0, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := &benchLindblad{}
	x := dynamo.State{1, 0, 0, 0, 0, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, _, _ = integrator.StepAdaptive(dyn, x, 0, 0.01, 1e-8)
	}
}
