package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rabisim/internal/dynamo"
)

// RK4 is the classical fourth-order Runge-Kutta method. Stage buffers are
// reused between steps, so one RK4 must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// stage writes x + h*k into the scratch buffer.
func (r *RK4) stage(x, k dynamo.State, h float64) dynamo.State {
	return floats.AddScaledTo(r.scratch, x, h, k)
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))
	copy(r.k2, sys.Derive(r.stage(x, r.k1, dt*0.5), t+dt*0.5))
	copy(r.k3, sys.Derive(r.stage(x, r.k2, dt*0.5), t+dt*0.5))
	copy(r.k4, sys.Derive(r.stage(x, r.k3, dt), t+dt))

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
