package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rabisim/internal/dynamo"
)

// Euler is the explicit first-order method. It is only useful as a baseline.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	return floats.AddScaledTo(make(dynamo.State, len(x)), x, dt, dx)
}
