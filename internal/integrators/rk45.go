package integrators

import (
	"math"

	"github.com/san-kum/rabisim/internal/dynamo"
)

// Dormand-Prince 5(4) tableau.
var (
	dpNodes = [7]float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1}

	dpCoupling = [7][6]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	}

	// difference between the 5th and embedded 4th order weights
	dpError = [7]float64{
		35.0/384.0 - 5179.0/57600.0,
		0,
		500.0/1113.0 - 7571.0/16695.0,
		125.0/192.0 - 393.0/640.0,
		-2187.0/6784.0 + 92097.0/339200.0,
		11.0/84.0 - 187.0/2100.0,
		-1.0 / 40.0,
	}
)

// RK45 is the Dormand-Prince embedded pair with error-controlled steps. The
// last stage row doubles as the 5th order solution.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 5.0,
	}
}

// Step takes one unchecked step of size dt.
func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _ := r.stages(sys, x, t, dt)
	return xNew
}

func (r *RK45) stages(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, [7]dynamo.State) {
	n := len(x)
	var k [7]dynamo.State
	k[0] = sys.Derive(x, t)

	var xNew dynamo.State
	for s := 1; s < 7; s++ {
		xs := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < s; j++ {
				sum += dpCoupling[s][j] * k[j][i]
			}
			xs[i] = x[i] + dt*sum
		}
		k[s] = sys.Derive(xs, t+dpNodes[s]*dt)
		xNew = xs
	}

	return xNew, k
}

// StepAdaptive takes one step and measures its local error with a mixed
// absolute/relative norm (tol serves as both). A step whose scaled RMS error
// exceeds 1 is rejected with dynamo.ErrStepRejected and a smaller size.
func (r *RK45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	xNew, k := r.stages(sys, x, t, dt)

	n := len(x)
	sumSq := 0.0
	for i := 0; i < n; i++ {
		errEst := 0.0
		for s := 0; s < 7; s++ {
			errEst += dpError[s] * k[s][i]
		}
		errEst *= dt
		scale := tol + tol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		sumSq += (errEst / scale) * (errEst / scale)
	}
	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sumSq / float64(n))
	}

	if math.IsNaN(errNorm) || errNorm > 1 {
		scale := r.minScale
		if !math.IsNaN(errNorm) {
			scale = math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.2))
		}
		return x, dt * scale, dynamo.ErrStepRejected
	}

	scale := r.maxScale
	if errNorm > 0 {
		scale = math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	}
	return xNew, dt * scale, nil
}
