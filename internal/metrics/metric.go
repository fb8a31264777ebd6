package metrics

import "github.com/san-kum/rabisim/internal/quantum"

// Metric accumulates a scalar over the density matrices the solver reports
// at each output time.
type Metric interface {
	Name() string
	Observe(t float64, rho *quantum.Operator)
	Value() float64
	Reset()
}

// Defaults returns the metrics attached to every stored run.
func Defaults() []Metric {
	return []Metric{NewTraceDrift(), NewMinPurity()}
}
