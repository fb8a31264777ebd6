package rabi

import (
	"errors"
	"fmt"
	"math"
)

var ErrNegativeRate = errors.New("rabi: rates must be non-negative")

// Params are the physical inputs of one run. Energies and frequencies are
// angular (already multiplied by 2π); rates are plain.
type Params struct {
	Delta  float64 // σx coefficient (tunnelling)
	Eps0   float64 // σz coefficient (bias)
	A      float64 // drive amplitude, σx coupled
	W      float64 // drive angular frequency
	Gamma1 float64 // relaxation rate
	Gamma2 float64 // dephasing rate
	// NTh is the thermal occupation of the bath. Zero means zero
	// temperature, which disables the thermal excitation channel.
	NTh float64
}

// DefaultParams is the resonantly driven, weakly damped qubit.
func DefaultParams() Params {
	return Params{
		Delta:  0.0 * 2 * math.Pi,
		Eps0:   1.0 * 2 * math.Pi,
		A:      0.05 * 2 * math.Pi,
		W:      1.0 * 2 * math.Pi,
		Gamma1: 0.025,
		Gamma2: 0.0,
		NTh:    0.0,
	}
}

func (p Params) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{{"gamma1", p.Gamma1}, {"gamma2", p.Gamma2}, {"n_th", p.NTh}}
	for _, r := range rates {
		if r.v < 0 || math.IsNaN(r.v) {
			return fmt.Errorf("%w: %s = %g", ErrNegativeRate, r.name, r.v)
		}
	}
	return nil
}
