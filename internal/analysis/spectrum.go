package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k| for k in [0, n/2] of the mean-removed data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency (cycles per time unit) of the
// strongest non-zero spectral component of data sampled on an evenly spaced
// grid.
func DominantFrequency(times, data []float64) float64 {
	n := len(data)
	if n < 4 || len(times) != n {
		return 0
	}

	ps := PowerSpectrum(data)
	maxIdx := 0
	maxPower := 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > maxPower {
			maxPower = ps[k]
			maxIdx = k
		}
	}

	dt := (times[n-1] - times[0]) / float64(n-1)
	return float64(maxIdx) / (float64(n) * dt)
}
