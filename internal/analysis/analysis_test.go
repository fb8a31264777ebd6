package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampled(n int, dt float64, f func(t float64) float64) ([]float64, []float64) {
	times := make([]float64, n)
	data := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
		data[i] = f(times[i])
	}
	return times, data
}

func TestFindPeaksIgnoresRipple(t *testing.T) {
	// slow oscillation with period 20 plus a fast small ripple
	times, data := sampled(500, 0.1, func(t float64) float64 {
		return math.Pow(math.Sin(math.Pi*t/20), 2) + 0.02*math.Sin(4*math.Pi*t)
	})

	all := FindPeaks(data, 0)
	prominent := FindPeaks(data, 0.2)

	assert.Greater(t, len(all), len(prominent))
	require.Len(t, prominent, 2)
	assert.InDelta(t, 10, times[prominent[0]], 0.3)
	assert.InDelta(t, 30, times[prominent[1]], 0.3)
}

func TestPeakSpacing(t *testing.T) {
	times, data := sampled(1000, 0.05, func(t float64) float64 { return math.Cos(2 * math.Pi * t / 7) })

	period, ok := PeakSpacing(times, data, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 7, period, 0.06)

	_, ok = PeakSpacing(times[:100], data[:100], 0.5)
	assert.False(t, ok, "fewer than two peaks")
}

func TestProminence(t *testing.T) {
	data := []float64{0, 3, 1, 2, 1, 4, 0}
	assert.InDelta(t, 1, Prominence(data, 3), 1e-12)
	assert.InDelta(t, 2, Prominence(data, 1), 1e-12)
	assert.InDelta(t, 4, Prominence(data, 5), 1e-12)
	assert.Equal(t, []int{1, 3, 5}, FindPeaks(data, 0.5))
	assert.Equal(t, []int{1, 5}, FindPeaks(data, 2))
}

func TestEnvelopeDecay(t *testing.T) {
	_, data := sampled(400, 0.1, func(t float64) float64 { return math.Exp(-0.1*t) * math.Sin(2*t) })

	env := Envelope(data, 50)
	require.Len(t, env, 8)
	for i := 1; i < len(env); i++ {
		assert.Less(t, env[i], env[i-1])
	}
	assert.InDelta(t, env[len(env)-1], LateAmplitude(data, 50), 1e-12)
}

func TestEnvelopeEdges(t *testing.T) {
	assert.Empty(t, Envelope(nil, 10))
	assert.Equal(t, []float64{2, 1}, Envelope([]float64{0, 2, 1, 0, 1}, 3))
	assert.Equal(t, 0.0, LateAmplitude(nil, 5))
	assert.Equal(t, 3.0, LateAmplitude([]float64{1, 4}, 10))
	assert.Equal(t, 0.0, LateAmplitude([]float64{1, 4}, 0))
	assert.Equal(t, 0.0, LateAmplitude([]float64{1, 4}, -3))
}

func TestDominantFrequency(t *testing.T) {
	times, data := sampled(512, 0.1, func(t float64) float64 { return 0.5 + math.Sin(2*math.Pi*0.5*t) })

	freq := DominantFrequency(times, data)
	resolution := 1 / (512 * 0.1)
	assert.InDelta(t, 0.5, freq, resolution)

	ps := PowerSpectrum(data)
	assert.Len(t, ps, 257)
	assert.InDelta(t, 0, ps[0], 1e-9, "mean is removed")
}

func TestAmplitudeDecay(t *testing.T) {
	_, decaying := sampled(400, 0.1, func(t float64) float64 { return math.Exp(-0.1*t) * math.Sin(2*t) })
	_, steady := sampled(400, 0.1, func(t float64) float64 { return math.Sin(2 * t) })

	assert.Less(t, AmplitudeDecay(decaying, 50), 0.1)
	assert.InDelta(t, 1, AmplitudeDecay(steady, 50), 0.02)
	assert.Equal(t, 0.0, AmplitudeDecay([]float64{1, 1, 1}, 2))
}
