package analysis

import "gonum.org/v1/gonum/floats"

// Envelope splits data into consecutive windows of the given length and
// returns the peak-to-peak amplitude of each. A trailing partial window is
// included when it has at least two samples.
func Envelope(data []float64, window int) []float64 {
	if window < 2 {
		window = 2
	}
	amps := make([]float64, 0, len(data)/window+1)
	for start := 0; start < len(data); start += window {
		end := start + window
		if end > len(data) {
			end = len(data)
		}
		if end-start < 2 {
			break
		}
		block := data[start:end]
		amps = append(amps, floats.Max(block)-floats.Min(block))
	}
	return amps
}

// LateAmplitude is the peak-to-peak amplitude of the last window samples.
func LateAmplitude(data []float64, window int) float64 {
	if len(data) == 0 {
		return 0
	}
	window = min(max(window, 1), len(data))
	tail := data[len(data)-window:]
	return floats.Max(tail) - floats.Min(tail)
}

// AmplitudeDecay is the ratio of the last window's amplitude to the first
// one's. It returns 0 when the first window is flat.
func AmplitudeDecay(data []float64, window int) float64 {
	env := Envelope(data, window)
	if len(env) == 0 || env[0] == 0 {
		return 0
	}
	return LateAmplitude(data, window) / env[0]
}
