package experiment

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rabisim/internal/analysis"
)

const (
	// PeakProminence separates Rabi maxima from counter-rotating ripple.
	PeakProminence = 0.2
	summaryWindow  = 100
)

// Summary holds the derived oscillation figures of a trajectory.
type Summary struct {
	Peaks             int     `json:"peaks"`
	Period            float64 `json:"period,omitempty"`
	DominantFrequency float64 `json:"dominant_frequency"`
	MaxExcitation     float64 `json:"max_excitation"`
	LateAmplitude     float64 `json:"late_amplitude"`
	AmplitudeDecay    float64 `json:"amplitude_decay"`
}

func Summarize(times, excitation []float64) Summary {
	if len(excitation) == 0 {
		return Summary{}
	}
	s := Summary{
		Peaks:             len(analysis.FindPeaks(excitation, PeakProminence)),
		DominantFrequency: analysis.DominantFrequency(times, excitation),
		MaxExcitation:     floats.Max(excitation),
		LateAmplitude:     analysis.LateAmplitude(excitation, summaryWindow),
		AmplitudeDecay:    analysis.AmplitudeDecay(excitation, summaryWindow),
	}
	if period, ok := analysis.PeakSpacing(times, excitation, PeakProminence); ok {
		s.Period = period
	}
	return s
}

func (r *Run) Summary() Summary {
	return Summarize(r.Times, r.Excitation)
}
