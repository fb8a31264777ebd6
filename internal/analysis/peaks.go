package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FindPeaks returns the indices of interior local maxima whose prominence is
// at least minProminence. Prominence is the height of a peak above the higher
// of the lowest points between it and the nearest higher sample on each side
// (or the edge of the data).
func FindPeaks(data []float64, minProminence float64) []int {
	peaks := make([]int, 0)
	for i := 1; i < len(data)-1; i++ {
		if !(data[i] > data[i-1] && data[i] >= data[i+1]) {
			continue
		}
		if Prominence(data, i) >= minProminence {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// Prominence of the sample at index i.
func Prominence(data []float64, i int) float64 {
	peak := data[i]

	leftMin := peak
	for j := i - 1; j >= 0 && data[j] <= peak; j-- {
		leftMin = math.Min(leftMin, data[j])
	}

	rightMin := peak
	for j := i + 1; j < len(data) && data[j] <= peak; j++ {
		rightMin = math.Min(rightMin, data[j])
	}

	return peak - math.Max(leftMin, rightMin)
}

// PeakSpacing returns the mean time between consecutive prominent peaks. It
// reports false when fewer than two peaks are found.
func PeakSpacing(times, data []float64, minProminence float64) (float64, bool) {
	peaks := FindPeaks(data, minProminence)
	if len(peaks) < 2 {
		return 0, false
	}

	gaps := make([]float64, len(peaks)-1)
	for k := 1; k < len(peaks); k++ {
		gaps[k-1] = times[peaks[k]] - times[peaks[k-1]]
	}
	return stat.Mean(gaps, nil), true
}
