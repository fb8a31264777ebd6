// Package analysis characterizes sampled trajectories such as excitation
// probabilities.
//
//   - [FindPeaks]: prominence-filtered local maxima
//   - [PeakSpacing]: mean spacing between peaks, i.e. the oscillation period
//   - [Envelope], [LateAmplitude]: oscillation amplitude per window
//   - [PowerSpectrum], [DominantFrequency]: FFT of the trajectory
//
// # Rabi period
//
// Driven qubits show a slow Rabi oscillation with a small ripple at twice
// the drive frequency on top. A prominence threshold well above the ripple
// amplitude keeps only the Rabi maxima:
//
//	period, ok := analysis.PeakSpacing(tlist, pex, 0.2)
package analysis
