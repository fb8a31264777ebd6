// Package viz draws excitation trajectories in the terminal.
//
//   - [RenderPlot]: static asciigraph plot bounded to [0, 1]
//   - [Styles]: lipgloss styles derived from a [Theme]
//   - [RunInteractive]: Bubble Tea viewer that re-solves the qubit as the
//     drive is adjusted
//
// # Key Bindings
//
//	←/→ or h/l - drive frequency
//	↓/↑ or j/k - drive amplitude
//	[/]        - relaxation rate gamma1
//	T          - cycle color themes
//	R          - reset to the starting configuration
//	Q          - quit
package viz
