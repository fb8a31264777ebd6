package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 15
)

// RenderPlot draws values as an ASCII line plot with the vertical axis
// fixed to [0, 1]. Long series are resampled to width columns.
func RenderPlot(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultPlotWidth
	}
	if height <= 0 {
		height = DefaultPlotHeight
	}

	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}
