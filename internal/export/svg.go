// Package export renders trajectories to SVG line plots and CSV.
package export

import (
	"errors"
	"fmt"
	"html"
	"os"
	"strings"
)

var ErrNoData = errors.New("export: need at least two samples of equal length")

const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 40
	marginBottom = 55
	numTicks     = 5
)

type PlotOptions struct {
	Width  int
	Height int
	Title  string
	XLabel string
	YLabel string
	Stroke string
	// YMin and YMax fix the vertical range; when YMax <= YMin it is fitted
	// to the data with 10% padding.
	YMin float64
	YMax float64
}

// DefaultPlotOptions is the excitation plot: P_ex against time on [0, 1].
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Width:  800,
		Height: 500,
		Title:  "Excitation probability of qubit",
		XLabel: "Time",
		YLabel: "P_ex",
		Stroke: "#00ccff",
		YMin:   0,
		YMax:   1,
	}
}

func (o PlotOptions) withDefaults() PlotOptions {
	d := DefaultPlotOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Stroke == "" {
		o.Stroke = d.Stroke
	}
	return o
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func padded(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}

// TrajectoryToSVG draws values against times with axes, ticks, a title and
// axis labels. It returns "" for fewer than two samples.
func TrajectoryToSVG(times, values []float64, opts PlotOptions) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}
	opts = opts.withDefaults()

	minX, maxX := bounds(times)
	if maxX == minX {
		minX, maxX = padded(minX, maxX)
	}
	minY, maxY := opts.YMin, opts.YMax
	if maxY <= minY {
		minY, maxY = padded(bounds(values))
	}

	plotW := float64(opts.Width - marginLeft - marginRight)
	plotH := float64(opts.Height - marginTop - marginBottom)
	px := func(x float64) float64 { return marginLeft + (x-minX)/(maxX-minX)*plotW }
	py := func(y float64) float64 { return marginTop + plotH - (y-minY)/(maxY-minY)*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	sb.WriteString(fmt.Sprintf(`<g stroke="#888899" stroke-width="1">
<line x1="%d" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%d" y1="%d" x2="%d" y2="%.1f"/>
</g>
`, marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH,
		marginLeft, marginTop, marginLeft, marginTop+plotH))

	sb.WriteString(`<g fill="#888899" font-family="monospace" font-size="12">` + "\n")
	for i := 0; i <= numTicks; i++ {
		f := float64(i) / numTicks
		xv := minX + f*(maxX-minX)
		yv := minY + f*(maxY-minY)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, px(xv), marginTop+plotH+18, tickLabel(xv)))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" text-anchor="end">%s</text>
`, marginLeft-8, py(yv)+4, tickLabel(yv)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="#ffffff" font-family="monospace" text-anchor="middle">
<text x="%d" y="24" font-size="16">%s</text>
<text x="%.1f" y="%d" font-size="13">%s</text>
<text x="18" y="%.1f" font-size="13" transform="rotate(-90 18 %.1f)">%s</text>
</g>
`, opts.Width/2, html.EscapeString(opts.Title),
		marginLeft+plotW/2, opts.Height-12, html.EscapeString(opts.XLabel),
		marginTop+plotH/2, marginTop+plotH/2, html.EscapeString(opts.YLabel)))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.Stroke))
	for i := range times {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(times[i]), py(values[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(times[i]), py(values[i])))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func tickLabel(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// WriteSVG renders the plot to path.
func WriteSVG(path string, times, values []float64, opts PlotOptions) error {
	svg := TrajectoryToSVG(times, values, opts)
	if svg == "" {
		return ErrNoData
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
