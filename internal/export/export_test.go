package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectoryToSVG(t *testing.T) {
	times := []float64{0, 25, 50}
	values := []float64{0, 1, 0.5}

	svg := TrajectoryToSVG(times, values, DefaultPlotOptions())

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `width="800" height="500"`)
	assert.Contains(t, svg, "Excitation probability of qubit")
	assert.Contains(t, svg, ">Time</text>")
	assert.Contains(t, svg, ">P_ex</text>")

	// plot area is x in [70, 780], y in [40, 445]
	assert.Contains(t, svg, `d="M70.0,445.0 L425.0,40.0 L780.0,242.5"`)
	assert.Contains(t, svg, ">0.2</text>")
	assert.Contains(t, svg, ">50</text>")
}

func TestTrajectoryToSVGAutoRange(t *testing.T) {
	opts := PlotOptions{Width: 200, Height: 200, Title: "a < b"}
	svg := TrajectoryToSVG([]float64{0, 1}, []float64{2, 2}, opts)

	require.NotEmpty(t, svg)
	assert.Contains(t, svg, "a &lt; b")
	assert.Contains(t, svg, `stroke="#00ccff"`)
	assert.NotContains(t, svg, "NaN")
}

func TestTrajectoryToSVGTooShort(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG([]float64{0}, []float64{0}, DefaultPlotOptions()))
	assert.Empty(t, TrajectoryToSVG([]float64{0, 1}, []float64{0}, DefaultPlotOptions()))
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")

	require.NoError(t, WriteSVG(path, []float64{0, 1}, []float64{0, 1}, DefaultPlotOptions()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<path")

	err = WriteSVG(path, nil, nil, DefaultPlotOptions())
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []float64{0, 0.5}, []float64{0, 0.123456789}))
	assert.Equal(t, "time,p_ex\n0,0\n0.5,0.123456789\n", buf.String())

	assert.ErrorIs(t, WriteCSV(&buf, []float64{0}, nil), ErrNoData)
}
