package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

type Styles struct {
	Title  lipgloss.Style
	Subtle lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Key    lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style

	sparkHigh lipgloss.Style
	sparkMid  lipgloss.Style
	sparkLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Subtle: lipgloss.NewStyle().Foreground(t.Muted),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Key:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		sparkHigh: lipgloss.NewStyle().Foreground(t.High),
		sparkMid:  lipgloss.NewStyle().Foreground(t.Mid),
		sparkLow:  lipgloss.NewStyle().Foreground(t.Low),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline samples values down to width cells, scaled to their own range.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi := floats.Min(values), floats.Max(values)
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)

		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(s.sparkMid.Render(c))
		default:
			b.WriteString(s.sparkLow.Render(c))
		}
	}
	return b.String()
}

// KeyHints renders alternating key/description pairs on one line.
func (s Styles) KeyHints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.Key.Render(pairs[i])+" "+s.Subtle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func (s Styles) Separator(width int) string {
	return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
}
