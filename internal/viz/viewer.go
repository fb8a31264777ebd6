package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/experiment"
)

const (
	frequencyStep = 0.01
	amplitudeStep = 0.005
	gamma1Step    = 0.005
)

type solvedMsg struct {
	gen int
	run *experiment.Run
	err error
}

// Viewer is the Bubble Tea model behind RunInteractive.
type Viewer struct {
	ctx     context.Context
	logger  zerolog.Logger
	initial *config.Config
	cfg     *config.Config

	gen     int
	solving bool
	run     *experiment.Run
	err     error

	theme         int
	styles        Styles
	width, height int
}

func NewViewer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) Viewer {
	return Viewer{
		ctx:     ctx,
		logger:  logger,
		initial: cfg.Clone(),
		cfg:     cfg.Clone(),
		gen:     1,
		solving: true,
		styles:  NewStyles(Themes[0]),
		width:   DefaultPlotWidth + 10,
		height:  DefaultPlotHeight + 12,
	}
}

func (v Viewer) Init() tea.Cmd {
	return v.solve()
}

// solve runs the current parameters in the background, tagged with the
// current generation.
func (v Viewer) solve() tea.Cmd {
	gen, cfg, ctx, logger := v.gen, v.cfg.Clone(), v.ctx, v.logger
	return func() tea.Msg {
		run, err := experiment.New(cfg, experiment.WithLogger(logger)).Run(ctx)
		return solvedMsg{gen: gen, run: run, err: err}
	}
}

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case solvedMsg:
		// results of superseded parameters are dropped
		if msg.gen != v.gen {
			return v, nil
		}
		v.solving = false
		v.run, v.err = msg.run, msg.err
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "t":
		v.theme = (v.theme + 1) % len(Themes)
		v.styles = NewStyles(Themes[v.theme])
		return v, nil
	case "r":
		v.cfg = v.initial.Clone()
	case "right", "l":
		v.cfg.Frequency += frequencyStep
	case "left", "h":
		v.cfg.Frequency = max(v.cfg.Frequency-frequencyStep, frequencyStep)
	case "up", "k":
		v.cfg.Amplitude += amplitudeStep
	case "down", "j":
		v.cfg.Amplitude = max(v.cfg.Amplitude-amplitudeStep, 0)
	case "]":
		v.cfg.Gamma1 += gamma1Step
	case "[":
		v.cfg.Gamma1 = max(v.cfg.Gamma1-gamma1Step, 0)
	default:
		return v, nil
	}
	v.gen++
	v.solving = true
	return v, v.solve()
}

// Config returns the parameters currently shown.
func (v Viewer) Config() *config.Config { return v.cfg }

func (v Viewer) View() string {
	s := v.styles
	var b strings.Builder

	b.WriteString("\n  " + s.Title.Render("RABISIM") + "  " + s.Subtle.Render("driven qubit, excitation probability") + "\n")
	b.WriteString("  " + s.Separator(40) + "\n\n")

	params := []struct {
		label string
		value string
	}{
		{"frequency", fmt.Sprintf("%.3f", v.cfg.Frequency)},
		{"amplitude", fmt.Sprintf("%.3f", v.cfg.Amplitude)},
		{"gamma1", fmt.Sprintf("%.3f", v.cfg.Gamma1)},
		{"gamma2", fmt.Sprintf("%.3f", v.cfg.Gamma2)},
	}
	row := make([]string, 0, len(params))
	for _, p := range params {
		row = append(row, s.Label.Render(p.label+" ")+s.Value.Render(p.value))
	}
	b.WriteString("  " + strings.Join(row, "   ") + "\n\n")

	switch {
	case v.err != nil:
		b.WriteString("  " + s.Error.Render("error: "+v.err.Error()) + "\n")
	case v.run == nil:
		b.WriteString("  " + s.Subtle.Render("solving...") + "\n")
	default:
		plotW := min(max(v.width-12, 20), len(v.run.Excitation))
		plotH := min(max(v.height-14, 5), DefaultPlotHeight)
		b.WriteString(indent(RenderPlot(v.run.Excitation, plotW, plotH, "P_ex vs time"), "  ") + "\n\n")

		sum := v.run.Summary()
		period := "-"
		if sum.Period > 0 {
			period = fmt.Sprintf("%.2f", sum.Period)
		}
		b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s   %s %s\n",
			s.Label.Render("period"), s.Value.Render(period),
			s.Label.Render("max"), s.Value.Render(fmt.Sprintf("%.3f", sum.MaxExcitation)),
			s.Label.Render("late amplitude"), s.Value.Render(fmt.Sprintf("%.3f", sum.LateAmplitude)),
			s.Label.Render("elapsed"), s.Value.Render(v.run.Elapsed.Round(1e6).String())))
		if v.solving {
			b.WriteString("  " + s.Subtle.Render("updating...") + "\n")
		}
	}

	b.WriteString("\n  " + s.KeyHints("h/l", "frequency", "j/k", "amplitude", "[/]", "gamma1", "t", "theme", "r", "reset", "q", "quit") + "\n")
	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// RunInteractive opens the viewer on cfg and blocks until the user quits or
// ctx is canceled.
func RunInteractive(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	_, err := tea.NewProgram(NewViewer(ctx, cfg, logger), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
