// Package automation runs scripted sequences of experiments described in
// YAML scenario files.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/experiment"
	"github.com/san-kum/rabisim/internal/storage"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Its YAML mapping holds config keys layered over the
// named preset (or the defaults), plus optional preset and save_as keys.
type Step struct {
	Preset string
	SaveAs string
	Config *config.Config
}

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Preset string `yaml:"preset"`
		SaveAs string `yaml:"save_as"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if head.Preset != "" {
		cfg = config.GetPreset(head.Preset)
		if cfg == nil {
			return fmt.Errorf("line %d: unknown preset %q", node.Line, head.Preset)
		}
	}
	if err := node.Decode(cfg); err != nil {
		return err
	}
	if head.SaveAs != "" {
		cfg.Name = head.SaveAs
	}

	s.Preset, s.SaveAs, s.Config = head.Preset, head.SaveAs, cfg
	return nil
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

type StepResult struct {
	Run *experiment.Run
	// RunID is empty unless the step was stored.
	RunID string
}

// RunScenario executes all steps in order. Steps with save_as are written to
// st when it is non-nil. Results of completed steps are returned with the
// first error.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger zerolog.Logger) ([]StepResult, error) {
	log := logger.With().Str("component", "scenario").Str("scenario", scenario.Name).Logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info().Int("step", i+1).Int("of", len(scenario.Steps)).Str("name", step.Config.Name).Msg("running step")

		run, err := experiment.New(step.Config, experiment.WithLogger(logger)).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := StepResult{Run: run}
		if step.SaveAs != "" && st != nil {
			res.RunID, err = st.Save(run)
			if err != nil {
				return results, fmt.Errorf("step %d: save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}
