package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/quantum"
	"github.com/san-kum/rabisim/internal/rabi"
)

const (
	DefaultDelta     = 0.0
	DefaultEps0      = 1.0
	DefaultAmplitude = 0.05
	DefaultFrequency = 1.0
	DefaultGamma1    = 0.025
	DefaultTEnd      = 50.0
	DefaultPoints    = 500
	DefaultTolerance = 1e-8
	DefaultMaxDt     = 0.05
)

const (
	StateGround  = "ground"
	StateExcited = "excited"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config describes one run of the driven qubit. Delta, Eps0, Amplitude and
// Frequency are in units of 2π; Params converts them to angular values.
type Config struct {
	Name         string  `yaml:"name" json:"name"`
	Delta        float64 `yaml:"delta" json:"delta"`
	Eps0         float64 `yaml:"eps0" json:"eps0"`
	Amplitude    float64 `yaml:"amplitude" json:"amplitude"`
	Frequency    float64 `yaml:"frequency" json:"frequency"`
	Gamma1       float64 `yaml:"gamma1" json:"gamma1"`
	Gamma2       float64 `yaml:"gamma2" json:"gamma2"`
	NTh          float64 `yaml:"n_th" json:"n_th"`
	TStart       float64 `yaml:"t_start" json:"t_start"`
	TEnd         float64 `yaml:"t_end" json:"t_end"`
	Points       int     `yaml:"points" json:"points"`
	Integrator   string  `yaml:"integrator" json:"integrator"`
	Tolerance    float64 `yaml:"tolerance" json:"tolerance"`
	MaxDt        float64 `yaml:"max_dt" json:"max_dt"`
	InitialState string  `yaml:"initial_state" json:"initial_state"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "resonant",
		Delta:        DefaultDelta,
		Eps0:         DefaultEps0,
		Amplitude:    DefaultAmplitude,
		Frequency:    DefaultFrequency,
		Gamma1:       DefaultGamma1,
		TEnd:         DefaultTEnd,
		Points:       DefaultPoints,
		Integrator:   "rk45",
		Tolerance:    DefaultTolerance,
		MaxDt:        DefaultMaxDt,
		InitialState: StateGround,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a YAML file on top of a copy of base. base is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ValidateName rejects run names that would not stay a single directory
// entry once used in a path.
func ValidateName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: name %q must not contain path separators or \"..\"", ErrInvalidConfig, name)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: points must be at least 2, got %d", ErrInvalidConfig, c.Points)
	}
	if !(c.TEnd > c.TStart) {
		return fmt.Errorf("%w: t_end (%g) must be after t_start (%g)", ErrInvalidConfig, c.TEnd, c.TStart)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be non-negative", ErrInvalidConfig)
	}
	if c.MaxDt <= 0 {
		return fmt.Errorf("%w: max_dt must be positive", ErrInvalidConfig)
	}
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator is empty", ErrInvalidConfig)
	}
	switch c.InitialState {
	case StateGround, StateExcited:
	default:
		return fmt.Errorf("%w: unknown initial_state %q", ErrInvalidConfig, c.InitialState)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the file units into the angular parameters of a run.
func (c *Config) Params() rabi.Params {
	return rabi.Params{
		Delta:  c.Delta * 2 * math.Pi,
		Eps0:   c.Eps0 * 2 * math.Pi,
		A:      c.Amplitude * 2 * math.Pi,
		W:      c.Frequency * 2 * math.Pi,
		Gamma1: c.Gamma1,
		Gamma2: c.Gamma2,
		NTh:    c.NTh,
	}
}

func (c *Config) TimeGrid() []float64 {
	return rabi.Linspace(c.TStart, c.TEnd, c.Points)
}

func (c *Config) InitialKet() quantum.Ket {
	if c.InitialState == StateExcited {
		return quantum.Basis(2, 1)
	}
	return rabi.GroundState()
}

// SolverConfig returns the step control for the run. A zero tolerance
// selects fixed steps of max_dt. Otherwise rk45 adapts its own step and
// fixed-step integrators are error-controlled by step doubling, starting
// from min(0.01, max_dt).
func (c *Config) SolverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Tolerance = c.Tolerance
	cfg.MaxDt = c.MaxDt
	cfg.Dt = math.Min(cfg.Dt, c.MaxDt)
	if c.Tolerance == 0 {
		cfg.Dt = c.MaxDt
	}
	return cfg
}
