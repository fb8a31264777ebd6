// Package storage persists runs as one directory each, holding metadata,
// a CSV trajectory and a msgpack copy of the same trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/experiment"
	"github.com/san-kum/rabisim/internal/export"
)

const (
	metadataFile = "metadata.json"
	csvFile      = "trajectory.csv"
	msgpackFile  = "trajectory.msgpack"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Config     *config.Config     `json:"config"`
	Integrator string             `json:"integrator"`
	Points     int                `json:"points"`
	Elapsed    float64            `json:"elapsed_seconds"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    experiment.Summary `json:"summary"`
}

// Trajectory is the excitation probability sampled on a time grid.
type Trajectory struct {
	Times      []float64 `msgpack:"times"`
	Excitation []float64 `msgpack:"excitation"`
}

// Save writes a run and returns its ID, "<name>_<uuid>".
func (s *Store) Save(run *experiment.Run) (string, error) {
	if err := config.ValidateName(run.Config.Name); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	runID := fmt.Sprintf("%s_%s", run.Config.Name, uuid.New().String())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       run.Config.Name,
		Timestamp:  time.Now().UTC(),
		Config:     run.Config,
		Integrator: run.Config.Integrator,
		Points:     len(run.Times),
		Elapsed:    run.Elapsed.Seconds(),
		Steps:      run.Stats.Steps,
		Metrics:    run.Metrics,
		Summary:    run.Summary(),
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	traj := Trajectory{Times: run.Times, Excitation: run.Excitation}
	if err := writeCSV(filepath.Join(runDir, csvFile), traj); err != nil {
		return "", err
	}

	packed, err := msgpack.Marshal(&traj)
	if err != nil {
		return "", fmt.Errorf("storage: encode trajectory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, msgpackFile), packed, 0644); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, traj Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return export.WriteCSV(f, traj.Times, traj.Excitation)
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads the msgpack copy of a run, falling back to the CSV
// file when the binary copy is missing.
func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	runDir := filepath.Join(s.baseDir, runID)

	data, err := os.ReadFile(filepath.Join(runDir, msgpackFile))
	switch {
	case err == nil:
		var traj Trajectory
		if err := msgpack.Unmarshal(data, &traj); err != nil {
			return nil, fmt.Errorf("storage: decode %s trajectory: %w", runID, err)
		}
		return &traj, nil
	case !os.IsNotExist(err):
		return nil, err
	}

	traj, err := readCSV(filepath.Join(runDir, csvFile))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return traj, err
}

func readCSV(path string) (*Trajectory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) < 2 {
		return traj, nil
	}

	traj.Times = make([]float64, 0, len(records)-1)
	traj.Excitation = make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		traj.Times = append(traj.Times, t)
		traj.Excitation = append(traj.Excitation, p)
	}
	return traj, nil
}
