package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times      []float64 `json:"times"`
	Excitation []float64 `json:"excitation"`
}

// ExportJSON writes a stored run, metadata and trajectory together, as
// indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       traj.Times,
		Excitation:  traj.Excitation,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
