// Package state records scan history in SQLite. Each scan run is stored
// with its summary and per-detector counts so trends are inspectable
// without re-reading old baselines.
package state

import "time"

// ScanRun is one completed scan.
type ScanRun struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	BaselinePath string    `json:"baseline_path"`
	FilesScanned int       `json:"files_scanned"`
	SecretsFound int       `json:"secrets_found"`
	NewSecrets   int       `json:"new_secrets"`
}

// DetectorCount is the number of findings one detector produced in a run.
type DetectorCount struct {
	RunID string `json:"run_id"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Store is the persistence interface for scan history.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	SaveScanRun(run *ScanRun, counts []DetectorCount) error
	ListScanRuns(limit int) ([]*ScanRun, error)
	DetectorCounts(runID string) ([]DetectorCount, error)
}
