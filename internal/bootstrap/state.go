package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateStore persists run state under a base directory (e.g. .ppenv/run).
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory.
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

// ReadLastRun loads the last run summary. A missing file is clean state,
// reported as (nil, nil).
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	f, err := os.Open(s.lastRunPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening last run file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var last LastRun
	if err := json.NewDecoder(f).Decode(&last); err != nil {
		return nil, fmt.Errorf("decoding last run: %w", err)
	}
	return &last, nil
}

// WriteLastRun saves the run summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return s.writeJSON(s.lastRunPath(), last)
}

// ReadStep loads a single step's result, nil if never recorded.
func (s *StateStore) ReadStep(step string) (*StepResult, error) {
	f, err := os.Open(filepath.Join(s.baseDir, "steps", step+".json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var res StepResult
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// WriteStepResult saves a step's result.
func (s *StateStore) WriteStepResult(res StepResult) error {
	return s.writeJSON(filepath.Join(s.baseDir, "steps", res.Step+".json"), res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

func (s *StateStore) writeJSON(path string, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
