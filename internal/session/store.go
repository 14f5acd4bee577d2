package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/stratum/internal/errors"
)

const stateFileName = "state.json"

// Store handles session state persistence for one project
type Store struct {
	dir string
}

// NewStore creates a store rooted at the project's .stratum directory
func NewStore(projectDir string) *Store {
	return &Store{dir: filepath.Join(projectDir, ".stratum")}
}

// Path returns the canonical state file path
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateFileName)
}

// Load reads the persisted state. A missing or unparseable file is not
// an error: both return (nil, nil), meaning "no session yet". Callers
// must treat the two identically.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, nil
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, nil
	}

	if state.Version == 0 {
		state.Version = CurrentVersion
	}
	if state.LayerResults == nil {
		state.LayerResults = make(map[int]LayerResult)
	}

	return &state, nil
}

// Save persists the state, refreshing LastUpdated to the current time.
// The write goes to a fresh temporary file in the same directory which
// is then renamed over the canonical path; on any failure the temp file
// is removed and the previous state file is left untouched.
func (s *Store) Save(state *State) error {
	if state == nil {
		return errors.New(errors.ErrCodeStateWriteFailed, "session state is nil")
	}

	state.LastUpdated = time.Now().UTC()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create state directory", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal session state", err)
	}

	tmp, err := os.CreateTemp(s.dir, "state_*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "create temp state file", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "write temp state file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "close temp state file", err)
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "replace state file", err)
	}

	return nil
}
