package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/bananascale/internal/domain"
)

// DefaultStateFile is the state file name used when none is configured.
const DefaultStateFile = "progress_state.json"

// stateDoc is the on-disk layout. last_percent is the key written by the
// first deployments and is still read.
type stateDoc struct {
	LastPercent       *int `json:"lastPercent,omitempty"`
	LegacyLastPercent *int `json:"last_percent,omitempty"`
}

// StateFileRepository implements ports.StateRepository using a JSON file.
type StateFileRepository struct {
	path string
}

// NewStateFileRepository creates a new StateFileRepository for the given file.
func NewStateFileRepository(path string) *StateFileRepository {
	if path == "" {
		path = DefaultStateFile
	}
	return &StateFileRepository{path: path}
}

// Load retrieves the last saved state from disk.
// Returns an empty state and nil error if the file is missing or its content
// is not a valid state document. Any other read failure is returned so the
// caller does not mistake an unreadable record for a first run.
func (r *StateFileRepository) Load(ctx context.Context) (domain.State, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.State{}, nil
		}
		return domain.State{}, err
	}

	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.State{}, nil
	}

	last := doc.LastPercent
	if last == nil {
		last = doc.LegacyLastPercent
	}
	if last == nil || *last < 0 || *last > domain.MaxPercent {
		return domain.State{}, nil
	}

	return domain.WithPercent(*last), nil
}

// Save persists the state atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *StateFileRepository) Save(ctx context.Context, state domain.State) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"

	data, err := json.Marshal(stateDoc{LastPercent: state.LastPercent})
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, r.path)
}

// Path returns the full path to the state file.
func (r *StateFileRepository) Path() string {
	return r.path
}
