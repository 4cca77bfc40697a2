package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State is the single-owner timer state machine: either Idle (zero value) or
// Running with the draft fields of the in-progress entry. It survives process
// restarts through the state file and is reconciled against the database's
// unfinished entry on load, with the database authoritative when both exist.
type State struct {
	Running     bool      `json:"running"`
	EntryID     int64     `json:"entry_id,omitempty"`
	StartTime   time.Time `json:"start_time,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Store persists the timer state to a JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	os.MkdirAll(filepath.Dir(path), 0755)
	return &Store{path: path}
}

// Load returns the persisted state; a missing file means Idle.
func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		// a corrupt state file falls back to Idle, the db still has the truth
		return State{}, nil
	}
	return st, nil
}

// SetRunning persists a Running state.
func (s *Store) SetRunning(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.Running = true
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Clear resets the state to Idle.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Reconcile aligns the local state with the remote source of truth. A nil
// remote means no unfinished entry exists and any local Running state is
// stale; otherwise the remote state wins and is persisted.
func (s *Store) Reconcile(remote *State) (State, error) {
	if remote == nil {
		if err := s.Clear(); err != nil {
			return State{}, err
		}
		return State{}, nil
	}
	if err := s.SetRunning(*remote); err != nil {
		return State{}, err
	}
	st := *remote
	st.Running = true
	return st, nil
}
