package settings

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const stateKey = "state"

// State is what the playground remembers between runs.
type State struct {
	LastLevel string `json:"lastLevel"`
	Debug     bool   `json:"debug"`
	Tunables  string `json:"tunables,omitempty"`
}

type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store persists State through gdata.
type Store struct {
	items itemStore
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: open store: %w", err)
	}
	return &Store{items: m}, nil
}

// Load returns the saved state, or the zero State when nothing was saved.
func (s *Store) Load() (State, error) {
	if s == nil || s.items == nil {
		return State{}, nil
	}
	data, err := s.items.LoadItem(stateKey)
	if err != nil {
		return State{}, fmt.Errorf("settings: load state: %w", err)
	}
	if len(data) == 0 {
		return State{}, nil
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("settings: parse state: %w", err)
	}
	return st, nil
}

func (s *Store) Save(st State) error {
	if s == nil || s.items == nil {
		return nil
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("settings: encode state: %w", err)
	}
	if err := s.items.SaveItem(stateKey, data); err != nil {
		return fmt.Errorf("settings: save state: %w", err)
	}
	return nil
}
