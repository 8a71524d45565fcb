package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// Store keeps scenario state and simulation history in process memory. It is used when no
// MongoDB URI is configured.
type Store struct {
	mu          sync.RWMutex
	values      map[string]string
	simulations []models.SimulationRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Load returns the value saved under key.
func (s *Store) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Save stores value under key, replacing any previous value.
func (s *Store) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SaveSimulation appends a simulation run to the history.
func (s *Store) SaveSimulation(_ context.Context, record models.SimulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulations = append(s.simulations, record)
	return nil
}

// ListSimulations returns up to limit runs, newest first.
func (s *Store) ListSimulations(_ context.Context, limit int) ([]models.SimulationRecord, error) {
	s.mu.RLock()
	out := make([]models.SimulationRecord, len(s.simulations))
	copy(out, s.simulations)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
