package memory

import (
	"context"
	"fmt"
	"sync"

	"darksiren/domain/core"
	"darksiren/domain/run"
)

// RunRepository is an in-memory run store for tests and database-less runs.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*run.Record
}

// NewRunRepository creates an empty in-memory repository.
func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[core.RunID]*run.Record)}
}

// SaveRun stores a run record.
func (r *RunRepository) SaveRun(_ context.Context, rec *run.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[rec.ID] = rec
	return nil
}

// GetRun fetches a run by ID.
func (r *RunRepository) GetRun(_ context.Context, id core.RunID) (*run.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return rec, nil
}

// Len returns the number of stored runs.
func (r *RunRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}
