// Package repo persists training run history.
package repo

import (
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/google/uuid"
)

var _ i.RunRepo = &MemoryRunRepo{}

// MemoryRunRepo keeps runs in process memory.
type MemoryRunRepo struct {
	runs map[uuid.UUID]dmn.TrainingRun
	sync.RWMutex
}

// NewMemoryRunRepo creates an empty MemoryRunRepo.
func NewMemoryRunRepo() *MemoryRunRepo {
	return &MemoryRunRepo{runs: make(map[uuid.UUID]dmn.TrainingRun)}
}

// Save stores a copy of run, replacing any run with the same ID.
func (m *MemoryRunRepo) Save(run *dmn.TrainingRun) error {
	m.Lock()
	defer m.Unlock()
	m.runs[run.ID] = *run
	return nil
}

// ByID returns ErrRunNotFound for unknown IDs.
func (m *MemoryRunRepo) ByID(id uuid.UUID) (*dmn.TrainingRun, error) {
	m.RLock()
	defer m.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &run, nil
}

// Latest returns up to limit runs, newest first. A non-positive limit returns all of them.
func (m *MemoryRunRepo) Latest(limit int) ([]*dmn.TrainingRun, error) {
	m.RLock()
	defer m.RUnlock()

	runs := make([]*dmn.TrainingRun, 0, len(m.runs))
	for _, run := range m.runs {
		r := run
		runs = append(runs, &r)
	}
	sort.Slice(runs, func(a, b int) bool {
		return runs[a].StartedAt.After(runs[b].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
