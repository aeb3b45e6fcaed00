// Package store provides the Q-table store backends: in-process memory, Redis and MongoDB.
package store

import (
	"context"
	"sync"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
)

var _ i.QTableStore = &Memory{}

// Memory keeps the Q-table in process memory. Its state lives as long as the value.
type Memory struct {
	values map[uint64]int64
	info   dmn.TrainingInfo
	sync.RWMutex
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[uint64]int64)}
}

// Value implements i.QTableStore.
func (m *Memory) Value(_ context.Context, key uint64) (int64, error) {
	m.RLock()
	defer m.RUnlock()
	return m.values[key], nil
}

// Entries implements i.QTableStore.
func (m *Memory) Entries(_ context.Context) (map[uint64]int64, error) {
	m.RLock()
	defer m.RUnlock()
	entries := make(map[uint64]int64, len(m.values))
	for k, v := range m.values {
		entries[k] = v
	}
	return entries, nil
}

// SetValues implements i.QTableStore.
func (m *Memory) SetValues(_ context.Context, values map[uint64]int64) error {
	m.Lock()
	defer m.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

// TrainingInfo implements i.QTableStore.
func (m *Memory) TrainingInfo(_ context.Context) (dmn.TrainingInfo, error) {
	m.RLock()
	defer m.RUnlock()
	return m.info, nil
}

// SetTrainingInfo implements i.QTableStore.
func (m *Memory) SetTrainingInfo(_ context.Context, info dmn.TrainingInfo) error {
	m.Lock()
	defer m.Unlock()
	m.info = info
	return nil
}
