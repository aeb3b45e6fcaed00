package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
)

// QTableStore is the durable key-value collaborator holding the Q-table and the training metadata.
// Keys that were never written read as zero.
type QTableStore interface {
	// Value returns the value stored under key, zero when absent.
	Value(ctx context.Context, key uint64) (int64, error)

	// Entries returns every stored key and value.
	Entries(ctx context.Context) (map[uint64]int64, error)

	// SetValues writes all given keys.
	SetValues(ctx context.Context, values map[uint64]int64) error

	// TrainingInfo returns the metadata of the last training call.
	TrainingInfo(ctx context.Context) (dmn.TrainingInfo, error)

	// SetTrainingInfo overwrites the training metadata.
	SetTrainingInfo(ctx context.Context, info dmn.TrainingInfo) error
}
