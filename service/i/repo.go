package i

import (
	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for training run persistence operations.
type RunRepo interface {
	// Save inserts or updates a training run in the repository.
	Save(run *dmn.TrainingRun) error

	// ByID retrieves a training run by its unique ID.
	// Returns an error if the run is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.TrainingRun, error)

	// Latest returns up to limit runs, most recent first.
	Latest(limit int) ([]*dmn.TrainingRun, error)
}
