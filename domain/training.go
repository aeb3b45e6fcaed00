// Package domain holds the records shared by the training service, its stores and its API.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Scale is the fixed-point unit of every fraction and Q-value.
	Scale = 10_000

	// MaxEpisodes bounds the episodes run by a single training call.
	MaxEpisodes = 1000
	// MaxSteps bounds the steps of a single episode.
	MaxSteps = 100
)

// TrainingInfo is the metadata written at the end of every training call.
type TrainingInfo struct {
	Trained           bool   `json:"trained" bson:"trained"`
	EpisodesCompleted uint32 `json:"episodes_completed" bson:"episodesCompleted"`
}

// TrainingParams are the caller supplied training inputs.
// Epsilon, Alpha and Gamma are fractions in Scale units.
type TrainingParams struct {
	Episodes uint64 `json:"episodes" bson:"episodes"`
	MaxSteps uint64 `json:"max_steps" bson:"maxSteps"`
	Epsilon  uint64 `json:"epsilon" bson:"epsilon"`
	Alpha    uint64 `json:"alpha" bson:"alpha"`
	Gamma    uint64 `json:"gamma" bson:"gamma"`
}

// Clamped returns the params with every field forced into its allowed range.
func (p TrainingParams) Clamped() TrainingParams {
	return TrainingParams{
		Episodes: min(p.Episodes, MaxEpisodes),
		MaxSteps: min(p.MaxSteps, MaxSteps),
		Epsilon:  min(p.Epsilon, Scale),
		Alpha:    min(p.Alpha, Scale),
		Gamma:    min(p.Gamma, Scale),
	}
}

// TrainingRun records one completed training call.
type TrainingRun struct {
	ID           uuid.UUID      `json:"id" bson:"_id"`
	Requested    TrainingParams `json:"requested" bson:"requested"`
	Applied      TrainingParams `json:"applied" bson:"applied"`
	Episodes     uint32         `json:"episodes" bson:"episodes"`
	TotalSteps   uint64         `json:"total_steps" bson:"totalSteps"`
	GoalsReached uint32         `json:"goals_reached" bson:"goalsReached"`
	Overflows    uint32         `json:"overflows" bson:"overflows"`
	Updates      int            `json:"updates" bson:"updates"`
	StartedAt    time.Time      `json:"started_at" bson:"startedAt"`
	Duration     time.Duration  `json:"duration" bson:"duration"`
}
