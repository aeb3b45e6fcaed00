// Package agentapi exposes the maze, the learned policy and training over HTTP.
package agentapi

import (
	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/maze"
)

// Defaults applied to fields missing from a TrainRequest.
const (
	DefaultEpisodes = 50
	DefaultMaxSteps = 50
	DefaultEpsilon  = 2000
	DefaultAlpha    = 2000
	DefaultGamma    = 9000

	defaultRunsLimit = 20
)

// TrainRequest holds the training parameters. Omitted fields take the defaults.
type TrainRequest struct {
	Episodes *uint64 `json:"episodes"`
	MaxSteps *uint64 `json:"max_steps"`
	Epsilon  *uint64 `json:"epsilon"`
	Alpha    *uint64 `json:"alpha"`
	Gamma    *uint64 `json:"gamma"`
}

// Params resolves the request into training params.
func (r *TrainRequest) Params() dmn.TrainingParams {
	return dmn.TrainingParams{
		Episodes: valueOr(r.Episodes, DefaultEpisodes),
		MaxSteps: valueOr(r.MaxSteps, DefaultMaxSteps),
		Epsilon:  valueOr(r.Epsilon, DefaultEpsilon),
		Alpha:    valueOr(r.Alpha, DefaultAlpha),
		Gamma:    valueOr(r.Gamma, DefaultGamma),
	}
}

func valueOr(v *uint64, def uint64) uint64 {
	if v == nil {
		return def
	}
	return *v
}

// MazeResponse describes the maze layout.
type MazeResponse struct {
	maze.Config
	Walls  [][]bool `json:"walls"`
	Layout string   `json:"layout"`
}

// WallResponse reports whether the clamped cell is a wall.
type WallResponse struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Wall bool `json:"wall"`
}

// QValueResponse holds one stored value in Scale units.
type QValueResponse struct {
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Action maze.Action `json:"action"`
	Value  int64       `json:"value"`
	Scale  int64       `json:"scale"`
}

// PolicyResponse holds the greedy action of a cell.
type PolicyResponse struct {
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Action maze.Action `json:"action"`
	Name   string      `json:"name"`
	Symbol string      `json:"symbol"`
}

// TrainedResponse reports whether any training call has completed.
type TrainedResponse struct {
	Trained bool `json:"trained"`
}
