package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/beka-birhanu/vinom-qlearn/qtable"
)

// Trainer runs training calls against the Q-table.
type Trainer interface {
	Train(ctx context.Context, params dmn.TrainingParams) (*dmn.TrainingRun, error)
}

// Agent answers read-only policy queries. Coordinates and actions are clamped, never rejected.
type Agent interface {
	QValue(ctx context.Context, row, col, action int) (int64, error)
	Policy(ctx context.Context, row, col int) (maze.Action, error)
	IsTrained(ctx context.Context) (bool, error)
	TrainingInfo(ctx context.Context) (dmn.TrainingInfo, error)
	MazeConfig() maze.Config
	IsWall(row, col int) bool
	Table(ctx context.Context) (qtable.Snapshot, error)
	Path(ctx context.Context) (qtable.Path, error)
	Render(ctx context.Context) (string, error)
}
