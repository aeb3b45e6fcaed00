package service

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/beka-birhanu/vinom-qlearn/qtable"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
)

// Agent answers read-only queries about the learned policy.
// Out of range coordinates and actions are clamped to the nearest valid value.
type Agent struct {
	maze   *maze.Maze
	store  i.QTableStore
	logger i.Logger
}

// NewAgent creates an Agent over store. A nil maze selects maze.Default.
func NewAgent(m *maze.Maze, store i.QTableStore, logger i.Logger) (*Agent, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if m == nil {
		m = maze.Default
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Agent{maze: m, store: store, logger: logger}, nil
}

// QValue returns the stored value of the clamped (row, col, action).
func (a *Agent) QValue(ctx context.Context, row, col, action int) (int64, error) {
	pos := a.maze.Clamp(row, col)
	v, err := a.store.Value(ctx, qtable.Key(a.maze, pos.Row, pos.Col, maze.ClampAction(action)))
	if err != nil {
		a.logger.Error(fmt.Sprintf("reading q-value (%d,%d,%d): %s", pos.Row, pos.Col, action, err))
		return 0, fmt.Errorf("reading q-value: %w", err)
	}
	return v, nil
}

// Policy returns the greedy action of the clamped cell.
func (a *Agent) Policy(ctx context.Context, row, col int) (maze.Action, error) {
	pos := a.maze.Clamp(row, col)
	entries := make(map[uint64]int64, maze.NumActions)
	for _, act := range maze.Actions {
		key := qtable.Key(a.maze, pos.Row, pos.Col, act)
		v, err := a.store.Value(ctx, key)
		if err != nil {
			a.logger.Error(fmt.Sprintf("reading policy (%d,%d): %s", pos.Row, pos.Col, err))
			return maze.Up, fmt.Errorf("reading policy: %w", err)
		}
		entries[key] = v
	}
	return qtable.New(a.maze, entries).BestAction(pos.Row, pos.Col), nil
}

// IsTrained reports whether a training call has completed.
func (a *Agent) IsTrained(ctx context.Context) (bool, error) {
	info, err := a.TrainingInfo(ctx)
	return info.Trained, err
}

// TrainingInfo returns the metadata written by the last training call.
func (a *Agent) TrainingInfo(ctx context.Context) (dmn.TrainingInfo, error) {
	info, err := a.store.TrainingInfo(ctx)
	if err != nil {
		return dmn.TrainingInfo{}, fmt.Errorf("reading training info: %w", err)
	}
	return info, nil
}

// MazeConfig returns the maze dimensions and endpoints.
func (a *Agent) MazeConfig() maze.Config {
	return a.maze.Config()
}

// IsWall reports whether the clamped cell is a wall.
func (a *Agent) IsWall(row, col int) bool {
	return a.maze.IsWall(row, col)
}

// Table returns a snapshot of the whole Q-table.
func (a *Agent) Table(ctx context.Context) (qtable.Snapshot, error) {
	table, err := a.load(ctx)
	if err != nil {
		return qtable.Snapshot{}, err
	}
	return table.Snapshot(), nil
}

// Path follows the greedy policy from the start cell.
func (a *Agent) Path(ctx context.Context) (qtable.Path, error) {
	table, err := a.load(ctx)
	if err != nil {
		return qtable.Path{}, err
	}
	return table.Rollout(), nil
}

// Render draws the maze, with policy arrows once the agent has been trained.
func (a *Agent) Render(ctx context.Context) (string, error) {
	trained, err := a.IsTrained(ctx)
	if err != nil {
		return "", err
	}
	if !trained {
		return a.maze.String(), nil
	}

	table, err := a.load(ctx)
	if err != nil {
		return "", err
	}
	return a.maze.Render(table.BestAction), nil
}

func (a *Agent) load(ctx context.Context) (*qtable.Table, error) {
	entries, err := a.store.Entries(ctx)
	if err != nil {
		a.logger.Error(fmt.Sprintf("loading q-table: %s", err))
		return nil, fmt.Errorf("loading q-table: %w", err)
	}
	return qtable.New(a.maze, entries), nil
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
