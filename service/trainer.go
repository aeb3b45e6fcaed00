package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/beka-birhanu/vinom-qlearn/qtable"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/google/uuid"
)

const (
	trainLockName = "qlearn:train"

	// Multipliers of the deterministic exploration mix. Changing them changes every trained table.
	rollEpisodeMul   = 7919
	rollStepMul      = 6997
	actionEpisodeMul = 3
	actionStepMul    = 5
)

var (
	ErrTrainingInProgress = errors.New("training already in progress")
	ErrNilStore           = errors.New("q-table store is required")
	ErrNilLocker          = errors.New("training locker is required")
)

// TrainerConfig holds the dependencies of a Trainer. Runs, Recorder and Logger are optional.
type TrainerConfig struct {
	Maze     *maze.Maze
	Store    i.QTableStore
	Locker   i.Locker
	Runs     i.RunRepo
	Recorder i.Recorder
	Logger   i.Logger
}

// Trainer runs bounded Q-learning episodes on the maze and commits the result to the store.
type Trainer struct {
	maze     *maze.Maze
	store    i.QTableStore
	locker   i.Locker
	runs     i.RunRepo
	recorder i.Recorder
	logger   i.Logger
}

// NewTrainer creates a Trainer. A nil Maze selects maze.Default.
func NewTrainer(c *TrainerConfig) (*Trainer, error) {
	if c.Store == nil {
		return nil, ErrNilStore
	}
	if c.Locker == nil {
		return nil, ErrNilLocker
	}

	t := &Trainer{
		maze:     c.Maze,
		store:    c.Store,
		locker:   c.Locker,
		runs:     c.Runs,
		recorder: c.Recorder,
		logger:   c.Logger,
	}
	if t.maze == nil {
		t.maze = maze.Default
	}
	if t.logger == nil {
		t.logger = nopLogger{}
	}
	return t, nil
}

// Train clamps params, runs the episodes and overwrites the training metadata.
//
// The whole table is read once, trained in memory and the changed entries are
// written back once. Calls are serialized through the locker; a call that finds
// the lock held fails with ErrTrainingInProgress. The loop itself does not
// observe ctx cancellation, it is bounded by MaxEpisodes*MaxSteps.
func (t *Trainer) Train(ctx context.Context, params dmn.TrainingParams) (*dmn.TrainingRun, error) {
	release, err := t.locker.Lock(ctx, trainLockName)
	if err != nil {
		if errors.Is(err, i.ErrLocked) {
			return nil, ErrTrainingInProgress
		}
		return nil, fmt.Errorf("acquiring training lock: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			t.logger.Warning(fmt.Sprintf("releasing training lock: %s", err))
		}
	}()

	entries, err := t.store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading q-table: %w", err)
	}

	run := &dmn.TrainingRun{
		ID:        uuid.New(),
		Requested: params,
		Applied:   params.Clamped(),
		StartedAt: time.Now().UTC(),
	}
	t.logger.Info(fmt.Sprintf("Training started: ID=%s episodes=%d max_steps=%d epsilon=%d alpha=%d gamma=%d",
		run.ID, run.Applied.Episodes, run.Applied.MaxSteps, run.Applied.Epsilon, run.Applied.Alpha, run.Applied.Gamma))

	table := qtable.New(t.maze, entries)
	runEpisodes(table, run)

	changed := table.Dirty()
	run.Updates = len(changed)
	if err := t.store.SetValues(ctx, changed); err != nil {
		return nil, fmt.Errorf("saving q-table: %w", err)
	}

	info := dmn.TrainingInfo{Trained: true, EpisodesCompleted: run.Episodes}
	if err := t.store.SetTrainingInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("saving training info: %w", err)
	}
	run.Duration = time.Since(run.StartedAt)

	if run.Overflows > 0 {
		t.logger.Warning(fmt.Sprintf("Training %s: %d updates overflowed and were stored as 0", run.ID, run.Overflows))
	}
	if t.runs != nil {
		if err := t.runs.Save(run); err != nil {
			t.logger.Error(fmt.Sprintf("Failed to record training run %s: %s", run.ID, err))
		}
	}
	if t.recorder != nil {
		t.recorder.ObserveRun(run)
	}

	t.logger.Info(fmt.Sprintf("Training finished: ID=%s steps=%d goals=%d updates=%d took=%s",
		run.ID, run.TotalSteps, run.GoalsReached, run.Updates, run.Duration))
	return run, nil
}

// runEpisodes applies the TD update loop to table using run.Applied and
// fills the counters of run.
func runEpisodes(table *qtable.Table, run *dmn.TrainingRun) {
	m := table.Maze()
	episodes := uint32(run.Applied.Episodes)
	maxSteps := uint32(run.Applied.MaxSteps)
	epsilon := uint32(run.Applied.Epsilon)
	alpha := int64(run.Applied.Alpha)
	gamma := int64(run.Applied.Gamma)

	for episode := uint32(0); episode < episodes; episode++ {
		pos := m.Start

		for step := uint32(0); step < maxSteps; step++ {
			var action maze.Action
			if explorationRoll(episode, step) < epsilon {
				action = explorationAction(episode, step)
			} else {
				action = table.BestAction(pos.Row, pos.Col)
			}

			move := m.Step(pos, action)

			currentQ := table.Get(pos.Row, pos.Col, action)
			var maxNextQ int64
			if !move.Terminal {
				maxNextQ = table.MaxValue(move.To.Row, move.To.Col)
			}

			// An overflowing update stores the 0 sentinel.
			newQ, ok := qtable.TDUpdate(currentQ, move.Reward, maxNextQ, alpha, gamma)
			if !ok {
				run.Overflows++
			}
			table.Set(pos.Row, pos.Col, action, newQ)
			run.TotalSteps++

			if move.Terminal {
				run.GoalsReached++
				break
			}
			pos = move.To
		}
	}

	run.Episodes = episodes
}

// explorationRoll is the deterministic stand-in for a uniform draw in [0, Scale).
func explorationRoll(episode, step uint32) uint32 {
	return (episode*rollEpisodeMul + step*rollStepMul) % qtable.Scale
}

// explorationAction picks the exploratory action for (episode, step).
func explorationAction(episode, step uint32) maze.Action {
	return maze.Action((episode*actionEpisodeMul + step*actionStepMul) % maze.NumActions)
}
