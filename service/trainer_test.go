package service

import (
	"context"
	"math"
	"testing"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/lock"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/repo"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/store"
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/beka-birhanu/vinom-qlearn/qtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultParams = dmn.TrainingParams{Episodes: 50, MaxSteps: 50, Epsilon: 2000, Alpha: 2000, Gamma: 9000}

func newTestTrainer(t *testing.T, s *store.Memory) *Trainer {
	t.Helper()
	tr, err := NewTrainer(&TrainerConfig{Store: s, Locker: lock.NewLocalLocker()})
	require.NoError(t, err)
	return tr
}

func key(row, col int, a maze.Action) uint64 {
	return qtable.Key(maze.Default, row, col, a)
}

func TestNewTrainer(t *testing.T) {
	_, err := NewTrainer(&TrainerConfig{Locker: lock.NewLocalLocker()})
	assert.ErrorIs(t, err, ErrNilStore)

	_, err = NewTrainer(&TrainerConfig{Store: store.NewMemory()})
	assert.ErrorIs(t, err, ErrNilLocker)

	tr, err := NewTrainer(&TrainerConfig{Store: store.NewMemory(), Locker: lock.NewLocalLocker()})
	require.NoError(t, err)
	assert.Same(t, maze.Default, tr.maze)
}

func TestExploration(t *testing.T) {
	assert.Equal(t, uint32(0), explorationRoll(0, 0))
	assert.Equal(t, uint32(7919), explorationRoll(1, 0))
	assert.Equal(t, uint32(6997), explorationRoll(0, 1))
	assert.Equal(t, uint32(4916), explorationRoll(1, 1))
	assert.Equal(t, uint32((999*7919+99*6997)%10000), explorationRoll(999, 99))

	assert.Equal(t, maze.Up, explorationAction(0, 0))
	assert.Equal(t, maze.Right, explorationAction(1, 0))
	assert.Equal(t, maze.Left, explorationAction(2, 0))
	assert.Equal(t, maze.Down, explorationAction(0, 1))
	assert.Equal(t, maze.Up, explorationAction(1, 1))
}

func TestTrain(t *testing.T) {
	ctx := context.Background()

	t.Run("untrained table reads zero", func(t *testing.T) {
		s := store.NewMemory()
		info, err := s.TrainingInfo(ctx)
		require.NoError(t, err)
		assert.False(t, info.Trained)

		v, err := s.Value(ctx, key(0, 0, maze.Up))
		require.NoError(t, err)
		assert.Zero(t, v)
	})

	t.Run("always exploring single step episodes", func(t *testing.T) {
		// Episodes 0..4 explore Up, Right, Left, Down, Up from the start cell.
		s := store.NewMemory()
		run, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 5, MaxSteps: 1, Epsilon: 10000, Alpha: 3333})
		require.NoError(t, err)

		entries, err := s.Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[uint64]int64{
			key(0, 0, maze.Up):    -5555,
			key(0, 0, maze.Down):  -3333,
			key(0, 0, maze.Left):  -3333,
			key(0, 0, maze.Right): -3333,
		}, entries)

		assert.Equal(t, uint32(5), run.Episodes)
		assert.Equal(t, uint64(5), run.TotalSteps)
		assert.Equal(t, 4, run.Updates)
		assert.Zero(t, run.GoalsReached)
		assert.Zero(t, run.Overflows)
	})

	t.Run("greedy ties pick the lowest action", func(t *testing.T) {
		// Step 0 takes Up and bumps the edge, step 1 takes Down, the next zero.
		s := store.NewMemory()
		_, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 1, MaxSteps: 2, Epsilon: 0, Alpha: 10000})
		require.NoError(t, err)

		entries, err := s.Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[uint64]int64{
			key(0, 0, maze.Up):   -10000,
			key(0, 0, maze.Down): -10000,
		}, entries)
	})

	t.Run("wall bump is penalized", func(t *testing.T) {
		s := store.NewMemory()
		require.NoError(t, s.SetValues(ctx, map[uint64]int64{
			key(0, 0, maze.Up):    -5,
			key(0, 0, maze.Down):  -5,
			key(0, 0, maze.Left):  -5,
			key(0, 1, maze.Up):    -5,
			key(0, 1, maze.Left):  -5,
			key(0, 1, maze.Right): -5,
		}))

		// Greedy: Right into (0,1), then Down into the wall at (1,1).
		_, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 1, MaxSteps: 2, Alpha: 10000})
		require.NoError(t, err)

		v, err := s.Value(ctx, key(0, 1, maze.Down))
		require.NoError(t, err)
		assert.Equal(t, int64(-10*qtable.Scale), v)
	})

	t.Run("training info reflects the clamped episodes", func(t *testing.T) {
		s := store.NewMemory()
		run, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 5000, MaxSteps: 500, Epsilon: 20000, Alpha: math.MaxUint64, Gamma: 10001})
		require.NoError(t, err)

		assert.Equal(t, dmn.TrainingParams{Episodes: 1000, MaxSteps: 100, Epsilon: 10000, Alpha: 10000, Gamma: 10000}, run.Applied)
		assert.Equal(t, uint64(5000), run.Requested.Episodes)
		assert.Equal(t, uint32(1000), run.Episodes)
		assert.LessOrEqual(t, run.TotalSteps, uint64(1000*100))

		info, err := s.TrainingInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrainingInfo{Trained: true, EpisodesCompleted: 1000}, info)
	})

	t.Run("small episode counts are kept", func(t *testing.T) {
		s := store.NewMemory()
		_, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 7, MaxSteps: 10})
		require.NoError(t, err)

		info, err := s.TrainingInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrainingInfo{Trained: true, EpisodesCompleted: 7}, info)
	})

	t.Run("zero episodes still marks trained", func(t *testing.T) {
		s := store.NewMemory()
		run, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{})
		require.NoError(t, err)
		assert.Zero(t, run.Updates)

		entries, err := s.Entries(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)

		info, err := s.TrainingInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, dmn.TrainingInfo{Trained: true}, info)
	})

	t.Run("identical calls give identical tables", func(t *testing.T) {
		a, b := store.NewMemory(), store.NewMemory()
		_, err := newTestTrainer(t, a).Train(ctx, defaultParams)
		require.NoError(t, err)
		_, err = newTestTrainer(t, b).Train(ctx, defaultParams)
		require.NoError(t, err)

		ea, err := a.Entries(ctx)
		require.NoError(t, err)
		eb, err := b.Entries(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, ea)
		assert.Equal(t, ea, eb)
	})

	t.Run("calls accumulate on the stored table", func(t *testing.T) {
		s := store.NewMemory()
		tr := newTestTrainer(t, s)
		_, err := tr.Train(ctx, defaultParams)
		require.NoError(t, err)
		first, err := s.Entries(ctx)
		require.NoError(t, err)

		_, err = tr.Train(ctx, defaultParams)
		require.NoError(t, err)
		second, err := s.Entries(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("trained agent reaches the goal", func(t *testing.T) {
		s := store.NewMemory()
		run, err := newTestTrainer(t, s).Train(ctx, dmn.TrainingParams{Episodes: 1000, MaxSteps: 100, Epsilon: 2000, Alpha: 2000, Gamma: 9000})
		require.NoError(t, err)
		assert.Positive(t, run.GoalsReached)

		fromLeft, err := s.Value(ctx, key(4, 3, maze.Right))
		require.NoError(t, err)
		fromAbove, err := s.Value(ctx, key(3, 4, maze.Down))
		require.NoError(t, err)
		assert.Positive(t, max(fromLeft, fromAbove))
	})

	t.Run("overflow stores zero and is reported", func(t *testing.T) {
		s := store.NewMemory()
		require.NoError(t, s.SetValues(ctx, map[uint64]int64{key(0, 0, maze.Up): math.MaxInt64}))
		logger := &recordingLogger{}
		tr, err := NewTrainer(&TrainerConfig{Store: s, Locker: lock.NewLocalLocker(), Logger: logger})
		require.NoError(t, err)

		// Exploration picks Up: target - MaxInt64 leaves the int64 range.
		run, err := tr.Train(ctx, dmn.TrainingParams{Episodes: 1, MaxSteps: 1, Epsilon: 10000, Alpha: 10000})
		require.NoError(t, err)
		assert.Equal(t, uint32(1), run.Overflows)

		v, err := s.Value(ctx, key(0, 0, maze.Up))
		require.NoError(t, err)
		assert.Zero(t, v)
		assert.Len(t, logger.warnings, 1)
	})
}

func TestTrainConcurrency(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocalLocker()
	s := store.NewMemory()
	tr, err := NewTrainer(&TrainerConfig{Store: s, Locker: locker})
	require.NoError(t, err)

	release, err := locker.Lock(ctx, trainLockName)
	require.NoError(t, err)

	_, err = tr.Train(ctx, defaultParams)
	assert.ErrorIs(t, err, ErrTrainingInProgress)

	info, err := s.TrainingInfo(ctx)
	require.NoError(t, err)
	assert.False(t, info.Trained)

	require.NoError(t, release())
	_, err = tr.Train(ctx, defaultParams)
	assert.NoError(t, err)
}

func TestTrainRecordsRun(t *testing.T) {
	runs := repo.NewMemoryRunRepo()
	rec := &recordingRecorder{}
	tr, err := NewTrainer(&TrainerConfig{Store: store.NewMemory(), Locker: lock.NewLocalLocker(), Runs: runs, Recorder: rec})
	require.NoError(t, err)

	run, err := tr.Train(context.Background(), defaultParams)
	require.NoError(t, err)

	saved, err := runs.ByID(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.TotalSteps, saved.TotalSteps)
	assert.Equal(t, defaultParams, saved.Applied)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, run.ID, rec.runs[0].ID)
}

func TestTrainStoreError(t *testing.T) {
	logger := &recordingLogger{}
	rec := &recordingRecorder{}
	tr, err := NewTrainer(&TrainerConfig{Store: failingStore{}, Locker: lock.NewLocalLocker(), Recorder: rec, Logger: logger})
	require.NoError(t, err)

	_, err = tr.Train(context.Background(), defaultParams)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, rec.runs)

	// The lock is released after a failed call.
	_, err = tr.Train(context.Background(), defaultParams)
	assert.ErrorIs(t, err, errStoreDown)
}
