package metrics

import (
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.ObserveRun(&dmn.TrainingRun{Episodes: 10, TotalSteps: 120, GoalsReached: 4, Duration: 3 * time.Millisecond})
	rec.ObserveRun(&dmn.TrainingRun{Episodes: 5, TotalSteps: 30, GoalsReached: 5, Overflows: 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.runs))
	assert.Equal(t, 15.0, testutil.ToFloat64(rec.episodes))
	assert.Equal(t, 150.0, testutil.ToFloat64(rec.steps))
	assert.Equal(t, 9.0, testutil.ToFloat64(rec.goals))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.overflows))

	count, err := testutil.GatherAndCount(reg, "qlearn_training_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Panics(t, func() { NewRecorder(reg) }, "duplicate registration")
}
