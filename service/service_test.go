package service

import (
	"context"
	"errors"
	"sync"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
)

var errStoreDown = errors.New("store down")

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Value(context.Context, uint64) (int64, error) { return 0, errStoreDown }
func (failingStore) Entries(context.Context) (map[uint64]int64, error) {
	return nil, errStoreDown
}
func (failingStore) SetValues(context.Context, map[uint64]int64) error { return errStoreDown }
func (failingStore) TrainingInfo(context.Context) (dmn.TrainingInfo, error) {
	return dmn.TrainingInfo{}, errStoreDown
}
func (failingStore) SetTrainingInfo(context.Context, dmn.TrainingInfo) error { return errStoreDown }

// recordingLogger keeps every message by level.
type recordingLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type recordingRecorder struct {
	runs []*dmn.TrainingRun
}

func (r *recordingRecorder) ObserveRun(run *dmn.TrainingRun) {
	r.runs = append(r.runs, run)
}
