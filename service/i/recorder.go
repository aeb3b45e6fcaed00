package i

import dmn "github.com/beka-birhanu/vinom-qlearn/domain"

// Recorder receives completed training runs for metrics.
type Recorder interface {
	ObserveRun(run *dmn.TrainingRun)
}
