package convergence

import (
	"time"
)

// recordingObserver counts cycle callbacks for assertions.
type recordingObserver struct {
	started      int
	aspects      int
	propagations int
	completed    int
	failed       int
}

func (r *recordingObserver) OnCycleStarted(string, string) {
	r.started++
}

func (r *recordingObserver) OnAspectCompleted(string, string, int, time.Duration) {
	r.aspects++
}

func (r *recordingObserver) OnPropagationCompleted(string, string, int) {
	r.propagations++
}

func (r *recordingObserver) OnCycleCompleted(string, time.Duration) {
	r.completed++
}

func (r *recordingObserver) OnCycleFailed(string, error, time.Duration) {
	r.failed++
}
