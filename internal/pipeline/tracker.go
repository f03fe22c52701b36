package pipeline

import (
	"sync"

	"github.com/joseph-ayodele/doc-processor/constants"
)

// StageSnapshot is the read model the serving layer renders for one stage.
type StageSnapshot struct {
	Stage    constants.Stage       `json:"stage"`
	Status   constants.StageStatus `json:"status"`
	Progress int                   `json:"progress"`
}

type stageState struct {
	status   constants.StageStatus
	progress int
}

// Tracker holds per-stage status and progress for the current run. The
// orchestrator is the only writer and advances stages strictly in order;
// within a run neither status nor progress moves backward. The serving layer
// may snapshot concurrently while a run is in flight, hence the lock.
type Tracker struct {
	mu     sync.RWMutex
	stages map[constants.Stage]*stageState
}

func NewTracker() *Tracker {
	t := &Tracker{stages: make(map[constants.Stage]*stageState, len(constants.Stages))}
	for _, s := range constants.Stages {
		t.stages[s] = &stageState{status: constants.StatusPending}
	}
	return t
}

// Reset returns every stage to pending/0. Called at run start.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, st := range t.stages {
		st.status = constants.StatusPending
		st.progress = 0
	}
}

// Start marks a stage in_progress at progress 0.
func (t *Tracker) Start(stage constants.Stage) {
	t.set(stage, constants.StatusInProgress, 0)
}

// Midpoint sets progress to 50 while the stage's underlying call is
// outstanding. A liveness signal for observers, not a completion fraction.
func (t *Tracker) Midpoint(stage constants.Stage) {
	t.set(stage, constants.StatusInProgress, 50)
}

// Complete marks a stage completed at progress 100.
func (t *Tracker) Complete(stage constants.Stage) {
	t.set(stage, constants.StatusCompleted, 100)
}

func (t *Tracker) set(stage constants.Stage, status constants.StageStatus, progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.stages[stage]; ok {
		st.status = status
		st.progress = progress
	}
}

// Status returns the current status and progress of one stage.
func (t *Tracker) Status(stage constants.Stage) (constants.StageStatus, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.stages[stage]
	if !ok {
		return "", 0
	}
	return st.status, st.progress
}

// Snapshot returns all stages in execution order.
func (t *Tracker) Snapshot() []StageSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]StageSnapshot, 0, len(constants.Stages))
	for _, s := range constants.Stages {
		st := t.stages[s]
		out = append(out, StageSnapshot{Stage: s, Status: st.status, Progress: st.progress})
	}
	return out
}
