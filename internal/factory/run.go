package factory

// Step identifies one stage of a production run.
type Step int

const (
	StepMixing Step = iota
	StepCooking
	StepQualityCheck
	StepPackaging
	StepDispatch

	// NumSteps is the count of production stages.
	NumSteps = 5
)

// Label returns the human-readable name for the step.
func (s Step) Label() string {
	switch s {
	case StepMixing:
		return "Mixing"
	case StepCooking:
		return "Cooking"
	case StepQualityCheck:
		return "Quality check"
	case StepPackaging:
		return "Packaging"
	case StepDispatch:
		return "Dispatch"
	default:
		return "Unknown"
	}
}

// Steps returns all production steps in order.
func Steps() [NumSteps]Step {
	return [NumSteps]Step{StepMixing, StepCooking, StepQualityCheck, StepPackaging, StepDispatch}
}

// RunState is the lifecycle of a production run.
type RunState int

const (
	RunIdle RunState = iota
	RunActive
	RunComplete
)

// Run tracks a single production run through its five steps.
type Run struct {
	state RunState
	step  int // index of the step currently in progress
}

// NewRun returns an idle run.
func NewRun() *Run {
	return &Run{}
}

// State returns the run lifecycle state.
func (r *Run) State() RunState { return r.state }

// Active reports whether a run is in progress.
func (r *Run) Active() bool { return r.state == RunActive }

// Complete reports whether the run finished all steps.
func (r *Run) Complete() bool { return r.state == RunComplete }

// Current returns the step in progress and true, or false when no run is
// active.
func (r *Run) Current() (Step, bool) {
	if r.state != RunActive {
		return 0, false
	}
	return Step(r.step), true
}

// StepDone reports whether the given step has already completed.
func (r *Run) StepDone(s Step) bool {
	switch r.state {
	case RunComplete:
		return true
	case RunActive:
		return int(s) < r.step
	default:
		return false
	}
}

// Start begins a new run at the first step. Starting an active run is a
// no-op returning false.
func (r *Run) Start() bool {
	if r.state == RunActive {
		return false
	}
	r.state = RunActive
	r.step = 0
	return true
}

// Advance completes the current step. It returns the step that finished and
// whether that completed the whole run. Advancing an inactive run returns
// done=false and ok=false.
func (r *Run) Advance() (finished Step, done bool, ok bool) {
	if r.state != RunActive {
		return 0, false, false
	}
	finished = Step(r.step)
	r.step++
	if r.step >= NumSteps {
		r.state = RunComplete
		return finished, true, true
	}
	return finished, false, true
}

// Reset returns the run to idle.
func (r *Run) Reset() {
	r.state = RunIdle
	r.step = 0
}
