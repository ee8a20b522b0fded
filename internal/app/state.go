package app

// State represents the position of a batch workflow in its state machine.
type State int

const (
	StateIdle State = iota
	StatePreviewing
	StateAwaitingConfirmation
	StateCommitting
	StateCompleted
	StateCancelled
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePreviewing:
		return "Previewing"
	case StateAwaitingConfirmation:
		return "AwaitingConfirmation"
	case StateCommitting:
		return "Committing"
	case StateCompleted:
		return "Completed"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// canTransition reports whether the workflow may move from one state to another.
func canTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StatePreviewing || to == StateCancelled
	case StatePreviewing:
		return to == StateAwaitingConfirmation || to == StateCancelled
	case StateAwaitingConfirmation:
		return to == StateCommitting || to == StateCancelled
	case StateCommitting:
		return to == StateCompleted
	default:
		return false
	}
}

// StateObserver is called after every workflow state change.
type StateObserver interface {
	OnStateChange(previous, current State, reason string)
}
