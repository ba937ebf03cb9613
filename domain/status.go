package domain

import (
	"teamboard/domain/state"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectInProgress || s == ProjectCompleted
}

var (
	StateTodo       = state.State{Name: string(StatusTodo), Category: state.InBacklog}
	StateInProgress = state.State{Name: string(StatusInProgress), Category: state.InProcess}
	StateReview     = state.State{Name: string(StatusReview), Category: state.InProcess}
	StateDone       = state.State{Name: string(StatusDone), Category: state.Done}

	// StatusWorkflow moves forward one step at a time and may go back to any earlier state.
	StatusWorkflow = state.NewStateMachine(
		[]state.State{StateTodo, StateInProgress, StateReview, StateDone},
		[]state.Transition{
			{Name: "start", From: StateTodo, To: StateInProgress},
			{Name: "submit", From: StateInProgress, To: StateReview},
			{Name: "approve", From: StateReview, To: StateDone},
			{Name: "stop", From: StateInProgress, To: StateTodo},
			{Name: "reject", From: StateReview, To: StateInProgress},
			{Name: "reset", From: StateReview, To: StateTodo},
			{Name: "reopen", From: StateDone, To: StateReview},
			{Name: "restart", From: StateDone, To: StateInProgress},
			{Name: "rewind", From: StateDone, To: StateTodo},
		})
)

func (s Status) Valid() bool {
	_, found := StatusWorkflow.FindState(string(s))
	return found
}

// CheckStatusTransition validates a move on the status workflow. Staying on the same status is a no-op.
func CheckStatusTransition(from, to Status) error {
	if !to.Valid() {
		return ErrUnknownStatus
	}
	if from == to {
		return nil
	}
	if from == "" {
		return nil
	}
	if !StatusWorkflow.CanTransit(string(from), string(to)) {
		return ErrInvalidStatusTransition
	}
	return nil
}
