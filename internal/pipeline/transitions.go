package pipeline

import "jobboard/internal/models"

// stage orders the forward pipeline. Accepted and rejected share the last
// stage; withdrawn sits outside it.
var stage = map[models.ApplicationStatus]int{
	models.StatusPending:            0,
	models.StatusReviewed:           1,
	models.StatusInterviewScheduled: 2,
	models.StatusInterviewCompleted: 3,
	models.StatusAccepted:           4,
	models.StatusRejected:           4,
}

// CanTransition reports whether the forward-only pipeline allows moving an
// application from one status to another. Re-applying the current status is
// always allowed so notes can be updated.
func CanTransition(from, to models.ApplicationStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == models.StatusWithdrawn {
		return true
	}
	return stage[to] > stage[from]
}

// Policy decides whether a transition is permitted.
type Policy interface {
	Allow(from, to models.ApplicationStatus) bool
}

// Unrestricted permits any status change, matching how applications have
// always been edited.
type Unrestricted struct{}

func (Unrestricted) Allow(from, to models.ApplicationStatus) bool {
	return to.IsValid()
}

// ForwardOnly permits only CanTransition moves.
type ForwardOnly struct{}

func (ForwardOnly) Allow(from, to models.ApplicationStatus) bool {
	return CanTransition(from, to)
}
