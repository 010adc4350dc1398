package task

import "fieldops/internal/pkg/errs"

// Status is a task's position in its lifecycle.
type Status string

const (
	// StatusCreated means the task exists but no courier could be assigned.
	StatusCreated Status = "created"
	// StatusAssigned means a courier has been selected but has not accepted.
	StatusAssigned Status = "assigned"
	// StatusAccepted means the assignee acknowledged the task.
	StatusAccepted Status = "accepted"
	// StatusInRoute means the assignee is traveling to the site.
	StatusInRoute Status = "in_route"
	// StatusOnSite means the assignee arrived at the site.
	StatusOnSite Status = "on_site"
	// StatusInProcess means the work is underway.
	StatusInProcess Status = "in_process"
	// StatusCompleted is terminal: the work is done.
	StatusCompleted Status = "completed"
	// StatusCancelled is terminal: an admin withdrew the task.
	StatusCancelled Status = "cancelled"
	// StatusRejected is terminal: the task was turned down.
	StatusRejected Status = "rejected"
	// StatusExpired is terminal: the task aged out without being worked.
	StatusExpired Status = "expired"
)

// StatusFromString maps a wire-level status tag onto the closed enum.
func StatusFromString(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusAssigned, StatusAccepted, StatusInRoute,
		StatusOnSite, StatusInProcess, StatusCompleted, StatusCancelled,
		StatusRejected, StatusExpired:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidError("status")
	}
}

// forwardChain is the single path the assignee drives a task along. The
// dual-confirmation shortcut is the only sanctioned way around it.
var forwardChain = map[Status]Status{
	StatusAccepted:  StatusInRoute,
	StatusInRoute:   StatusOnSite,
	StatusOnSite:    StatusInProcess,
	StatusInProcess: StatusCompleted,
}

// IsTerminal reports whether no further transitions exist from the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// accept returns the status after the assignee accepts, or an
// InvalidTransitionError when acceptance is not permitted from s.
func (s Status) accept() (Status, error) {
	if s != StatusAssigned {
		return s, errs.NewInvalidTransitionError("Task", string(s), "accept")
	}
	return StatusAccepted, nil
}

// advanceTo validates a single forward-chain step from s to next.
func (s Status) advanceTo(next Status) (Status, error) {
	if forwardChain[s] != next {
		return s, errs.NewInvalidTransitionError("Task", string(s), "advance to "+string(next))
	}
	return next, nil
}

// reassign returns the status after an admin reassignment, valid from any
// non-terminal status.
func (s Status) reassign() (Status, error) {
	if s.IsTerminal() {
		return s, errs.NewInvalidTransitionError("Task", string(s), "reassign")
	}
	return StatusAssigned, nil
}

// cancel returns the status after an admin cancellation, valid from any
// non-terminal status.
func (s Status) cancel() (Status, error) {
	if s.IsTerminal() {
		return s, errs.NewInvalidTransitionError("Task", string(s), "cancel")
	}
	return StatusCancelled, nil
}
