package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/guard"
)

// ErrGetTasksQueryIsNotConstructed is returned when the query bypassed its
// constructor.
var ErrGetTasksQueryIsNotConstructed = errors.New(
	"GetTasksQuery must be created via NewGetTasksQuery constructor",
)

// GetTasksQuery lists tasks visible to the caller. Admins see everything,
// couriers their own assignments, site attendants their site's tasks. An
// optional status filter narrows the listing.
type GetTasksQuery struct {
	caller actor.Actor
	status task.Status

	guard guard.ConstructorGuard
}

// NewGetTasksQuery creates a role-scoped task listing query. An empty
// status means no filter.
func NewGetTasksQuery(caller actor.Actor, status string) (GetTasksQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetTasksQuery{}, err
	}

	var parsed task.Status
	if status != "" {
		var err error
		parsed, err = task.StatusFromString(status)
		if err != nil {
			return GetTasksQuery{}, err
		}
	}

	return GetTasksQuery{
		caller: caller,
		status: parsed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetTasksQueryIsNotConstructed)
}

// Caller returns the requesting actor.
func (q GetTasksQuery) Caller() actor.Actor { return q.caller }

// Status returns the status filter, empty for none.
func (q GetTasksQuery) Status() task.Status { return q.status }

// GetTasksQueryResponse is one task row of the listing.
type GetTasksQueryResponse struct {
	ID          kernel.UUID
	Kind        task.Kind
	SiteID      kernel.UUID
	AssignedTo  *kernel.UUID
	Status      task.Status
	Priority    task.Priority
	Description string
	Amount      int
	CreatedAt   time.Time
	CompletedAt *time.Time
}
