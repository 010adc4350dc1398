package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrGetChangeRequestsQueryIsNotConstructed is returned when the query
// bypassed its constructor.
var ErrGetChangeRequestsQueryIsNotConstructed = errors.New(
	"GetChangeRequestsQuery must be created via NewGetChangeRequestsQuery constructor",
)

// GetChangeRequestsQuery lists change requests visible to the caller.
// Admins see everything, site attendants their own site's requests,
// couriers the runs assigned to them.
type GetChangeRequestsQuery struct {
	caller actor.Actor
	status changerequest.Status

	guard guard.ConstructorGuard
}

// NewGetChangeRequestsQuery creates a role-scoped change request listing
// query. An empty status means no filter.
func NewGetChangeRequestsQuery(caller actor.Actor, status string) (GetChangeRequestsQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetChangeRequestsQuery{}, err
	}

	var parsed changerequest.Status
	if status != "" {
		var err error
		parsed, err = changerequest.StatusFromString(status)
		if err != nil {
			return GetChangeRequestsQuery{}, err
		}
	}

	return GetChangeRequestsQuery{
		caller: caller,
		status: parsed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetChangeRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetChangeRequestsQueryIsNotConstructed)
}

// Caller returns the requesting actor.
func (q GetChangeRequestsQuery) Caller() actor.Actor { return q.caller }

// Status returns the status filter, empty for none.
func (q GetChangeRequestsQuery) Status() changerequest.Status { return q.status }

// GetChangeRequestsQueryResponse is one change request row of the listing.
type GetChangeRequestsQueryResponse struct {
	ID              kernel.UUID
	SiteID          kernel.UUID
	Status          changerequest.Status
	Coins5          int
	Coins10         int
	TotalAmount     int
	RejectionReason string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
