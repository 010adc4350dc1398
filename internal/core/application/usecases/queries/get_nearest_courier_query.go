package queries

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/guard"
)

// ErrGetNearestCourierQueryIsNotConstructed is returned when the query
// bypassed its constructor.
var ErrGetNearestCourierQueryIsNotConstructed = errors.New(
	"GetNearestCourierQuery must be created via NewGetNearestCourierQuery constructor",
)

// GetNearestCourierQuery ranks couriers with a fresh position by distance
// from a site and quotes an arrival estimate for the given work kind.
type GetNearestCourierQuery struct {
	siteID kernel.UUID
	kind   task.Kind

	guard guard.ConstructorGuard
}

// NewGetNearestCourierQuery creates a ranking query. An empty kind falls
// back to the default handling estimate.
func NewGetNearestCourierQuery(siteID kernel.UUID, kind task.Kind) (GetNearestCourierQuery, error) {
	if err := siteID.Validate(); err != nil {
		return GetNearestCourierQuery{}, err
	}
	if kind != "" {
		if _, err := task.KindFromString(string(kind)); err != nil {
			return GetNearestCourierQuery{}, err
		}
	}

	return GetNearestCourierQuery{
		siteID: siteID,
		kind:   kind,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearestCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetNearestCourierQueryIsNotConstructed)
}

// SiteID returns the origin site.
func (q GetNearestCourierQuery) SiteID() kernel.UUID { return q.siteID }

// Kind returns the work kind the estimate is quoted for, possibly empty.
func (q GetNearestCourierQuery) Kind() task.Kind { return q.kind }

// GetNearestCourierQueryResponse is one ranked courier. DistanceKM is
// rounded to two decimals for display.
type GetNearestCourierQueryResponse struct {
	CourierID  kernel.UUID
	Name       string
	DistanceKM float64
	ETAMinutes int
}
