package queries

import (
	"context"
	"math"
	"time"

	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// travelSpeedKMH is the assumed average courier travel speed used for
// arrival quotes. Quotes are a rough planning aid, not a promise.
const travelSpeedKMH = 30.0

// GetNearestCourierQueryHandler ranks active couriers with a fresh GPS
// position by distance from a site, nearest first, each with a quoted
// arrival estimate (travel at an assumed speed plus per-kind handling).
type GetNearestCourierQueryHandler struct {
	db      *gorm.DB
	matcher services.ProximityMatcher
}

// NewGetNearestCourierQueryHandler creates a handler for ranking queries.
func NewGetNearestCourierQueryHandler(db *gorm.DB) GetNearestCourierQueryHandler {
	return GetNearestCourierQueryHandler{
		db:      db,
		matcher: services.NewProximityMatcher(),
	}
}

// Handle executes the ranking query. Returns errs.ObjectNotFoundError when
// the site does not exist or has no registered coordinates; an empty slice
// when no courier has a fresh position.
func (h GetNearestCourierQueryHandler) Handle(
	ctx context.Context,
	query GetNearestCourierQuery,
) ([]GetNearestCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	origin, err := h.siteOrigin(ctx, query.SiteID())
	if err != nil {
		return nil, err
	}

	candidates, names, err := h.freshCandidates(ctx)
	if err != nil {
		return nil, err
	}

	ranked := h.matcher.SortedByDistance(origin, candidates)

	handling := services.EstimateMinutes(task.Kind("")) // default quote
	if query.Kind() != "" {
		handling = services.EstimateMinutes(query.Kind())
	}

	responses := make([]GetNearestCourierQueryResponse, 0, len(ranked))
	for _, r := range ranked {
		travel := int(math.Round(r.DistanceKM / travelSpeedKMH * 60))
		responses = append(responses, GetNearestCourierQueryResponse{
			CourierID:  r.CourierID,
			Name:       names[r.CourierID],
			DistanceKM: r.DistanceKM,
			ETAMinutes: travel + handling,
		})
	}

	return responses, nil
}

func (h GetNearestCourierQueryHandler) siteOrigin(ctx context.Context, siteID kernel.UUID) (kernel.GeoPoint, error) {
	var latitude, longitude *float64

	row := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude
		FROM sites
		WHERE id = ?
	`, siteID.Bytes()).Row()
	if err := row.Scan(&latitude, &longitude); err != nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundErrorWithCause("siteID", siteID, err)
	}
	if latitude == nil || longitude == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("site coordinates", siteID)
	}

	return kernel.NewGeoPoint(*latitude, *longitude)
}

// freshCandidates loads the single freshest in-retention ping per active
// courier, plus courier names for the response.
func (h GetNearestCourierQueryHandler) freshCandidates(ctx context.Context) ([]services.Candidate, map[kernel.UUID]string, error) {
	cutoff := time.Now().Add(-courier.PositionRetention)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (p.courier_id)
			p.courier_id,
			c.name,
			p.latitude,
			p.longitude
		FROM courier_positions p
		JOIN couriers c ON c.id = p.courier_id AND c.active
		WHERE p.recorded_at >= ?
		ORDER BY p.courier_id, p.recorded_at DESC
	`, cutoff).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var candidates []services.Candidate
	names := make(map[kernel.UUID]string)

	for rows.Next() {
		var id uuid.UUID
		var name string
		var latitude, longitude float64

		if err = rows.Scan(&id, &name, &latitude, &longitude); err != nil {
			return nil, nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		point, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			continue // skip unusable coordinates rather than failing the quote
		}

		candidates = append(candidates, services.Candidate{CourierID: courierID, Point: point})
		names[courierID] = name
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return candidates, names, nil
}
