package queries

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/courier"

	"gorm.io/gorm"
)

// GetCourierPositionsQueryHandler reads a courier's GPS trail. Pings past
// the retention window are filtered here even if the purge job has not
// physically removed them yet.
type GetCourierPositionsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierPositionsQueryHandler creates a handler for trail queries.
func NewGetCourierPositionsQueryHandler(db *gorm.DB) GetCourierPositionsQueryHandler {
	return GetCourierPositionsQueryHandler{db: db}
}

// Handle executes the trail query, newest ping first.
func (h GetCourierPositionsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierPositionsQuery,
) ([]GetCourierPositionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-courier.PositionRetention)
	positions := make([]GetCourierPositionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			accuracy_m,
			speed_kmh,
			heading_deg,
			recorded_at
		FROM courier_positions
		WHERE courier_id = ? AND recorded_at >= ?
		ORDER BY recorded_at DESC
	`, query.CourierID().Bytes(), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p GetCourierPositionsQueryResponse
		if err = rows.Scan(&p.Latitude, &p.Longitude, &p.AccuracyM, &p.SpeedKMH, &p.HeadingDeg, &p.RecordedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}
