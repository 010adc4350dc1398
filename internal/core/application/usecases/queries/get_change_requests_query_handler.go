package queries

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetChangeRequestsQueryHandler lists change requests scoped to the
// caller's role.
type GetChangeRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetChangeRequestsQueryHandler creates a handler for change request listings.
func NewGetChangeRequestsQueryHandler(db *gorm.DB) GetChangeRequestsQueryHandler {
	return GetChangeRequestsQueryHandler{db: db}
}

// Handle executes the listing query, newest request first.
func (h GetChangeRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetChangeRequestsQuery,
) ([]GetChangeRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, site_id, status, coins_5, coins_10, total_amount,
			rejection_reason, created_at, completed_at
		FROM change_requests
		WHERE 1=1
	`
	args := make([]any, 0, 2)

	caller := query.Caller()
	switch {
	case caller.IsSite():
		sql += " AND site_id = ?"
		args = append(args, caller.ID().Bytes())
	case caller.IsCourier():
		sql += " AND assigned_courier = ?"
		args = append(args, caller.ID().Bytes())
	}
	if query.Status() != "" {
		sql += " AND status = ?"
		args = append(args, string(query.Status()))
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]GetChangeRequestsQueryResponse, 0)
	for rows.Next() {
		var resp GetChangeRequestsQueryResponse
		var id, siteID uuid.UUID
		var status string
		var completedAt *time.Time

		if err = rows.Scan(&id, &siteID, &status, &resp.Coins5, &resp.Coins10,
			&resp.TotalAmount, &resp.RejectionReason, &resp.CreatedAt, &completedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SiteID, err = kernel.UUIDFromBytes(siteID[:]); err != nil {
			return nil, err
		}
		resp.Status = changerequest.Status(status)
		resp.CompletedAt = completedAt

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
