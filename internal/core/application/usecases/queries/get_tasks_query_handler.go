package queries

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTasksQueryHandler lists tasks scoped to the caller's role.
type GetTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetTasksQueryHandler creates a handler for task listings.
func NewGetTasksQueryHandler(db *gorm.DB) GetTasksQueryHandler {
	return GetTasksQueryHandler{db: db}
}

// Handle executes the listing query, newest task first.
func (h GetTasksQueryHandler) Handle(
	ctx context.Context,
	query GetTasksQuery,
) ([]GetTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, kind, site_id, assigned_to, status, priority,
			description, amount, created_at, completed_at
		FROM tasks
		WHERE 1=1
	`
	args := make([]any, 0, 2)

	caller := query.Caller()
	switch {
	case caller.IsCourier():
		sql += " AND assigned_to = ?"
		args = append(args, caller.ID().Bytes())
	case caller.IsSite():
		sql += " AND site_id = ?"
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

	tasks := make([]GetTasksQueryResponse, 0)
	for rows.Next() {
		var resp GetTasksQueryResponse
		var id uuid.UUID
		var siteID uuid.UUID
		var assignedTo *uuid.UUID
		var kind, status, priority string
		var completedAt *time.Time

		if err = rows.Scan(&id, &kind, &siteID, &assignedTo, &status, &priority,
			&resp.Description, &resp.Amount, &resp.CreatedAt, &completedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SiteID, err = kernel.UUIDFromBytes(siteID[:]); err != nil {
			return nil, err
		}
		if assignedTo != nil {
			courierID, idErr := kernel.UUIDFromBytes(assignedTo[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.AssignedTo = &courierID
		}
		resp.Kind = task.Kind(kind)
		resp.Status = task.Status(status)
		resp.Priority = task.Priority(priority)
		resp.CompletedAt = completedAt

		tasks = append(tasks, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
