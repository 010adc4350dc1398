package ports

import (
	"context"

	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for task aggregates.
type TaskRepository interface {
	// Add persists a new task aggregate to storage.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update persists changes to an existing task aggregate.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)
}

// ChangeRequestRepository defines the persistence contract for change
// request aggregates.
type ChangeRequestRepository interface {
	// Add persists a new change request aggregate to storage.
	Add(ctx context.Context, aggregate *changerequest.ChangeRequest) error

	// Update persists changes to an existing change request aggregate.
	Update(ctx context.Context, aggregate *changerequest.ChangeRequest) error

	// Get retrieves a change request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error)
}
