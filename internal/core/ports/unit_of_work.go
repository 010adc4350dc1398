package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and repositories bound to the running transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after a
	// successful Commit is a no-op, which permits the deferred-rollback
	// idiom in command handlers.
	Rollback(ctx context.Context) error

	// SiteRepository returns a SiteRepository bound to the current transaction.
	SiteRepository() SiteRepository

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// PositionRepository returns a PositionRepository bound to the current transaction.
	PositionRepository() PositionRepository

	// TaskRepository returns a TaskRepository bound to the current transaction.
	TaskRepository() TaskRepository

	// ChangeRequestRepository returns a ChangeRequestRepository bound to the current transaction.
	ChangeRequestRepository() ChangeRequestRepository
}
