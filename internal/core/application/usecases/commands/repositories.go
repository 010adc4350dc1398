// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then post-commit side effects.
package commands

import (
	"context"

	"fieldops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SiteRepoFactory provides access to the site repository within a transaction.
	SiteRepoFactory interface {
		SiteRepository() ports.SiteRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PositionRepoFactory provides access to the position repository within a transaction.
	PositionRepoFactory interface {
		PositionRepository() ports.PositionRepository
	}

	// TaskRepoFactory provides access to the task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// ChangeRequestRepoFactory provides access to the change request repository within a transaction.
	ChangeRequestRepoFactory interface {
		ChangeRequestRepository() ports.ChangeRequestRepository
	}

	// PositionUoW manages transactions for position-only operations.
	PositionUoW interface {
		TxManager
		PositionRepoFactory
	}

	// PositionUoWFactory creates new position unit of work instances.
	PositionUoWFactory interface {
		Create() PositionUoW
	}

	// SiteUoW manages transactions for site-only operations.
	SiteUoW interface {
		TxManager
		SiteRepoFactory
	}

	// SiteUoWFactory creates new site unit of work instances.
	SiteUoWFactory interface {
		Create() SiteUoW
	}

	// TaskUoW manages transactions for task-centric operations that also
	// read couriers, sites and positions during dispatch.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
		SiteRepoFactory
		CourierRepoFactory
		PositionRepoFactory
	}

	// TaskUoWFactory creates new task unit of work instances.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// ChangeRequestUoW manages transactions for change-request operations,
	// which read positions for auto-assignment at creation and read and
	// debit sites on completion.
	ChangeRequestUoW interface {
		TxManager
		ChangeRequestRepoFactory
		SiteRepoFactory
		PositionRepoFactory
	}

	// ChangeRequestUoWFactory creates new change request unit of work instances.
	ChangeRequestUoWFactory interface {
		Create() ChangeRequestUoW
	}
)
