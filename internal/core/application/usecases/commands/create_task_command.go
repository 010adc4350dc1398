package commands

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/guard"
)

// ErrCreateTaskCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrCreateTaskCommandIsNotConstructed = errors.New(
	"CreateTaskCommand must be created via NewCreateTaskCommand constructor",
)

// CreateTaskCommand represents a request to open a new field task at a site.
type CreateTaskCommand struct { //nolint:recvcheck //using for validation
	taskID    kernel.UUID
	kind      task.Kind
	siteID    kernel.UUID
	requester actor.Actor
	attrs     task.Attributes
	photos    [][]byte
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateTaskCommand creates a command to open a task. Kind-specific
// attribute validation runs when the aggregate is built; the command only
// enforces identities and a known kind. The requester's role decides
// whether the handler hunts for an assignee. Raw photos, if any, are
// uploaded by the handler before the transaction opens.
func NewCreateTaskCommand(taskID kernel.UUID, kind task.Kind, siteID kernel.UUID, requester actor.Actor, attrs task.Attributes, photos [][]byte, createdAt time.Time) (CreateTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), siteID.Validate(), requester.Validate()); err != nil {
		return CreateTaskCommand{}, err
	}
	if _, err := task.KindFromString(string(kind)); err != nil {
		return CreateTaskCommand{}, err
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return CreateTaskCommand{
		taskID:    taskID,
		kind:      kind,
		siteID:    siteID,
		requester: requester,
		attrs:     attrs,
		photos:    photos,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateTaskCommandIsNotConstructed)
}

// TaskID returns the identity of the task to create.
func (c CreateTaskCommand) TaskID() kernel.UUID { return c.taskID }

// Kind returns the task's work classification.
func (c CreateTaskCommand) Kind() task.Kind { return c.kind }

// SiteID returns the owning site.
func (c CreateTaskCommand) SiteID() kernel.UUID { return c.siteID }

// Requester returns the creating actor.
func (c CreateTaskCommand) Requester() actor.Actor { return c.requester }

// CreatedBy returns the creating actor's identity.
func (c CreateTaskCommand) CreatedBy() kernel.UUID { return c.requester.ID() }

// Attributes returns the kind-specific creation attributes.
func (c CreateTaskCommand) Attributes() task.Attributes { return c.attrs }

// Photos returns the raw evidence images to upload.
func (c CreateTaskCommand) Photos() [][]byte { return c.photos }

// CreatedAt returns the creation time.
func (c CreateTaskCommand) CreatedAt() time.Time { return c.createdAt }
