package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// CreateTaskCommandHandler opens a new task and immediately tries to place
// it with a courier.
//
// Assignment policy:
//   - a courier opening a task keeps it for themselves, so no hunt runs
//     and the task stays in created status until they accept it;
//   - otherwise the nearest courier by fresh GPS position wins;
//   - with no fresh positions at all, any active courier is taken;
//   - with no active courier either, the task stays in created status and
//     admins are told.
//
// A change task additionally passes the distribution fund gate at creation.
// The gate only validates; the site float is not touched — change cash
// physically moves through the change-request flow.
type CreateTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	images     ports.ImageStore
	dispatcher *effects.Dispatcher
	logger     *slog.Logger
	matcher    services.ProximityMatcher
}

// NewCreateTaskCommandHandler creates a handler for task creation.
func NewCreateTaskCommandHandler(uowFactory TaskUoWFactory, images ports.ImageStore, dispatcher *effects.Dispatcher, logger *slog.Logger) CreateTaskCommandHandler {
	return CreateTaskCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		dispatcher: dispatcher,
		logger:     logger.With("component", "create_task"),
		matcher:    services.NewProximityMatcher(),
	}
}

// Handle processes the task creation command.
func (h CreateTaskCommandHandler) Handle(ctx context.Context, cmd CreateTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Uploads happen before the transaction so a slow media endpoint never
	// holds row locks. Evidence is best-effort: a failed upload costs the
	// task its photo URL, not its existence.
	photoURLs := h.uploadPhotos(ctx, cmd.Photos())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	siteAggregate, err := uow.SiteRepository().Get(ctx, cmd.SiteID())
	if err != nil {
		return err
	}

	attrs := cmd.Attributes()
	attrs.Photos = append(attrs.Photos, photoURLs...)

	newTask, err := task.NewTask(cmd.TaskID(), cmd.Kind(), cmd.SiteID(), cmd.CreatedBy(), cmd.CreatedAt(), attrs)
	if err != nil {
		return err
	}

	if newTask.Kind() == task.KindChange {
		if err = siteAggregate.CanDistribute(newTask.Change().Total()); err != nil {
			return err
		}
	}

	// A courier opening a task is claiming the work; hunting for an
	// assignee would hand it to somebody else.
	if !cmd.Requester().IsCourier() {
		assignee, err := h.pickCourier(ctx, uow, siteAggregate.Coordinates())
		if err != nil {
			return err
		}
		if assignee != nil {
			if err = newTask.Assign(*assignee, cmd.CreatedAt()); err != nil {
				return err
			}
		}
	}

	if err = uow.TaskRepository().Add(ctx, newTask); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, h.notifications(newTask, siteAggregate.Name(), cmd.Requester().IsCourier()))
	return nil
}

func (h CreateTaskCommandHandler) uploadPhotos(ctx context.Context, raws [][]byte) []string {
	urls := make([]string, 0, len(raws))
	for i, raw := range raws {
		url, err := h.images.Store(ctx, raw)
		if err != nil {
			h.logger.WarnContext(ctx, "photo upload failed, task proceeds without it",
				"photo_index", i, "error", err)
			continue
		}
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// pickCourier selects an assignee, or nil when nobody is available.
func (h CreateTaskCommandHandler) pickCourier(ctx context.Context, uow TaskUoW, origin *kernel.GeoPoint) (*kernel.UUID, error) {
	if origin != nil {
		cutoff := time.Now().Add(-courier.PositionRetention)
		positions, err := uow.PositionRepository().GetLatestAll(ctx, cutoff)
		if err != nil {
			return nil, err
		}

		candidates := make([]services.Candidate, 0, len(positions))
		for _, p := range positions {
			candidates = append(candidates, services.Candidate{CourierID: p.CourierID(), Point: p.Point()})
		}

		if best, ok := h.matcher.Nearest(*origin, candidates); ok {
			id := best.CourierID
			return &id, nil
		}
	}

	fallback, err := uow.CourierRepository().GetFirstActive(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id := fallback.ID()
	return &id, nil
}

func (h CreateTaskCommandHandler) notifications(t *task.Task, siteName string, courierRequested bool) []effects.Pending {
	var pending []effects.Pending

	if t.AssignedTo() != nil {
		pending = append(pending, effects.ToActor(*t.AssignedTo(), ports.Notification{
			Title:    "New task assigned",
			Body:     fmt.Sprintf("%s task at %s", t.Kind(), siteName),
			Priority: string(t.Priority()),
			Metadata: map[string]string{"task_id": t.ID().String()},
		}))
	} else if !courierRequested {
		pending = append(pending, effects.ToAdmins(ports.Notification{
			Title:    "Task left unassigned",
			Body:     fmt.Sprintf("no courier available for %s task at %s", t.Kind(), siteName),
			Priority: string(task.PriorityHigh),
			Metadata: map[string]string{"task_id": t.ID().String()},
		}))
	}

	if t.Kind() == task.KindAlert {
		pending = append(pending, effects.ToAdmins(ports.Notification{
			Title:    "Panic alert",
			Body:     fmt.Sprintf("site %s raised an alert", siteName),
			Priority: string(task.PriorityUrgent),
			Metadata: map[string]string{"task_id": t.ID().String()},
		}))
	}

	return pending
}
