package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/core/ports"
)

// TriggerPanicAlertCommandHandler turns a panic button press into an
// urgent alert task. An alert is deliberately left unassigned: admins
// decide who responds, so no courier hunt runs and the task stays in
// created status. Every press fans out an admin broadcast.
type TriggerPanicAlertCommandHandler struct {
	uowFactory TaskUoWFactory
	images     ports.ImageStore
	dispatcher *effects.Dispatcher
	logger     *slog.Logger
}

// NewTriggerPanicAlertCommandHandler creates a handler for panic alerts.
func NewTriggerPanicAlertCommandHandler(uowFactory TaskUoWFactory, images ports.ImageStore, dispatcher *effects.Dispatcher, logger *slog.Logger) TriggerPanicAlertCommandHandler {
	return TriggerPanicAlertCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		dispatcher: dispatcher,
		logger:     logger.With("component", "panic_alert"),
	}
}

// Handle processes the panic alert command.
func (h TriggerPanicAlertCommandHandler) Handle(ctx context.Context, cmd TriggerPanicAlertCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Evidence is best-effort: the alert goes out with or without photos.
	var photoURLs []string
	for i, raw := range cmd.Photos() {
		url, err := h.images.Store(ctx, raw)
		if err != nil {
			h.logger.WarnContext(ctx, "photo upload failed, alert proceeds without it",
				"photo_index", i, "error", err)
			continue
		}
		if url != "" {
			photoURLs = append(photoURLs, url)
		}
	}

	description := cmd.Message()
	if description == "" {
		description = "panic button pressed"
	}

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

	alert, err := task.NewTask(cmd.TaskID(), task.KindAlert, cmd.SiteID(), cmd.TriggeredBy(), time.Now(), task.Attributes{
		Description: description,
		Priority:    task.PriorityUrgent,
		Photos:      photoURLs,
	})
	if err != nil {
		return err
	}

	if err = uow.TaskRepository().Add(ctx, alert); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, []effects.Pending{effects.ToAdmins(ports.Notification{
		Title:    "Panic alert",
		Body:     fmt.Sprintf("site %s raised an alert: %s", siteAggregate.Name(), description),
		Priority: string(task.PriorityUrgent),
		Metadata: map[string]string{"task_id": alert.ID().String(), "site_id": cmd.SiteID().String()},
	})})
	return nil
}
