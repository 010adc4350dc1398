package cmd

import (
	"log/slog"
	"os"

	"fieldops/internal/adapters/out/imagestore"
	"fieldops/internal/adapters/out/notify"
	"fieldops/internal/adapters/out/postgres"
	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *effects.Dispatcher
	images     ports.ImageStore
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	images, err := imagestore.NewHTTPImageStore(config.MediaServiceURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: effects.NewDispatcher(notify.NewGormNotificationSink(gormDB), logger),
		images:     images,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateRecordCourierPositionCommandHandler() commands.RecordCourierPositionCommandHandler {
	var f commands.PositionUoWFactory = FuncPositionUoWFactory(func() commands.PositionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordCourierPositionCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateTaskCommandHandler() commands.CreateTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTaskCommandHandler(f, c.images, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAcceptTaskCommandHandler() commands.AcceptTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceTaskStatusCommandHandler() commands.AdvanceTaskStatusCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceTaskStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateConfirmTaskCommandHandler() commands.ConfirmTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmTaskCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateReassignTaskCommandHandler() commands.ReassignTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignTaskCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateTriggerPanicAlertCommandHandler() commands.TriggerPanicAlertCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTriggerPanicAlertCommandHandler(f, c.images, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateCreateChangeRequestCommandHandler() commands.CreateChangeRequestCommandHandler {
	var f commands.ChangeRequestUoWFactory = FuncChangeRequestUoWFactory(func() commands.ChangeRequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateChangeRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateApproveChangeRequestCommandHandler() commands.ApproveChangeRequestCommandHandler {
	var f commands.ChangeRequestUoWFactory = FuncChangeRequestUoWFactory(func() commands.ChangeRequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveChangeRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRejectChangeRequestCommandHandler() commands.RejectChangeRequestCommandHandler {
	var f commands.ChangeRequestUoWFactory = FuncChangeRequestUoWFactory(func() commands.ChangeRequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectChangeRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteChangeRequestCommandHandler() commands.CompleteChangeRequestCommandHandler {
	var f commands.ChangeRequestUoWFactory = FuncChangeRequestUoWFactory(func() commands.ChangeRequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteChangeRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreatePurgeExpiredPositionsCommandHandler() commands.PurgeExpiredPositionsCommandHandler {
	var f commands.PositionUoWFactory = FuncPositionUoWFactory(func() commands.PositionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeExpiredPositionsCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepLowFundSitesCommandHandler() commands.SweepLowFundSitesCommandHandler {
	var f commands.SiteUoWFactory = FuncSiteUoWFactory(func() commands.SiteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepLowFundSitesCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetCourierPositionsQueryHandler() queries.GetCourierPositionsQueryHandler {
	return queries.NewGetCourierPositionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNearestCourierQueryHandler() queries.GetNearestCourierQueryHandler {
	return queries.NewGetNearestCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTasksQueryHandler() queries.GetTasksQueryHandler {
	return queries.NewGetTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChangeRequestsQueryHandler() queries.GetChangeRequestsQueryHandler {
	return queries.NewGetChangeRequestsQueryHandler(c.gormDB)
}

type FuncPositionUoWFactory func() commands.PositionUoW

func (f FuncPositionUoWFactory) Create() commands.PositionUoW {
	return f()
}

type FuncSiteUoWFactory func() commands.SiteUoW

func (f FuncSiteUoWFactory) Create() commands.SiteUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncChangeRequestUoWFactory func() commands.ChangeRequestUoW

func (f FuncChangeRequestUoWFactory) Create() commands.ChangeRequestUoW {
	return f()
}
