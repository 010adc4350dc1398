package main

import (
	"fmt"
	nethttp "net/http"
	"os"

	"fieldops/cmd"
	httpadapter "fieldops/internal/adapters/in/http"
	"fieldops/internal/adapters/out/notify"
	"fieldops/internal/adapters/out/postgres/changerequestrepo"
	"fieldops/internal/adapters/out/postgres/courierrepo"
	"fieldops/internal/adapters/out/postgres/siterepo"
	"fieldops/internal/adapters/out/postgres/taskrepo"
	"fieldops/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreatePurgeExpiredPositionsCommandHandler(),
		app.CreateSweepLowFundSitesCommandHandler(),
		app.Logger(),
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		MediaServiceURL: goDotEnvVariable("MEDIA_SERVICE_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&siterepo.SiteDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.PositionDTO{},
		&taskrepo.TaskDTO{},
		&changerequestrepo.ChangeRequestDTO{},
		&notify.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateRecordCourierPositionCommandHandler(),
		app.CreateCreateTaskCommandHandler(),
		app.CreateAcceptTaskCommandHandler(),
		app.CreateAdvanceTaskStatusCommandHandler(),
		app.CreateConfirmTaskCommandHandler(),
		app.CreateReassignTaskCommandHandler(),
		app.CreateTriggerPanicAlertCommandHandler(),
		app.CreateCreateChangeRequestCommandHandler(),
		app.CreateApproveChangeRequestCommandHandler(),
		app.CreateRejectChangeRequestCommandHandler(),
		app.CreateCompleteChangeRequestCommandHandler(),
		app.CreateGetCourierPositionsQueryHandler(),
		app.CreateGetNearestCourierQueryHandler(),
		app.CreateGetTasksQueryHandler(),
		app.CreateGetChangeRequestsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
