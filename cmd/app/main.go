package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"logistics/cmd"
	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/networkrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager, err := startJobs(&app, configs, logger)
	if err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "logistics"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:        os.Getenv("GEMINI_BASE_URL"),
		GeminiTimeoutSeconds: envIntOrDefault("GEMINI_TIMEOUT_SECONDS", 10),

		AssignmentRetrySchedule:    envOrDefault("ASSIGNMENT_RETRY_SCHEDULE", "*/30 * * * * *"),
		TransitProgressionSchedule: envOrDefault("TRANSIT_PROGRESSION_SCHEDULE", "0 * * * * *"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, value)
	}
	return parsed
}

// openDatabase connects to postgres and migrates the schema. TranslateError
// is required: duplicate key detection in the repositories relies on
// gorm.ErrDuplicatedKey.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&networkrepo.HubDTO{},
		&networkrepo.AgentDTO{},
		&networkrepo.VehicleDTO{},
		&customerrepo.CustomerDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) (*jobs.JobManager, error) {
	assignNetworkHandler, err := app.CreateAssignNetworkCommandHandler()
	if err != nil {
		return nil, err
	}
	progressTransitHandler, err := app.CreateProgressTransitCommandHandler()
	if err != nil {
		return nil, err
	}

	jobManager := jobs.NewJobManager(
		assignNetworkHandler,
		progressTransitHandler,
		jobs.Schedules{
			AssignmentRetry:    configs.AssignmentRetrySchedule,
			TransitProgression: configs.TransitProgressionSchedule,
		},
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		return nil, err
	}
	return jobManager, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	createOrderHandler, err := app.CreateCreateOrderCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create order handler: %v", err)
	}
	advanceStatusHandler, err := app.CreateAdvanceOrderStatusCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create status handler: %v", err)
	}
	bulkAdvanceHandler, err := app.CreateBulkAdvanceStatusCommandHandler(advanceStatusHandler)
	if err != nil {
		log.Fatalf("Failed to create bulk status handler: %v", err)
	}
	assignToAgentHandler, err := app.CreateAssignOrdersToAgentCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create agent assignment handler: %v", err)
	}
	assignToVehicleHandler, err := app.CreateAssignOrdersToVehicleCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create vehicle assignment handler: %v", err)
	}
	registerHubHandler, err := app.CreateRegisterHubCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create hub registration handler: %v", err)
	}
	registerAgentHandler, err := app.CreateRegisterAgentCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create agent registration handler: %v", err)
	}
	registerVehicleHandler, err := app.CreateRegisterVehicleCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create vehicle registration handler: %v", err)
	}
	registerCustomerHandler, err := app.CreateRegisterCustomerCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create customer registration handler: %v", err)
	}

	server := httpin.NewServer(
		createOrderHandler,
		advanceStatusHandler,
		bulkAdvanceHandler,
		assignToAgentHandler,
		assignToVehicleHandler,
		registerHubHandler,
		registerAgentHandler,
		registerVehicleHandler,
		registerCustomerHandler,
		app.Estimator(),
		app.CreateGetWorkflowStatusQueryHandler(),
		app.CreateTrackOrderQueryHandler(),
		app.CreateGetHubDashboardQueryHandler(),
		app.CreateGetCustomerAnalyticsQueryHandler(),
	)

	e := echo.New()
	e.Validator = httpin.NewRequestValidator()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
