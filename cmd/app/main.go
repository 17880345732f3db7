package main

import (
	"fmt"
	"log/slog"
	"os"

	"staffing/cmd"
	httpin "staffing/internal/adapters/in/http"
	"staffing/internal/adapters/out/postgres/orderrepo"
	"staffing/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	var root cmd.CompositionRoot
	if configs.Store == "memory" {
		root = cmd.NewMemoryCompositionRoot(configs, logger)
		logger.Info("using in-memory store")
	} else {
		gormDB := mustOpenDatabase(configs, logger)
		root = cmd.NewCompositionRoot(configs, gormDB, logger)
	}

	jobManager := jobs.NewJobManager(
		root.CreateRefreshOrdersCommandHandler(),
		configs.ExpirySchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, relying on environment")
	}

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		Store:          envOrDefault("STORE", "postgres"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		ExpirySchedule: envOrDefault("EXPIRY_SCHEDULE", "0 * * * * *"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustOpenDatabase(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = orderrepo.Migrate(gormDB); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	return gormDB
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateDispatcher(),
		root.CreateObserveOrderModelsQueryHandler(),
		root.CreateGetRespondersWithAvailabilityQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
