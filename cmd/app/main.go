package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"parcels/cmd"
	_ "parcels/docs"
	httpadapter "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres/auditrepo"
	"parcels/internal/adapters/out/postgres/branchrepo"
	"parcels/internal/adapters/out/postgres/consolidationrepo"
	"parcels/internal/adapters/out/postgres/invoicerepo"
	"parcels/internal/adapters/out/postgres/notificationrepo"
	"parcels/internal/adapters/out/postgres/outboxrepo"
	"parcels/internal/adapters/out/postgres/shipmentrepo"
	"parcels/internal/adapters/out/postgres/webhookrepo"
	"parcels/internal/adapters/out/postgres/workerrepo"
	"parcels/internal/generated/servers"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		WebhookMaxAttempts: intEnvVariable("WEBHOOK_MAX_ATTEMPTS", 8),
		WebhookBaseBackoff: durationEnvVariable("WEBHOOK_BASE_BACKOFF", 30*time.Second),
		WebhookMaxBackoff:  durationEnvVariable("WEBHOOK_MAX_BACKOFF", time.Hour),
		WebhookPoolSize:    intEnvVariable("WEBHOOK_POOL_SIZE", 16),
		WebhookClaimTTL:    durationEnvVariable("WEBHOOK_CLAIM_TTL", time.Minute),
		WebhookSendTimeout: durationEnvVariable("WEBHOOK_SEND_TIMEOUT", 10*time.Second),

		OutboxBatchSize: intEnvVariable("OUTBOX_BATCH_SIZE", 100),

		InvoiceAmountCents: int64(intEnvVariable("INVOICE_AMOUNT_CENTS", 1500)),
		InvoiceCurrency:    envOrDefault("INVOICE_CURRENCY", "EUR"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnvVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.SLABreachDTO{},
		&branchrepo.BranchDTO{},
		&workerrepo.WorkerDTO{},
		&consolidationrepo.ConsolidationDTO{},
		&webhookrepo.SubscriberDTO{},
		&webhookrepo.DeliveryDTO{},
		&auditrepo.EntryDTO{},
		&invoicerepo.InvoiceDTO{},
		&notificationrepo.NotificationDTO{},
		&outboxrepo.EventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/openapi.json", func(c echo.Context) error {
		swagger, err := servers.GetSwagger()
		if err != nil {
			return c.String(http.StatusInternalServerError, "Failed to load OpenAPI spec")
		}
		return c.JSON(http.StatusOK, swagger)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server := httpadapter.NewServer(
		root.CreateCreateShipmentCommandHandler(),
		root.CreateTransitionShipmentCommandHandler(),
		root.CreateAssignWorkerCommandHandler(),
		root.CreateGetAuditEntriesQueryHandler(),
		root.CreateGetExhaustedDeliveriesQueryHandler(),
		root.CreateSuggestWorkerQueryHandler(),
	)
	servers.RegisterHandlers(e, server)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
