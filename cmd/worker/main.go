// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stock-ledger/internal/adapters/db"
	redis_a "github.com/ammerola/stock-ledger/internal/adapters/redis_adapter"
	"github.com/ammerola/stock-ledger/internal/adapters/storage"
	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/core/services"
	"github.com/ammerola/stock-ledger/internal/pkg/config"
	"github.com/ammerola/stock-ledger/internal/pkg/logger"
	"github.com/ammerola/stock-ledger/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConfig := databaseConfig(cfg)
	database, err := db.NewDatabase(ctx, dbConfig, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	reportDB, err := db.OpenReportDB(dbConfig)
	if err != nil {
		slogger.Error("failed to open report database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer reportDB.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddress(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	archive, err := newArchiveStorage(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize export storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Imports go through the same engine as the API so every row is ledgered
	jobs := db.NewJobRepository(database, slogger)
	publisher := workers.NewAsynqPublisher(asynqClient, jobs, slogger)
	products := redis_a.NewProductSnapshotCache(
		db.NewProductRepository(database, slogger), cache, cfg.Ledger.ProductCacheTTL, slogger)
	uow := db.NewUnitOfWork(database, slogger,
		db.WithSupplierStatus(func(next ports.SupplierStatusProvider) ports.SupplierStatusProvider {
			return redis_a.NewCachedSupplierStatus(next, cache, cfg.Ledger.SupplierCacheTTL, slogger)
		}),
		db.WithProductInvalidation(products))
	engine := services.NewStockMovementEngine(uow, publisher, slogger)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger),
		},
	)

	mux := asynq.NewServeMux()

	events := workers.NewLedgerEventProcessor(products, publisher, cfg.Ledger.LowStockThreshold, slogger)
	mux.HandleFunc(workers.TypeMovementRecorded, events.HandleMovementRecorded)
	mux.HandleFunc(workers.TypeStatusChanged, events.HandleStatusChanged)

	exports := workers.NewExportProcessor(db.NewReportRepository(reportDB, slogger), archive, jobs, workers.ExportConfig{
		KeyPrefix:     cfg.Export.KeyPrefix,
		PresignExpiry: cfg.Export.PresignExpiry,
		MaxRows:       cfg.Export.MaxRows,
	}, slogger)
	mux.HandleFunc(workers.TypeLedgerExport, exports.ProcessExport)

	imports := workers.NewImportProcessor(engine, jobs, cache, publisher, cfg.FileProcessing.TempDir, slogger)
	mux.HandleFunc(workers.TypeImportXLSX, imports.ProcessXLSX)
	mux.HandleFunc(workers.TypeImportDeliveryNote, imports.ProcessDeliveryNote)

	notifications := workers.NewNotificationProcessor(cfg.Notifications, slogger)
	mux.HandleFunc(workers.TypeSendNotification, notifications.SendNotification)

	cleanup := workers.NewCleanupProcessor(cfg.FileProcessing.TempDir, cfg.FileProcessing.TempFileMaxAge, slogger)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanup.CleanupTempFiles)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger:   newAsynqLogger(slogger),
		Location: time.UTC,
	})
	if cfg.FileProcessing.CleanupInterval > 0 {
		cronspec := fmt.Sprintf("@every %s", cfg.FileProcessing.CleanupInterval)
		if _, err := scheduler.Register(cronspec, workers.NewCleanupTempFilesTask()); err != nil {
			slogger.Error("failed to register cleanup schedule", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("export_storage", cfg.Export.Storage))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
}

func newArchiveStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ArchiveStorage, error) {
	switch cfg.Export.Storage {
	case "s3":
		return storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
	case "", "local":
		return storage.NewLocalStorage(cfg.Export.LocalDir, logger), nil
	default:
		return nil, fmt.Errorf("unknown export storage %q", cfg.Export.Storage)
	}
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
