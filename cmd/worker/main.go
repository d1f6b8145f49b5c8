package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/propshot-ms-go/internal/cache"
	"github.com/fhuszti/propshot-ms-go/internal/config"
	"github.com/fhuszti/propshot-ms-go/internal/db"
	"github.com/fhuszti/propshot-ms-go/internal/download"
	workerHandler "github.com/fhuszti/propshot-ms-go/internal/handler/worker"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/progress"
	"github.com/fhuszti/propshot-ms-go/internal/provider"
	"github.com/fhuszti/propshot-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/propshot-ms-go/internal/storage"
	"github.com/fhuszti/propshot-ms-go/internal/task"
	aggregateSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/aggregate"
	clipSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/clip"
	inpaintSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/inpaint"
	reaperSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/reaper"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	initBucket(strg, cfg.Bucket)

	editRepo := mariadb.NewImageEditRepository(database.DB)
	projectRepo := mariadb.NewProjectRepository(database.DB)
	clipRepo := mariadb.NewVideoClipRepository(database.DB)
	videoRepo := mariadb.NewVideoProjectRepository(database.DB)

	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	reporter := progress.NewRedisReporter(cfg.RedisAddr, cfg.RedisPassword)
	dl := download.NewHTTPDownloader()
	imageGen := provider.NewKieClient(cfg.KieBaseURL, cfg.KieAPIKey)
	videoGen := provider.NewKlingClient(cfg.FalBaseURL, cfg.FalAPIKey)

	recomputeSvc := aggregateSvc.NewRecomputer(editRepo, projectRepo, clipRepo, videoRepo, ca)
	inpaintService := inpaintSvc.NewInpainter(editRepo, projectRepo, imageGen, dl, strg, recomputeSvc, reporter, cfg.Bucket)
	clipService := clipSvc.NewClipGenerator(clipRepo, videoRepo, videoGen, dl, strg, recomputeSvc, reporter, cfg.Bucket)
	reapService := reaperSvc.NewStaleReaper(editRepo, clipRepo, recomputeSvc, cfg.StaleAfter)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeInpaintImage, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseInpaintImagePayload(t)
		if err != nil {
			return err
		}
		return workerHandler.InpaintImageHandler(ctx, p, t.ResultWriter().TaskID(), inpaintService)
	})
	mux.HandleFunc(task.TypeGenerateClip, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGenerateClipPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.GenerateClipHandler(ctx, p, t.ResultWriter().TaskID(), clipService)
	})
	mux.HandleFunc(task.TypeReapStale, func(ctx context.Context, t *asynq.Task) error {
		return workerHandler.ReapStaleHandler(ctx, reapService)
	})

	scheduler := initScheduler(ctx, cfg)

	runWorker(ctx, mux, scheduler, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func initScheduler(ctx context.Context, cfg *config.Settings) *asynq.Scheduler {
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, nil)

	if _, err := scheduler.Register("@every 5m", task.NewReapStaleTask()); err != nil {
		logger.Errorf(ctx, "❌  Failed to schedule the stale sweep: %v", err)
		os.Exit(1)
	}

	return scheduler
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, scheduler *asynq.Scheduler, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:    10,
		RetryDelayFunc: task.RetryDelay,
	})

	// Run server and scheduler in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Errorf(context.Background(), "❌  Scheduler failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Shutdown()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
