package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fhuszti/propshot-ms-go/internal/cache"
	"github.com/fhuszti/propshot-ms-go/internal/config"
	"github.com/fhuszti/propshot-ms-go/internal/db"
	"github.com/fhuszti/propshot-ms-go/internal/download"
	"github.com/fhuszti/propshot-ms-go/internal/handler/api"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/propshot-ms-go/internal/middleware"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/progress"
	"github.com/fhuszti/propshot-ms-go/internal/renderer"
	"github.com/fhuszti/propshot-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/propshot-ms-go/internal/storage"
	"github.com/fhuszti/propshot-ms-go/internal/task"
	aggregateSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/aggregate"
	clipSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/clip"
	inpaintSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/inpaint"
	ledgerSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/ledger"
	musicSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/music"
	projectSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/project"
	videoSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/video"
	msuuid "github.com/fhuszti/propshot-ms-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBucket(ctx, strg, cfg.Bucket)

	editRepo := mariadb.NewImageEditRepository(database.DB)
	projectRepo := mariadb.NewProjectRepository(database.DB)
	clipRepo := mariadb.NewVideoClipRepository(database.DB)
	videoRepo := mariadb.NewVideoProjectRepository(database.DB)
	trackRepo := mariadb.NewMusicTrackRepository(database.DB)

	var ca port.Cache
	var reporter port.ProgressReporter
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		reporter = progress.NewRedisReporter(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis enabled")
	} else {
		ca = cache.NewNoop()
		reporter = progress.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured: caching and task dispatch are disabled")
	}

	dl := download.NewHTTPDownloader()
	ledger := ledgerSvc.NewLedger(editRepo, msuuid.NewUUID)
	rendererSvc := renderer.NewHTTPRenderer(ca)

	requestEditSvc := inpaintSvc.NewEditRequester(editRepo, projectRepo, ledger, strg, dl, dispatcher, cfg.Bucket)
	r.With(cMiddleware.WithID()).
		Post("/images/{id}/edits", api.RequestEditHandler(requestEditSvc))

	r.With(cMiddleware.WithID()).
		Get("/images/{id}", api.GetImageHandler(ledger))

	recomputeSvc := aggregateSvc.NewRecomputer(editRepo, projectRepo, clipRepo, videoRepo, ca)
	r.With(cMiddleware.WithID()).
		Delete("/images/{id}/versions", api.TruncateVersionsHandler(ledger, recomputeSvc))

	getProjectSvc := projectSvc.NewProjectGetter(projectRepo, editRepo)
	r.With(cMiddleware.WithID()).
		Get("/projects/{id}", api.GetProjectHandler(rendererSvc, getProjectSvc))

	requestClipSvc := clipSvc.NewClipRequester(clipRepo, dispatcher)
	r.With(cMiddleware.WithID()).
		Post("/clips/{id}/generate", api.RequestClipHandler(requestClipSvc))

	getVideoProjectSvc := videoSvc.NewVideoProjectGetter(videoRepo, clipRepo, trackRepo)
	r.With(cMiddleware.WithID()).
		Get("/video-projects/{id}", api.GetVideoProjectHandler(getVideoProjectSvc))

	listTracksSvc := musicSvc.NewMusicTrackLister(trackRepo)
	r.Get("/music-tracks", api.ListMusicTracksHandler(rendererSvc, listTracksSvc))

	r.Get("/tasks/{taskID}/progress", api.GetProgressHandler(reporter))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
