package testutil

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/propshot-ms-go/internal/cache"
	"github.com/fhuszti/propshot-ms-go/internal/db"
	"github.com/fhuszti/propshot-ms-go/internal/download"
	workerHandler "github.com/fhuszti/propshot-ms-go/internal/handler/worker"
	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/progress"
	"github.com/fhuszti/propshot-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/propshot-ms-go/internal/task"
	aggregateSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/aggregate"
	clipSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/clip"
	inpaintSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/inpaint"
)

// StartWorker starts an asynq worker processing pipeline tasks against the
// given generators, so tests can stub the AI providers. It returns a function
// to gracefully shut down the worker.
func StartWorker(dbConn *db.Database, strg port.Storage, redisAddr, bucket string, imageGen port.ImageGenerator, videoGen port.VideoGenerator) func() {
	editRepo := mariadb.NewImageEditRepository(dbConn.DB)
	projectRepo := mariadb.NewProjectRepository(dbConn.DB)
	clipRepo := mariadb.NewVideoClipRepository(dbConn.DB)
	videoRepo := mariadb.NewVideoProjectRepository(dbConn.DB)

	ca := cache.NewNoop()
	reporter := progress.NewRedisReporter(redisAddr, "")
	dl := download.NewHTTPDownloader()

	recompute := aggregateSvc.NewRecomputer(editRepo, projectRepo, clipRepo, videoRepo, ca)
	inpaintService := inpaintSvc.NewInpainter(editRepo, projectRepo, imageGen, dl, strg, recompute, reporter, bucket)
	clipService := clipSvc.NewClipGenerator(clipRepo, videoRepo, videoGen, dl, strg, recompute, reporter, bucket)

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

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency:    5,
		RetryDelayFunc: task.RetryDelay,
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
