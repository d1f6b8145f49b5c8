package main

import (
	"context"
	"log"

	"github.com/fhuszti/propshot-ms-go/internal/cache"
	"github.com/fhuszti/propshot-ms-go/internal/config"
	"github.com/fhuszti/propshot-ms-go/internal/db"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/repository/mariadb"
	aggregateSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/aggregate"
	reaperSvc "github.com/fhuszti/propshot-ms-go/internal/usecase/reaper"
)

// One-shot sweep of records stuck in processing, for operators and cron.
// The worker also runs this on a schedule.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	editRepo := mariadb.NewImageEditRepository(database.DB)
	projectRepo := mariadb.NewProjectRepository(database.DB)
	clipRepo := mariadb.NewVideoClipRepository(database.DB)
	videoRepo := mariadb.NewVideoProjectRepository(database.DB)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		ca = cache.NewNoop()
	}

	recompute := aggregateSvc.NewRecomputer(editRepo, projectRepo, clipRepo, videoRepo, ca)
	reaper := reaperSvc.NewStaleReaper(editRepo, clipRepo, recompute, cfg.StaleAfter)
	if err := reaper.ReapStale(context.Background()); err != nil {
		log.Fatalf("❌  Stale sweep failed: %v", err)
	}
	log.Println("✅  Stale sweep completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}
