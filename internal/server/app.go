// Package server initializes and runs the wound-monitoring backend: it opens
// the database, applies migrations, selects the classifier and image store,
// and serves the HTTP API until interrupted.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/logging"
	"github.com/aegislabs/aegis-backend/internal/server/classifier"
	"github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/server/httpapi"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/repomanager"
	"github.com/aegislabs/aegis-backend/internal/server/services"
	"github.com/aegislabs/aegis-backend/internal/server/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	cls, err := classifier.Select(ctx, cfg.ClassifierMode, cfg.ModelEndpoint, logger)
	if err != nil {
		if !errors.Is(err, common.ErrorUnavailable) {
			return nil, fmt.Errorf("classifier init error: %w", err)
		}
		// Required model is down: keep serving, the assess path reports 503
		// until the inference service comes back.
		logger.Warn(ctx, "classifier unavailable at startup", "error", err.Error())
		cls = nil
	}

	var images storage.ImageStore
	if cfg.S3BaseEndpoint != "" {
		images = storage.NewS3Store(cfg)
		logger.Info(ctx, "using s3 image store", "bucket", cfg.S3Bucket)
	} else {
		images = storage.NewLocalStore(cfg.UploadDir)
		logger.Info(ctx, "using local image store", "dir", cfg.UploadDir)
	}

	users := services.NewUserService(db, rm, cfg)
	assessments := services.NewAssessmentService(db, rm, cls, images, cfg)
	risks := services.NewRiskService(db, rm, cfg)

	httpServer := httpapi.NewServer(cfg, logger, users, assessments, risks)

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
