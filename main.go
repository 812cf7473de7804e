package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	application "tender-tracker/internal/applicationService"
	award "tender-tracker/internal/awardService"
	"tender-tracker/internal/config"
	"tender-tracker/internal/filestore"
	"tender-tracker/internal/notify"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/server"
	"tender-tracker/internal/sweeper"
	tender "tender-tracker/internal/tenderService"
	"tender-tracker/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		utils.Fatal("cannot load config", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, cleanup, err := buildRepository(ctx, cfg)
	if err != nil {
		utils.Fatal("cannot initialize storage", map[string]any{"error": err.Error()})
	}
	defer cleanup()

	notifier, closeNotifier, err := buildNotifier(cfg, repo)
	if err != nil {
		utils.Fatal("cannot initialize notifier", map[string]any{"error": err.Error()})
	}
	defer closeNotifier()

	files, err := filestore.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		utils.Fatal("cannot initialize file store", map[string]any{"error": err.Error()})
	}

	arbitrator := award.NewArbitrator(repo)
	tenderSvc := tender.NewService(repo)
	applicationSvc := application.NewService(repo, arbitrator)

	go sweeper.New(repo, cfg.SweepInterval).Run(ctx)
	go notify.NewDispatcher(repo, notifier, cfg.DispatchInterval, cfg.DispatchAttempts).Run(ctx)

	router := server.SetupRouter(server.Deps{
		Tenders:      tenderSvc,
		Applications: applicationSvc,
		Store:        repo,
		Files:        files,
		UploadDir:    cfg.UploadDir,
	})

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}
	go func() {
		utils.Info("server listening", map[string]any{"address": cfg.ServerAddress, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

func buildRepository(ctx context.Context, cfg config.Config) (repository.ProcurementDB, func(), error) {
	switch cfg.StorageDriver {
	case "postgres":
		if err := runMigrations(cfg.MigrationURL, cfg.PostgresConn); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresConn)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresRepo(pool), pool.Close, nil
	default:
		return repository.NewMemoryRepo(), func() {}, nil
	}
}

func runMigrations(migrationURL, dbSource string) error {
	m, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	utils.Info("database migrated", nil)
	return nil
}

func buildNotifier(cfg config.Config, repo repository.ProcurementDB) (notify.Notifier, func(), error) {
	sinks := []notify.Notifier{
		notify.NewInApp(repo),
		notify.NewEmailLog(),
	}
	closeNotifier := func() {}

	if cfg.NATSURL != "" {
		js, err := notify.ConnectJetStreamWithRetry(cfg.NATSURL, 20*time.Second)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, js)
		closeNotifier = js.Close
	}

	return notify.NewFanout(sinks...), closeNotifier, nil
}
