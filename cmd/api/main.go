package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/config"
	"team-allocation-service/internal/repository"
	"team-allocation-service/internal/repository/inmemory"
	"team-allocation-service/internal/repository/postgres"
	"team-allocation-service/internal/service"
	httptransport "team-allocation-service/internal/transport/http"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, logger); err != nil {
		logger.Error("application startup error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	teamRepo, memberRepo, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	teamService := service.NewTeamService(teamRepo)
	memberService := service.NewMemberService(memberRepo, logger)
	allocationService := service.NewAllocationService(teamRepo, memberRepo, memberService, logger,
		allocation.WithConcurrency(cfg.ReconcileConcurrency),
		allocation.WithMetrics(allocation.NewMetrics(registry)),
	)

	httpHandler := httptransport.NewHandler(teamService, memberService, allocationService, httptransport.NewMetrics(registry), logger)

	router := httpHandler.RegisterRoutes(registry)

	srv := &http.Server{
		Addr:         cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "storage", cfg.StorageDriver)
		serverErrors <- srv.ListenAndServe()
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stopChan:
		logger.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("server shut down gracefully")
	return nil
}

func openStorage(cfg config.Config, logger *slog.Logger) (repository.TeamRepository, repository.MemberRepository, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		storage, err := inmemory.NewStorage()
		if err != nil {
			return nil, nil, nil, err
		}
		return inmemory.NewTeamRepo(storage), inmemory.NewMemberRepo(storage), func() {}, nil
	}

	logger.Info("connecting to database...")
	retrier := postgres.NewPostgresRetrier(cfg.DBConnectRetries, cfg.DBRetryDelay, postgres.NewPsqlConnection, logger)
	dbPool, err := postgres.NewPsqlConnectionWithRetrier(postgres.Config{DSN: cfg.DatabaseDSN}, retrier)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("database connection established")

	logger.Info("running database migrations...")
	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseDSN)
	if err != nil {
		dbPool.Close()
		return nil, nil, nil, err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		dbPool.Close()
		return nil, nil, nil, err
	}
	logger.Info("database migrations complete")

	return postgres.NewTeamRepo(dbPool), postgres.NewMemberRepo(dbPool), dbPool.Close, nil
}
