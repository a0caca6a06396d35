package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dejobratic/orderdesk/internal/config"
	"github.com/dejobratic/orderdesk/internal/database"
	"github.com/dejobratic/orderdesk/internal/kafka"
	"github.com/dejobratic/orderdesk/internal/orders/adapters"
	"github.com/dejobratic/orderdesk/internal/orders/adapters/confirm"
	httpadapter "github.com/dejobratic/orderdesk/internal/orders/adapters/http"
	"github.com/dejobratic/orderdesk/internal/orders/adapters/memory"
	orderspostgres "github.com/dejobratic/orderdesk/internal/orders/adapters/postgres"
	ordersapp "github.com/dejobratic/orderdesk/internal/orders/app"
	ordersmetrics "github.com/dejobratic/orderdesk/internal/orders/metrics"
	"github.com/dejobratic/orderdesk/internal/orders/ports"
	"github.com/dejobratic/orderdesk/internal/report"
	"github.com/dejobratic/orderdesk/internal/telemetry"
)

const meterName = "github.com/dejobratic/orderdesk"

func main() {
	if err := run(); err != nil {
		slog.Error("orderdesk stopped", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := telemetry.ParseLevel(cfg.Telemetry.LogLevel)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logger := telemetry.NewLogger(os.Stdout, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, tel.Shutdown(shutdownCtx))
	}()

	meter := otel.GetMeterProvider().Meter(meterName)
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		return err
	}
	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return err
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		return err
	}
	httpMetrics, err := httpadapter.NewMetrics(meter)
	if err != nil {
		return err
	}

	repo, ready, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	events, closeEvents := openEventBus(cfg, logger)
	defer func() {
		err = errors.Join(err, closeEvents())
	}()

	defaultFormat, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return fmt.Errorf("parse REPORT_FORMAT: %w", err)
	}
	generators, err := reportGenerators(cfg.Report)
	if err != nil {
		return err
	}

	service := ordersapp.NewService(
		adapters.NewObservableRepository(repo, dbMetrics),
		confirm.ContextPrompt{},
		adapters.NewObservableEventBus(events, kafkaMetrics),
		generators,
		logger,
		orderMetrics,
	)

	// A failed initial load leaves an empty console; POST /v1/orders/refresh retries.
	if _, err := service.Refresh(ctx); err != nil {
		logger.WarnContext(ctx, "initial order load failed", "error", err)
	}

	mux := http.NewServeMux()
	httpadapter.RegisterHealth(mux, ready)
	httpadapter.NewHandler(service, defaultFormat, logger).Register(mux)

	handler := httpadapter.WithRecovery(
		httpadapter.WithLogging(
			httpadapter.WithMetrics(mux, httpMetrics),
			logger,
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

// openRepository returns the configured order store, its readiness check and a close func.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.OrderRepository, httpadapter.ReadinessCheck, func(), error) {
	if cfg.Storage.Backend == config.StorageMemory {
		logger.Info("using in-memory order store with demo data")
		return memory.NewDemoRepository(), nil, func() {}, nil
	}

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create database pool: %w", err)
	}

	repo := orderspostgres.NewRepository(pool)
	if cfg.Storage.SeedDemo {
		seeded, err := repo.SeedIfEmpty(ctx, memory.DemoOrders()...)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("seed demo orders: %w", err)
		}
		logger.Info("demo order seeding", "inserted", seeded)
	}

	ready := func(ctx context.Context) error {
		return database.CheckHealth(ctx, pool)
	}
	return repo, ready, pool.Close, nil
}

func openEventBus(cfg *config.Config, logger *slog.Logger) (ports.EventBus, func() error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return kafka.NewNoopEventBus(), func() error { return nil }
	}

	logger.Info("publishing order events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	return producer, producer.Close
}

func reportGenerators(cfg config.ReportConfig) (map[report.Format]report.Generator, error) {
	generators := make(map[report.Format]report.Generator, 2)

	pdfOpts := []report.Option{report.WithTitle(cfg.Title)}
	if cfg.FontPath != "" {
		ttf, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read report font: %w", err)
		}
		pdfOpts = append(pdfOpts, report.WithUTF8Font(ttf))
	}

	csvGen, err := report.New(report.FormatCSV)
	if err != nil {
		return nil, err
	}
	generators[report.FormatCSV] = csvGen

	pdfGen, err := report.New(report.FormatPDF, pdfOpts...)
	if err != nil {
		return nil, err
	}
	generators[report.FormatPDF] = pdfGen

	return generators, nil
}
