package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"web-analytics-dashboard/internal/config"
	"web-analytics-dashboard/internal/log"

	sessionsHttp "web-analytics-dashboard/internal/sessions/adapters/http/fiber"
	"web-analytics-dashboard/internal/sessions/adapters/instrumented"
	"web-analytics-dashboard/internal/sessions/adapters/store"
	sessionsUsecase "web-analytics-dashboard/internal/sessions/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "web-analytics-dashboard/docs"
)

// @title Web Analytics Dashboard API
// @version 1.0
// @description Distinct domains and session counts from the analytics store.
// @BasePath /
func main() {
	logger, _ := log.New("dashboard", os.Stderr, "info")

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger, err = log.New("dashboard", os.Stderr, cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid log level")
	}
	logger.Info().Interface("config", cfg).Msg("config loaded")

	// Store connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sessionStore, closeStore, err := store.Open(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to connect to the analytics store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reader, err := instrumented.NewInstrumentedReader(sessionStore, registry)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register store metrics")
	}

	// Usecases
	listDomainsUC := sessionsUsecase.NewListDomainsUseCase(reader, cfg.SortDomains)
	countSessionsUC := sessionsUsecase.NewCountSessionsUseCase(reader)
	dashboardUC := sessionsUsecase.NewDashboardUseCase(listDomainsUC, countSessionsUC)

	// HTTP (Fiber) app + handlers
	views, err := sessionsHttp.NewViews()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load views")
	}

	app := fiber.New(fiber.Config{
		AppName:               "web-analytics-dashboard",
		Views:                 views,
		DisableStartupMessage: true,
		ReadBufferSize:        16 * 1024,
	})

	app.Use(recover.New())
	app.Use(sessionsHttp.RequestID(false))
	accessLogger, _ := log.New("access_log", os.Stdout, cfg.LogLevel)
	app.Use(sessionsHttp.AccessLog(accessLogger))

	// dashboard
	dashboardHandler := sessionsHttp.NewDashboardHandler(dashboardUC, "Web analytics", logger)
	app.Get("/", dashboardHandler.Index)
	app.Post("/", dashboardHandler.Index)

	// api endpoints
	sessionsHandler := sessionsHttp.NewSessionsHandler(listDomainsUC, countSessionsUC, reader, logger)
	app.Get("/api/domains", sessionsHandler.ListDomains)
	app.Get("/api/sessions/count", sessionsHandler.CountSessions)
	app.Get("/healthz", sessionsHandler.Health)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
}
