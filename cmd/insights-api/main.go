package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-insights/internal/api/http"
	"github.com/spec-kit/ticket-insights/internal/api/http/handlers"
	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/report"
	"github.com/spec-kit/ticket-insights/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Report.File == "" {
		logger.Fatal("REPORT_FILE not set")
	}

	rep, err := report.NewReport(cfg.Report.File, logger)
	if err != nil {
		logger.Fatal("failed to open report", zap.Error(err))
	}
	organization := org.NewOrganization()
	if err := rep.Populate(organization); err != nil {
		logger.Fatal("failed to populate organization", zap.Error(err))
	}

	analytics := service.NewAnalyticsService(service.AnalyticsDependencies{
		Report: rep,
		Org:    organization,
		Logger: logger,
	})
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, organization),
		Queries: handlers.NewQueriesHandler(analytics, metrics),
		Report:  handlers.NewReportHandler(rep, organization, metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
