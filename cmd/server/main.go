package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/config"
	"github.com/cytrico/frontdesk/internal/repository/mongodb"
	"github.com/cytrico/frontdesk/internal/repository/sheets"
	"github.com/cytrico/frontdesk/internal/scheduler"
	"github.com/cytrico/frontdesk/internal/server/handlers"
	"github.com/cytrico/frontdesk/internal/server/router"
	alertsvc "github.com/cytrico/frontdesk/internal/service/alerts"
	authsvc "github.com/cytrico/frontdesk/internal/service/auth"
	metricsvc "github.com/cytrico/frontdesk/internal/service/metrics"
	registersvc "github.com/cytrico/frontdesk/internal/service/register"
	reportsvc "github.com/cytrico/frontdesk/internal/service/report"
	"github.com/cytrico/frontdesk/pkg/clients/webhook"
	"github.com/cytrico/frontdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportBuilder := reportsvc.NewBuilder(cfg.Hotel.Name, baseLogger.Named("svc.report"))

	var notifier registersvc.Notifier
	var alertNotifier alertsvc.Notifier
	if cfg.Webhook.URL != "" {
		client := webhook.NewClient(cfg.Webhook)
		notifier = client
		alertNotifier = client
		baseLogger.Info("webhook notifications enabled")
	} else {
		baseLogger.Warn("webhook url missing, notifications disabled")
	}

	var exporter registersvc.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheets accounting export enabled")
	} else {
		baseLogger.Warn("sheet export id missing, accounting export disabled")
	}

	registerSvc := registersvc.NewService(context.Background(), mongoRepo, reportBuilder, notifier, exporter, baseLogger.Named("svc.register"))
	authSvc := authsvc.NewService(mongoRepo, baseLogger.Named("svc.auth"))
	alertSvc := alertsvc.NewService(mongoRepo, alertNotifier, baseLogger.Named("svc.alerts"))
	metricsSvc := metricsvc.NewService(mongoRepo, baseLogger.Named("svc.metrics"))

	engine := router.New(router.Handlers{
		Register: handlers.NewRegisterHandler(registerSvc, baseLogger.Named("handlers.register")),
		Shifts:   handlers.NewShiftsHandler(mongoRepo, registerSvc, metricsSvc, baseLogger.Named("handlers.shifts")),
		Auth:     handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Users:    handlers.NewUsersHandler(authSvc, baseLogger.Named("handlers.users")),
		Alerts:   handlers.NewAlertsHandler(alertSvc, baseLogger.Named("handlers.alerts")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Alerts, alertSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
