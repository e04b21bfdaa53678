package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/api"
	"seoulmarket/server/internal/database"
	"seoulmarket/server/internal/dataset"
	"seoulmarket/server/internal/metrics"
	"seoulmarket/server/internal/queue"
	"seoulmarket/server/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := cfg.NewLogger()

	salesSrc, rentalsSrc, err := cfg.Sources()
	if err != nil {
		logger.WithError(err).Fatal("Invalid data source configuration")
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		logger.WithError(err).Fatal("Invalid pipeline configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	events := queue.NewEventQueue(cfg.Database.QueueSize, logger)
	events.Subscribe(db.Record)
	events.Start()
	defer events.Close()

	m := metrics.New()
	store := dataset.NewStore(salesSrc, rentalsSrc, logger, events, m)

	// Load failures are served as 503 until the files are fixed.
	refresher := scheduler.NewScheduler(store, logger, cfg.Data.RefreshInterval)
	refresher.Start()
	defer refresher.Stop()

	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(store, db, opts, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
		Observer:    m,
		Metrics:     m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
}
