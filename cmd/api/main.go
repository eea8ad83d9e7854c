package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirkbot2/speedaudit/internal/api/router"
	"github.com/kirkbot2/speedaudit/internal/audit"
	"github.com/kirkbot2/speedaudit/internal/config"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/repository/sqlite"
	"github.com/kirkbot2/speedaudit/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	engine := audit.NewEngine(audit.EngineConfig{
		Timeout:   cfg.Audit.Timeout,
		UserAgent: cfg.Audit.UserAgent,
	}, log)

	repo := sqlite.NewAuditRepository(db)
	service := services.NewAuditService(engine, repo, log)

	scheduler := services.NewScheduler(service, cfg.Audit, log)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	handler := router.New(router.Deps{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Service: service,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        addr,
			"environment": cfg.Server.Environment,
		}).Info("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "forced shutdown")
	}

	log.Info("server stopped")
}
