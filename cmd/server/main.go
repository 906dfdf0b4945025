package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milicode/gym-panel/config"
	"github.com/milicode/gym-panel/internal/app/controller"
	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/repository"
	"github.com/milicode/gym-panel/internal/app/service"
	"github.com/milicode/gym-panel/internal/inflight"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/router"
	"github.com/milicode/gym-panel/internal/scheduler"
	"github.com/milicode/gym-panel/internal/storage"
	"github.com/milicode/gym-panel/internal/views"
	"github.com/milicode/gym-panel/internal/websocket"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/milicode/gym-panel/pkg/logger"
	"github.com/milicode/gym-panel/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	format := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		format = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      format,
		EnableColor: true,
	})

	logger.Info("Starting gym panel", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"api":         cfg.API.BaseURL,
		"log_level":   logLevel,
	})

	apiClient, err := gymapi.NewClient(gymapi.Config{
		BaseURL:      cfg.API.BaseURL,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	})
	if err != nil {
		logger.Fatal("Invalid branch API configuration", err)
	}
	apiCfg := apiClient.GetConfig()
	logger.Info("Branch API client ready", map[string]interface{}{
		"base_url":      apiCfg.BaseURL,
		"read_timeout":  apiCfg.ReadTimeout.String(),
		"write_timeout": apiCfg.WriteTimeout.String(),
	})

	// Draft store and in-flight registry: Redis when several instances share
	// sessions, memory otherwise.
	var (
		draftRepo repository.DraftRepository
		registry  inflight.Registry
		sweeper   *scheduler.DraftSweeper
	)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		draftRepo = repository.NewRedisDraftRepository(redis.GetClient(), cfg.Wizard.DraftTTL)
		registry = inflight.NewRedisRegistry(redis.GetClient(), cfg.Wizard.InFlightTTL)
	} else {
		memDrafts := repository.NewMemoryDraftRepository(cfg.Wizard.DraftTTL)
		memRegistry := inflight.NewMemoryRegistry(cfg.Wizard.InFlightTTL)
		draftRepo, registry = memDrafts, memRegistry

		sweeper = scheduler.NewDraftSweeper(cfg.Wizard.SweepSchedule, memDrafts, memRegistry)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("Failed to start draft sweeper", err)
		}
		defer sweeper.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The hub follows draft changes; it reads snapshots through the same
	// repository the services write to.
	hub := websocket.NewHub(draftRepo.Get)
	go hub.Run(ctx)

	// Initialize services
	draftService := service.NewDraftService(draftRepo, hub)
	wizardService := service.NewWizardService(draftService, apiClient, registry)
	branchService := service.NewBranchService(apiClient, registry)

	renderer, err := views.New()
	if err != nil {
		logger.Fatal("Failed to parse templates", err)
	}

	// Initialize controllers
	wizardController := controller.NewWizardController(wizardService, renderer, model.DefaultGazetteer(), cfg.Wizard.StepGating)
	branchController := controller.NewBranchController(branchService, renderer, storage.NewMediaPolicy(cfg.Server.MaxImageBytes))
	websocketController := controller.NewWebsocketController(hub, cfg.CORS.AllowedOrigins)
	healthController := controller.NewHealthController(cfg.Redis.Enabled)

	sessionMiddleware := middleware.NewSessionMiddleware(
		cfg.Session.Secret,
		cfg.Session.CookieName,
		cfg.Session.TTL,
		cfg.Session.Secure,
	)

	// Setup router
	r := router.NewRouter(
		wizardController,
		branchController,
		websocketController,
		healthController,
		sessionMiddleware,
		renderer,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	cancel()

	logger.Info("Server stopped successfully")
}
