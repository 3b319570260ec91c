package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vsol_site/internal/api"
	"vsol_site/internal/middleware"
	"vsol_site/internal/model"
	"vsol_site/internal/notification"
	"vsol_site/internal/repository"
	"vsol_site/internal/service"
	"vsol_site/pkg/logger"
	"vsol_site/pkg/ratelimit"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	rateLimitWindow = 15 * time.Minute
	rateLimitMax    = 5

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	limiter := ratelimit.New(rateLimitWindow, rateLimitMax)
	defer limiter.Stop()

	notifier := notification.New(cfg.Email)

	referralService := service.NewReferralService(repo, limiter, notifier)
	leadService := service.NewLeadService(repo)
	contactService := service.NewContactService(repo)
	consentService := service.NewConsentService(repo)

	consentService.Subscribe(func(deviceID string, level model.ConsentLevel) {
		zapLogger.Info("consent level changed",
			zap.String("device_id", deviceID),
			zap.String("level", string(level)))
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodDelete,
	}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))

	adminGuard := middleware.AdminKey(cfg.Admin.APIKey)

	a := router.Group("/api")
	api.NewReferralRoutes(a, referralService, adminGuard)
	api.NewLeadRoutes(a, leadService, adminGuard)
	api.NewContactRoutes(a, contactService, adminGuard)
	api.NewConsentRoutes(a, consentService)
	api.NewHealthRoutes(a, repo, cfg.Environment)

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received signal, closing server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}
}
