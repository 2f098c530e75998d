package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailortalk/config"
	"tailortalk/cron"
	"tailortalk/handlers"
	"tailortalk/middleware"
	"tailortalk/models"
	"tailortalk/routes"
	"tailortalk/services/booking"
	"tailortalk/services/calendar"
	"tailortalk/services/chat"
	ai "tailortalk/services/intelligence"
	"tailortalk/services/session"
	"tailortalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg := config.AppConfig
	if err := cfg.Validate(); err != nil {
		logger.Fatal("main: invalid configuration", zap.Error(err))
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	gateway, err := calendar.NewGoogleGateway(ctx, logger, cfg.GoogleCredentials, cfg.CalendarID)
	if err != nil {
		logger.Fatal("main: failed to initialize calendar gateway", zap.Error(err))
	}
	tools := booking.NewTools(gateway,
		models.BusinessHours{Start: cfg.BusinessStartHour, End: cfg.BusinessEndHour},
		cfg.SlotMinutes, logger)

	agent, err := ai.NewGeminiAgent(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AgentMaxIterations, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize gemini agent", zap.Error(err))
	}
	defer agent.Close()

	opts := session.Options{TTL: cfg.SessionTTL, HistoryLimit: cfg.SessionHistoryLimit}
	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		client, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisSessionDB)
		if err != nil {
			logger.Fatal("main: failed to connect session store", zap.Error(err))
		}
		defer client.Close()
		store = session.NewRedisStore(client, opts)
	default:
		store = session.NewMemoryStore(opts)
	}
	logger.Info("Session store ready", zap.String("backend", cfg.SessionBackend), zap.Duration("ttl", cfg.SessionTTL))

	sweeper := cron.NewSweeper(store, cfg.SessionSweepInterval, logger)
	sweeper.Start()

	chatService := chat.NewService(store, agent, tools.Definitions(), logger)
	chatHandler := handlers.NewChatHandler(chatService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		ChatHandler:   chatHandler.HandleChat,
		HealthHandler: handlers.HealthHandler,
	}, middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
		return
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
