package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	chatbot "github.com/siblingk/chatbot-sub001"
	"github.com/siblingk/chatbot-sub001/internal/config"
	"github.com/siblingk/chatbot-sub001/internal/handler"
	"github.com/siblingk/chatbot-sub001/internal/middleware"
	"github.com/siblingk/chatbot-sub001/internal/notify"
	"github.com/siblingk/chatbot-sub001/internal/repository"
	"github.com/siblingk/chatbot-sub001/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(chatbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	leadRepo := repository.NewLeads(pool)
	optionRepo := repository.NewDashboardOptions(pool)
	limits := repository.NewRateLimits(pool)

	// Owner notifications are optional
	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		tn, err := notify.NewTelegramNotifier(cfg.NotifyBotToken, cfg.NotifyChatID)
		if err != nil {
			slog.Error("failed to create telegram notifier", "error", err)
			os.Exit(1)
		}
		notifier = tn
		slog.Info("owner notifications enabled", "chat_id", cfg.NotifyChatID)
	}

	// Initialize services
	sessionService := service.NewSessionService()
	relayService := service.NewRelayService(cfg.ChatWebhookURL)
	leadService := service.NewLeadService(leadRepo, notifier)
	dashboardService := service.NewDashboardService(optionRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recover(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
		}),
	)

	h := handler.New(handler.Deps{
		Sessions:  sessionService,
		Relay:     relayService,
		Leads:     leadService,
		Dashboard: dashboardService,
		Limits:    limits,
		JWTSecret: cfg.JWTSecret,
		Secure:    cfg.IsProduction(),
	})
	h.Register(r)

	// Drop stale rate-limit windows in the background
	go func() {
		ticker := time.NewTicker(config.RateLimitCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := limits.CleanupExpired(context.Background()); err != nil {
					slog.Error("cleanup rate limits", "error", err)
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}
