package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/notekeeper/internal/api"
	"github.com/EgehanKilicarslan/notekeeper/internal/config"
	"github.com/EgehanKilicarslan/notekeeper/internal/database"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
	"github.com/EgehanKilicarslan/notekeeper/internal/flash"
	internalgrpc "github.com/EgehanKilicarslan/notekeeper/internal/grpc"
	"github.com/EgehanKilicarslan/notekeeper/internal/handler"
	"github.com/EgehanKilicarslan/notekeeper/internal/logger"
	"github.com/EgehanKilicarslan/notekeeper/internal/middleware"
	"github.com/EgehanKilicarslan/notekeeper/internal/telemetry"
	"github.com/EgehanKilicarslan/notekeeper/internal/web"
	"github.com/EgehanKilicarslan/notekeeper/internal/worker"
)

func main() {
	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting notekeeper...",
		"environment", cfg.AppEnv,
		"database_driver", cfg.DatabaseDriver,
		"session_store", cfg.SessionStore,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		appLogger.Warn("⚠️ Tracing disabled", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(flushCtx)
	}()

	// 4. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("❌ Failed to access database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// 5. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	pool := worker.NewPool(appLogger)
	healthDeps := map[string]internalgrpc.Pinger{"database": sqlDB}

	// 6. Session store: Redis when configured and reachable, the session table otherwise
	var sessionStore database.SessionStore = sessionRepo
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient, err := database.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("⚠️ Failed to connect to Redis for sessions", "error", err)
			appLogger.Info("💡 Sessions will be stored in the database")
		} else {
			defer redisClient.Close()
			sessionStore = redisClient
			healthDeps["redis"] = redisClient
		}
	}
	if _, ok := sessionStore.(repository.SessionRepository); ok {
		pool.Every("session-cleanup", cfg.SessionCleanupInterval, time.Minute, func(ctx context.Context) error {
			purged, err := sessionRepo.DeleteExpired(ctx)
			if err == nil && purged > 0 {
				appLogger.Info("🧹 [Worker] Purged expired sessions", "count", purged)
			}
			return err
		})
	}

	// 7. Initialize Services
	sessionService := service.NewSessionService(sessionStore, cfg, appLogger)
	authService := service.NewAuthService(userRepo, sessionService, cfg, appLogger)
	noteService := service.NewNoteService(noteRepo, appLogger)

	// 8. Initialize Handlers & Middleware
	flashes := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure, appLogger)
	authHandler := handler.NewAuthHandler(authService, flashes, cfg.CookieSecure, appLogger)
	noteHandler := handler.NewNoteHandler(noteService, authService, flashes, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(sessionService, flashes, cfg.CookieSecure, appLogger)

	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Error("❌ Failed to load templates", "error", err)
		os.Exit(1)
	}

	r := api.SetupRouter(authHandler, noteHandler, authMiddleware, renderer, appLogger)

	// 9. Start gRPC health server
	healthServer := internalgrpc.NewHealthServer(healthDeps, appLogger)
	grpcServer := healthServer.NewServer()

	grpcAddr := fmt.Sprintf(":%s", cfg.ApiGrpcPort)
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		appLogger.Error("❌ Failed to listen for gRPC", "error", err)
		os.Exit(1)
	}

	pool.Submit(func(ctx context.Context) {
		healthServer.Monitor(ctx, cfg.HealthCheckInterval)
	})

	go func() {
		appLogger.Info("🔌 [Go] gRPC health server running...", "port", cfg.ApiGrpcPort)
		if err := grpcServer.Serve(grpcListener); err != nil {
			appLogger.Error("❌ gRPC Server failed", "error", err)
		}
	}()

	// 10. Start HTTP Server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("❌ HTTP Server failed to start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdown(appLogger, httpServer, grpcServer.GracefulStop, pool)
}

func shutdown(appLogger *slog.Logger, httpServer *http.Server, stopGRPC func(), pool *worker.Pool) {
	appLogger.Info("🛑 [Go] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}
	pool.Shutdown(5 * time.Second)
	stopGRPC()

	appLogger.Info("👋 [Go] Bye")
}
