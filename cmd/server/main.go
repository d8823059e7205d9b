package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherhub/api/internal/config"
	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/handler"
	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/notify"
	"github.com/gatherhub/api/internal/repository"
	"github.com/gatherhub/api/internal/service"
	"github.com/gatherhub/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationDays: cfg.JWT.ExpirationDays,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	revocationList := service.NewRevocationList(service.RevocationConfig{})
	defer revocationList.Stop()

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		Revoked:    revocationList,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	uploader := service.NewHTTPUploader(service.UploadConfig{
		Endpoint: cfg.Upload.Endpoint,
		APIKey:   cfg.Upload.APIKey,
		Timeout:  cfg.Upload.Timeout,
	})

	hub := notify.NewHub()
	defer hub.Close()

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		UserRepo:  userRepo,
		Uploader:  uploader,
		Notifier:  hub,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	healthHandler := handler.NewHealthHandler(db)
	wsHandler := notify.NewWSHandler(hub, logger)

	// Protected routes require a valid, unrevoked bearer token
	authMiddleware := middleware.Auth(tokenService, authService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints (public; logout reads its own bearer token)
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/guest", authHandler.Guest)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// Event endpoints
	mux.HandleFunc("GET /events", eventHandler.List)
	mux.HandleFunc("GET /events/{id}", eventHandler.Get)
	mux.Handle("POST /events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PUT /events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("POST /events/{id}/register", authMiddleware(http.HandlerFunc(eventHandler.Register)))
	mux.Handle("DELETE /events/{id}/unregister", authMiddleware(http.HandlerFunc(eventHandler.Unregister)))

	// Notification relay endpoint
	mux.Handle("GET /ws", wsHandler)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
