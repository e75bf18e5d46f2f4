package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"imagefolders/internal/auth"
	"imagefolders/internal/config"
	"imagefolders/internal/handler"
	"imagefolders/internal/middleware"
	"imagefolders/internal/repository"
	authsvc "imagefolders/internal/service/auth"
	"imagefolders/internal/service/library"
	"imagefolders/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.HTTP.Port,
		"store", cfg.Store.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	files, err := storage.NewDiskStorage(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, logger)
	if err != nil {
		log.Fatalf("Failed to set up upload storage: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	// Services
	validator := library.NewResourceValidator(store.Folders)
	authService := authsvc.NewAuthService(store.Users, tokens, auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)
	folderService := library.NewFolderService(store.Folders, validator, logger)
	treeService := library.NewTreeService(store.Folders, logger)
	imageService := library.NewImageService(store.Images, store.Folders, files, validator, cfg.Uploads.MaxBytes(), logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	metrics := middleware.NewMetrics("imagefolders")

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET "+files.Prefix()+"/", files.Handler())

	handler.RegisterRoutes(mux, cfg.HTTP.APIPrefix, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.Auth.TokenTTL, cfg.Environment == "prod", logger),
		Folders: handler.NewFolderHandler(folderService, logger),
		Tree:    handler.NewTreeHandler(treeService, logger),
		Images:  handler.NewImageHandler(imageService, cfg.Uploads.MaxBytes(), cfg.HTTP.TrustProxy, logger),
	}, middleware.RequireAuth(authService, logger))

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Metrics → Recovery → RequestLogger → Routes
	var h http.Handler = mux
	if cfg.Environment == "dev" {
		h = middleware.RequestLogger(logger)(h)
	}
	h = middleware.Recovery(logger)(h)
	h = metrics.Middleware(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.HTTP.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second, // uploads
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.HTTP.Port, "api_prefix", cfg.HTTP.APIPrefix)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close", "error", err)
	}
	logger.Info("server stopped")
}
