package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeswin2007cs/scms/internal/admin"
	"github.com/jeswin2007cs/scms/internal/attendance"
	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/config"
	"github.com/jeswin2007cs/scms/internal/handler"
	"github.com/jeswin2007cs/scms/internal/httpmiddleware"
	"github.com/jeswin2007cs/scms/internal/leave"
	"github.com/jeswin2007cs/scms/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		slog.Error("http server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runHTTP(cfg config.App, logger *slog.Logger) error {
	docs, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := docs.Close(); err != nil {
			slog.Warn("close store", slog.String("error", err.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := docs.Ping(pingCtx); err != nil {
		slog.Warn("store not reachable", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
	}
	cancel()
	slog.Info("store ready", slog.String("backend", cfg.StoreBackend))

	repo := store.NewRepository(docs)
	authn := auth.NewAuthenticator(repo)
	tokens := auth.TokenConfig{
		Issuer:     cfg.JWTIssuer,
		SigningKey: cfg.JWTSigningKey,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}

	h := handler.New(handler.Deps{
		Repo:       repo,
		Authn:      authn,
		Gate:       auth.NewGate(authn, tokens),
		Attendance: attendance.NewService(repo),
		Leaves:     leave.NewService(repo),
		Admin:      admin.NewService(repo),
		Tokens:     tokens,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.Logger(logger, "/healthz", "/metrics"))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{httpmiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(httpmiddleware.SecurityHeaders(cfg.Production()))
	r.Use(httpmiddleware.Metrics())
	r.Use(auth.Sessions(auth.SessionOptions{
		Name:   cfg.SessionName,
		Secret: cfg.SessionSecret,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.Production(),
	}))

	r.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

	h.Register(r, handler.Options{
		StaticDir:  cfg.StaticDir,
		PhotosDir:  cfg.PhotosDir,
		LoginLimit: httpmiddleware.NewTokenBucket(cfg.LoginRateLimitPerMin, cfg.LoginRateLimitPerMin).Middleware(),
		Metrics:    promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting server", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server forced shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
	return nil
}

// setupLogger returns text output at debug level in development and JSON
// at info level in production.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod", "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
