package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basegraph.app/releasenotes/common/id"
	"basegraph.app/releasenotes/common/logger"
	"basegraph.app/releasenotes/common/otel"
	"basegraph.app/releasenotes/core/config"
	"basegraph.app/releasenotes/internal/http/handler"
	"basegraph.app/releasenotes/internal/http/middleware"
	httprouter "basegraph.app/releasenotes/internal/http/router"
	"basegraph.app/releasenotes/internal/pipeline"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet: OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg, os.Stdout)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "releasenotes server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	// Requests choose the editor per call, so its credential is checked up front.
	if err := cfg.Preflight(true); err != nil {
		slog.ErrorContext(ctx, "missing credentials", "error", err)
		os.Exit(1)
	}

	runner, err := pipeline.FromConfig(cfg, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build pipeline", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "pipeline ready",
		"tracker", cfg.Tracker.Kind,
		"synth_provider", cfg.SynthLLM.Provider,
		"synth_model", cfg.SynthLLM.Model,
		"editor_model", cfg.EditorLLM.Model)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, runner)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Generation runs an agent loop inside the request.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, runner handler.Runner) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, runner)

	return router
}

const banner = `
 ____      _                        _   _       _
|  _ \ ___| | ___  __ _ ___  ___   | \ | | ___ | |_ ___  ___
| |_) / _ \ |/ _ \/ _' / __|/ _ \  |  \| |/ _ \| __/ _ \/ __|
|  _ <  __/ |  __/ (_| \__ \  __/  | |\  | (_) | ||  __/\__ \
|_| \_\___|_|\___|\__,_|___/\___|  |_| \_|\___/ \__\___||___/
`
