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

	"github.com/acai-travel/global-time-agent/internal/chat"
	"github.com/acai-travel/global-time-agent/internal/chat/assistant"
	"github.com/acai-travel/global-time-agent/internal/chat/tool"
	"github.com/acai-travel/global-time-agent/internal/config"
	"github.com/acai-travel/global-time-agent/internal/httpx"
	"github.com/acai-travel/global-time-agent/internal/telemetry"
	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/acai-travel/global-time-agent/internal/worldtime/nominatim"
	"github.com/acai-travel/global-time-agent/internal/worldtime/tzlookup"
	"github.com/gorilla/mux"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(telemetry.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	// Initialize OpenTelemetry metrics
	shutdownMetrics, err := telemetry.InitMetrics(ctx, os.Stdout, cfg.MetricsInterval)
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(ctx); err != nil {
			slog.Error("Failed to shutdown metrics", "error", err)
		}
	}()

	// Initialize dependencies
	geocoder := nominatim.NewClient(
		nominatim.WithBaseURL(cfg.NominatimURL),
		nominatim.WithUserAgent(cfg.NominatimUserAgent),
	)
	resolver := worldtime.NewResolver(
		geocoder,
		tzlookup.New(),
		worldtime.NewZoneClock(nil),
		worldtime.WithGeocodeTimeout(cfg.GeocodeTimeout),
	)

	currentTime, err := tool.NewCurrentTimeTool(resolver)
	if err != nil {
		slog.Error("Failed to create current time tool", "error", err)
		os.Exit(1)
	}

	assist := assistant.New(assistant.Config{
		Model:   cfg.AgentModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, currentTime)

	server := chat.NewServer(assist, currentTime, chat.AgentCard{
		Name:        assistant.AgentName,
		Description: assistant.AgentDescription,
		Model:       assist.Model(),
		Tools:       assist.ToolNames(),
	})

	// Create metrics middleware
	metricsMiddleware, err := httpx.NewMetricsMiddleware(nil)
	if err != nil {
		slog.Error("Failed to create metrics middleware", "error", err)
		os.Exit(1)
	}

	// Configure handler
	handler := mux.NewRouter()
	handler.Use(
		metricsMiddleware.Handler(), // Add metrics FIRST
		httpx.Logger(),
		httpx.Recovery(),
	)

	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "Hi, I can tell you the time anywhere in the world!")
	})

	server.Register(handler)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	// Channel to listen for shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		slog.Info("Starting the server", "addr", cfg.HTTPAddr, "model", assist.Model())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-stop
	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	slog.Info("Server stopped")
}
