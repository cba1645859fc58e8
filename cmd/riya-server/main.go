// Riya - HTTP deployment of the appointment-desk pipeline.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/rog05/voice-agent/internal/agent"
	"github.com/rog05/voice-agent/internal/api"
	"github.com/rog05/voice-agent/internal/clinic"
	"github.com/rog05/voice-agent/internal/config"
	"github.com/rog05/voice-agent/internal/lang"
	"github.com/rog05/voice-agent/internal/proxy"
	"github.com/rog05/voice-agent/internal/session"
	"github.com/rog05/voice-agent/internal/store"
	"github.com/rog05/voice-agent/internal/stt"
	"github.com/rog05/voice-agent/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port)

	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIKey)}
	if cfg.SocksProxy != "" {
		httpClient, err := proxy.NewSocksClient(cfg.SocksProxy, cfg.HTTPTimeout)
		if err != nil {
			slog.Error("Failed to dial socks proxy", "proxy", cfg.SocksProxy, "error", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := openai.NewClient(opts...)

	whisper, err := stt.NewTranscriber(cfg.WhisperModelPath)
	if err != nil {
		slog.Error("Failed to init whisper", "error", err)
		os.Exit(1)
	}
	defer whisper.Close()

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close interaction log", "error", closeErr)
		}
	}()
	slog.Info("Database connected")

	clinicCfg, err := clinic.Load(cfg.ClinicConfigPath)
	if err != nil {
		slog.Warn("Clinic config unavailable, continuing without it", "error", err)
	}

	if err := os.MkdirAll(cfg.TempDir, 0755); err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		os.Exit(1)
	}

	proc := session.NewProcessor(whisper, lang.NewDetector(),
		agent.New(agent.NewOpenAIGenerator(client, cfg.ChatModel, clinicCfg)))
	synth := tts.NewSynthesizer(client, cfg.TTSModel, cfg.TTSVoice)
	hub := api.NewEventHub()
	handler := api.NewHandler(proc, synth, repo, clinicCfg, cfg.TempDir, hub)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	handler.Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api.StartTempCleanup(ctx, cfg.TempDir, time.Hour)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("Server listening", "addr", srv.Addr)

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
