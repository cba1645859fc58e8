package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/rog05/voice-agent/internal/agent"
	"github.com/rog05/voice-agent/internal/audio"
	"github.com/rog05/voice-agent/internal/clinic"
	"github.com/rog05/voice-agent/internal/config"
	"github.com/rog05/voice-agent/internal/ipc"
	"github.com/rog05/voice-agent/internal/lang"
	"github.com/rog05/voice-agent/internal/proxy"
	"github.com/rog05/voice-agent/internal/session"
	"github.com/rog05/voice-agent/internal/store"
	"github.com/rog05/voice-agent/internal/stt"
	"github.com/rog05/voice-agent/internal/tts"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIKey)}
	if cfg.SocksProxy != "" {
		httpClient, err := proxy.NewSocksClient(cfg.SocksProxy, cfg.HTTPTimeout)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", cfg.SocksProxy, "err", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
		log.Debug("Loaded proxy")
	}
	client := openai.NewClient(opts...)

	rec := audio.NewRecorder(cfg.Listen.SilenceThreshold, cfg.Listen.SilenceDuration, cfg.Listen.Timeout)
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()

	log.Debug("Loaded recorder")

	whisper, err := stt.NewTranscriber(cfg.WhisperModelPath)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	log.Debug("Loaded whisper")

	clinicCfg, err := clinic.Load(cfg.ClinicConfigPath)
	if err != nil {
		log.Warn("Clinic config unavailable, continuing without it", "err", err)
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Error("Failed to open interaction log", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	log.Info("Boot up - successful")

	proc := session.NewProcessor(whisper, lang.NewDetector(),
		agent.New(agent.NewOpenAIGenerator(client, cfg.ChatModel, clinicCfg)))
	speaker := tts.NewSpeaker(tts.NewSynthesizer(client, cfg.TTSModel, cfg.TTSVoice))
	sess := session.New(rec, proc, speaker, repo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := ipc.StartServer(cfg.ControlSocket, func(msg ipc.ControlMessage) ipc.Reply {
		switch msg.Cmd {
		case "stop":
			cancel()
			return ipc.Reply{OK: true, Detail: "stopping"}
		case "stats":
			stats, err := repo.Stats(context.Background())
			if err != nil {
				return ipc.Reply{Detail: err.Error()}
			}
			return ipc.Reply{OK: true, Detail: fmt.Sprintf(
				"total=%d by_intent=%v by_language=%v",
				stats.Total, stats.ByIntent, stats.ByLanguage)}
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
			return ipc.Reply{Detail: "unknown command"}
		}
	}); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Session loop failed", "err", err)
		os.Exit(1)
	}
}
