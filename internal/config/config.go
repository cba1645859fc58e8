// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the daemon and server need, loaded once at startup
// and passed down explicitly.
type Config struct {
	OpenAIKey string
	ChatModel string
	TTSModel  string
	TTSVoice  string

	WhisperModelPath string
	DBPath           string
	ClinicConfigPath string
	TempDir          string
	Port             string
	ControlSocket    string
	SocksProxy       string        // optional, empty = direct
	HTTPTimeout      time.Duration // per model API request

	Listen ListenConfig
}

// ListenConfig tunes the voice-activity gate.
type ListenConfig struct {
	SilenceThreshold float64
	SilenceDuration  time.Duration
	Timeout          time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("RIYA_CHAT_MODEL", "gpt-5-nano"),
		TTSModel:         getEnv("RIYA_TTS_MODEL", "gpt-4o-mini-tts"),
		TTSVoice:         getEnv("RIYA_TTS_VOICE", "alloy"),
		WhisperModelPath: getEnv("WHISPER_MODEL_PATH", "models/ggml-base.bin"),
		DBPath:           getEnv("RIYA_DB_PATH", "calls.db"),
		ClinicConfigPath: getEnv("CLINIC_CONFIG_PATH", "clinic_config.json"),
		TempDir:          getEnv("RIYA_TEMP_DIR", "data/audio"),
		Port:             getEnv("PORT", "8000"),
		ControlSocket:    getEnv("RIYA_CONTROL_SOCKET", "/tmp/riya.sock"),
		SocksProxy:       getEnv("RIYA_SOCKS_PROXY", ""),
		HTTPTimeout:      getEnvDuration("RIYA_HTTP_TIMEOUT", 2*time.Minute),
		Listen: ListenConfig{
			SilenceThreshold: getEnvFloat("RIYA_SILENCE_THRESHOLD", 0.015),
			SilenceDuration:  getEnvDuration("RIYA_SILENCE_DURATION", 2*time.Second),
			Timeout:          getEnvDuration("RIYA_LISTEN_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate fails fast on anything the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if c.WhisperModelPath == "" {
		return fmt.Errorf("WHISPER_MODEL_PATH cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("RIYA_DB_PATH cannot be empty")
	}
	if c.Listen.SilenceThreshold <= 0 {
		return fmt.Errorf("RIYA_SILENCE_THRESHOLD must be > 0")
	}
	if c.Listen.Timeout <= 0 {
		return fmt.Errorf("RIYA_LISTEN_TIMEOUT must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
