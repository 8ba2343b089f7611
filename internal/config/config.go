package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Backend struct {
	BaseURL           string            `json:"base_url" yaml:"base_url"`
	RequestTimeoutSec int               `json:"request_timeout_sec" yaml:"request_timeout_sec"`
	Headers           map[string]string `json:"headers" yaml:"headers"`
	// MaxRequestsPerSec caps the request rate to the backend; 0 disables the limit.
	MaxRequestsPerSec float64 `json:"max_requests_per_sec" yaml:"max_requests_per_sec"`
	Burst             int     `json:"burst" yaml:"burst"`
}

type Server struct {
	Port string `json:"port" yaml:"port"`
}

// Dashboard holds the inputs a fresh dashboard starts with.
type Dashboard struct {
	Symbols string `json:"symbols" yaml:"symbols"`
	Days    string `json:"days" yaml:"days"`
	// RefreshCron re-runs the fetches on a schedule, e.g. "@every 1m". Empty disables it.
	RefreshCron string `json:"refresh_cron" yaml:"refresh_cron"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
	// File receives the terminal dashboard's log; stderr is taken by the UI.
	File string `json:"file" yaml:"file"`
}

type Config struct {
	Backend   Backend   `json:"backend" yaml:"backend"`
	Server    Server    `json:"server" yaml:"server"`
	Dashboard Dashboard `json:"dashboard" yaml:"dashboard"`
	Log       Log       `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Backend: Backend{
			BaseURL:           "http://127.0.0.1:5000",
			RequestTimeoutSec: 10,
			Burst:             4,
		},
		Server:    Server{Port: "8080"},
		Dashboard: Dashboard{Symbols: "AAPL", Days: "30"},
		Log:       Log{Level: "info"},
	}
}

// Load reads config from path. If path is empty, config.json, config.yaml and
// config.yml are tried in that order; a missing file means defaults. A .env
// file in the working directory is loaded into the environment (without
// replacing variables already set), then environment variables override
// select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, candidate := range []string{"config.json", "config.yaml", "config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STOCKDASH_API_URL"); v != "" { cfg.Backend.BaseURL = v }
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Backend.RequestTimeoutSec = x }
	}
	if v := os.Getenv("STOCKDASH_MAX_RPS"); v != "" {
		var x float64; fmt.Sscanf(v, "%g", &x); if x >= 0 { cfg.Backend.MaxRequestsPerSec = x }
	}
	if v := os.Getenv("STOCKDASH_BURST"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Backend.Burst = x }
	}
	if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
	if v := os.Getenv("STOCKDASH_SYMBOLS"); v != "" { cfg.Dashboard.Symbols = v }
	if v := os.Getenv("STOCKDASH_DAYS"); v != "" { cfg.Dashboard.Days = v }
	if v := os.Getenv("STOCKDASH_REFRESH_CRON"); v != "" { cfg.Dashboard.RefreshCron = v }
	if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
	if v := os.Getenv("LOG_FILE"); v != "" { cfg.Log.File = v }
}

// SlogLevel maps Level to a slog level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
