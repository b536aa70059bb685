package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"league-watcher/internal/constants"
)

// Version is stamped at build time via -ldflags.
var Version = "0.0.0-dev"

type Config struct {
	DBPath            string
	ServerPort        string
	LogLevel          string
	LockfilePath      string // optional override for client discovery
	UpdateRepoOwner   string
	UpdateRepoName    string
	DiscoveryInterval time.Duration
	EngineTick        time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", "league-watcher.db"),
		ServerPort:        getEnv("SERVER_PORT", "8090"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LockfilePath:      getEnv("LOCKFILE_PATH", ""),
		UpdateRepoOwner:   getEnv("UPDATE_REPO_OWNER", "tacticaldeuce"),
		UpdateRepoName:    getEnv("UPDATE_REPO_NAME", "league-watcher"),
		DiscoveryInterval: getDuration("DISCOVERY_INTERVAL", constants.DiscoveryInterval),
		EngineTick:        getDuration("ENGINE_TICK", constants.EngineTick),
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("discovery_interval", cfg.DiscoveryInterval).
		Dur("engine_tick", cfg.EngineTick).
		Str("version", Version).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
