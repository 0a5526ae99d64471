package config

import (
	"time"

	"github.com/joho/godotenv"

	"language-companion-api/utils"
)

// Config holds all runtime configuration, read from the environment.
type Config struct {
	Port            string
	DBPath          string
	RedisURL        string
	ExportDir       string
	SessionTTL      time.Duration
	SessionSweep    time.Duration
	DefaultQuizSize int
}

// Load reads an optional .env file and then the environment. Missing values
// fall back to development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:            utils.GetEnvOrDefault("PORT", "8086"),
		DBPath:          utils.GetEnvOrDefault("DB_PATH", "./companion.db"),
		RedisURL:        utils.GetEnvOrDefault("REDIS_URL", ""),
		ExportDir:       utils.GetEnvOrDefault("EXPORT_DIR", "./exports"),
		SessionTTL:      time.Duration(utils.GetEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		SessionSweep:    time.Duration(utils.GetEnvInt("SESSION_SWEEP_MINUTES", 60)) * time.Minute,
		DefaultQuizSize: utils.GetEnvInt("DEFAULT_QUIZ_SIZE", 10),
	}

	utils.LogStartup("Config loaded: port=%s db=%s redis=%q export_dir=%s",
		cfg.Port, cfg.DBPath, cfg.RedisURL, cfg.ExportDir)
	return cfg
}
