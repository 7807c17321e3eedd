package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata" // PRELEV_TIMEZONE must resolve on hosts without zoneinfo

	"prelev-mcp/internal/calendar"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ErrInvalidLocale is returned when PRELEV_LOCALE names an unsupported locale.
var ErrInvalidLocale = errors.New("invalid locale")

const (
	DefaultTimezone = "Europe/Paris"
	DefaultWorkers  = 4
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath       string
	LogDir         string
	Locale         calendar.Locale
	Location       *time.Location
	RegistryMaxAge time.Duration
	MetricsAddr    string
	Workers        int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromEnv(exeDir)
}

// FromEnv builds the configuration from the process environment only.
// exeDir is the fallback data path.
func FromEnv(exeDir string) (*AppConfig, error) {
	// 1. Resolve data paths
	dataPath := getEnv("DATA_PATH", "")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}
	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	// 2. Locale and timezone
	locale, ok := calendar.ParseLocale(getEnv("PRELEV_LOCALE", ""))
	if !ok {
		return nil, fmt.Errorf("PRELEV_LOCALE: %w: %q", ErrInvalidLocale, os.Getenv("PRELEV_LOCALE"))
	}
	tz := getEnv("PRELEV_TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("PRELEV_TIMEZONE: %w", err)
	}

	// 3. Numeric settings
	maxAge, err := getEnvDuration("REGISTRY_MAX_AGE", 0)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("PRELEV_WORKERS", DefaultWorkers)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("PRELEV_WORKERS: must be at least 1, got %d", workers)
	}

	return &AppConfig{
		DataPath:       dataPath,
		LogDir:         logDir,
		Locale:         locale,
		Location:       loc,
		RegistryMaxAge: maxAge,
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		Workers:        workers,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}
