package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDaysPath        = "days.csv"
	DefaultActivitiesPath  = "activities.csv"
	DefaultIndexPath       = "activity_index.db"
	DefaultPort            = 8050
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
)

type Config struct {
	DaysPath        string        `yaml:"days_path"`
	ActivitiesPath  string        `yaml:"activities_path"`
	IndexPath       string        `yaml:"index_path"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		DaysPath:        DefaultDaysPath,
		ActivitiesPath:  DefaultActivitiesPath,
		IndexPath:       DefaultIndexPath,
		Port:            DefaultPort,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load layers defaults, the optional YAML file at path, a .env file in the
// working directory and TRACKER_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.DaysPath = getEnv("TRACKER_DAYS_PATH", c.DaysPath)
	c.ActivitiesPath = getEnv("TRACKER_ACTIVITIES_PATH", c.ActivitiesPath)
	c.IndexPath = getEnv("TRACKER_INDEX_PATH", c.IndexPath)
	c.Host = getEnv("TRACKER_HOST", c.Host)
	c.Port = getEnvInt("TRACKER_PORT", c.Port)
	c.Debug = getEnvBool("TRACKER_DEBUG", c.Debug)
	c.LogLevel = getEnv("TRACKER_LOG_LEVEL", c.LogLevel)
	c.ShutdownTimeout = getEnvDuration("TRACKER_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DaysPath) == "" {
		return fmt.Errorf("days path is required")
	}
	if strings.TrimSpace(c.ActivitiesPath) == "" {
		return fmt.Errorf("activities path is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr is the listen address for the dashboard server.
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
