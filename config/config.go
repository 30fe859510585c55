package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"8000"`
	AppEnv          string        `envconfig:"APP_ENV" default:"production"`
	ProcessedDir    string        `envconfig:"PROCESSED_DIR" default:"./processed"`
	DownloadDir     string        `envconfig:"DOWNLOAD_DIR" default:"/tmp/downloaded"`
	DataDir         string        `envconfig:"DATA_DIR" default:"./data"`
	WorkerCount     int           `envconfig:"WORKER_COUNT" default:"2"`
	DownloadTimeout time.Duration `envconfig:"DOWNLOAD_TIMEOUT" default:"30m"`

	// PublicBaseURL is the prefix used for URLs returned to clients.
	// Defaults to http://HOST:PORT when unset.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	return &cfg, nil
}

// Addr returns the bind address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
