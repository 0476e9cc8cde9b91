package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultAPIURL — адрес сервера для локальной разработки.
const DefaultAPIURL = "http://localhost:3000/api"

// Secure store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	// Адрес API; определяется один раз при старте процесса.
	APIURL string `env:"API_URL"`

	// Хранилище токена
	SecureStore    string `env:"SECURE_STORE"`
	SecureStoreDir string `env:"SECURE_STORE_DIR"`

	LogLevel string `env:"LOG_LEVEL"`
	Version  bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags перекрывают значения из env только если переданы явно
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "base URL of the payments API, e.g. https://host/api")
	flag.StringVar(&cfg.SecureStore, "store", cfg.SecureStore, "secure store backend: file|sqlite")
	flag.StringVar(&cfg.SecureStoreDir, "store-dir", cfg.SecureStoreDir, "directory of the secure store")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.SecureStore == "" {
		c.SecureStore = StoreFile
	}
	if c.SecureStoreDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.SecureStoreDir = filepath.Join(dir, "PayTrack")
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки разом.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid API_URL %q: %w", c.APIURL, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("invalid API_URL %q: scheme must be http or https", c.APIURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("invalid API_URL %q: host is required", c.APIURL))
	}

	if c.SecureStore != StoreFile && c.SecureStore != StoreSQLite {
		errs = append(errs, fmt.Errorf("unknown secure store %q (expected %s|%s)", c.SecureStore, StoreFile, StoreSQLite))
	}
	if c.SecureStoreDir == "" {
		errs = append(errs, errors.New("secure store directory is not set"))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}
