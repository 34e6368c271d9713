// Package config loads WorkHub client settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file, .env
// files, then the process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend selects which repository implementation the client talks to.
type Backend string

const (
	BackendRemote Backend = "remote"
	BackendLocal  Backend = "local"
)

type Config struct {
	Backend  Backend     `env:"WORKHUB_BACKEND" yaml:"backend"`
	PageSize int         `env:"WORKHUB_PAGE_SIZE" yaml:"page_size"`
	API      APIConfig   `yaml:"api"`
	Local    LocalConfig `yaml:"local"`
	Log      LogConfig   `yaml:"log"`
}

type APIConfig struct {
	BaseURL   string `env:"WORKHUB_API_URL" yaml:"base_url"`
	Token     string `env:"WORKHUB_API_TOKEN" yaml:"token"`
	TimeoutMs int    `env:"WORKHUB_API_TIMEOUT_MS" yaml:"timeout_ms"`
	LogCalls  bool   `env:"WORKHUB_API_LOG_CALLS" yaml:"log_calls"`
}

type LocalConfig struct {
	DBPath string `env:"WORKHUB_DB" yaml:"db_path"`
}

type LogConfig struct {
	Level  string `env:"WORKHUB_LOG_LEVEL" yaml:"level"`
	Format string `env:"WORKHUB_LOG_FORMAT" yaml:"format"`
}

// Timeout returns the per-request API timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Backend:  BackendRemote,
		PageSize: 10,
		API: APIConfig{
			BaseURL:   "http://localhost:8080/api",
			TimeoutMs: 10000,
		},
		Local: LocalConfig{
			DBPath: filepath.Join(homeDir(), ".workhub", "workhub.db"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadOptions controls where Load reads from. Zero values use the real
// process environment and the default file locations.
type LoadOptions struct {
	ConfigFile string            // YAML file; "" uses WORKHUB_CONFIG or ~/.workhub/config.yaml
	EnvFiles   []string          // dotenv files; nil uses .env and .env.local
	Environ    map[string]string // nil uses os.Environ
}

// Load builds the effective configuration and validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	environ := opts.Environ
	if environ == nil {
		environ = environMap(os.Environ())
	}

	path := opts.ConfigFile
	if path == "" {
		path = environ["WORKHUB_CONFIG"]
	}
	explicit := path != ""
	if path == "" {
		path = filepath.Join(homeDir(), ".workhub", "config.yaml")
	}
	if err := loadYAML(path, &cfg, explicit); err != nil {
		return Config{}, err
	}

	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env", ".env.local"}
	}
	merged, err := mergeDotenv(envFiles, environ)
	if err != nil {
		return Config{}, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendRemote:
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("api base url %q must be an absolute URL", c.API.BaseURL))
		}
		if c.API.TimeoutMs <= 0 {
			errs = append(errs, fmt.Errorf("api timeout must be positive, got %dms", c.API.TimeoutMs))
		}
	case BackendLocal:
		if strings.TrimSpace(c.Local.DBPath) == "" {
			errs = append(errs, errors.New("local backend requires a database path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want remote or local)", c.Backend))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be at least 1, got %d", c.PageSize))
	}
	return errors.Join(errs...)
}

func loadYAML(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// mergeDotenv reads the existing dotenv files and overlays environ on top, so
// real environment variables always win over file values.
func mergeDotenv(files []string, environ map[string]string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		vals, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range vals {
			merged[k] = v
		}
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

func environMap(pairs []string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			m[k] = v
		}
	}
	return m
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
