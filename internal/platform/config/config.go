package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config se construye una sola vez en main y se pasa explícito a cada componente.
// Ningún paquete fuera de este lee variables de entorno.
type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Database   Database   `yaml:"database"`
	Log        Log        `yaml:"log"`
	Auth       Auth       `yaml:"auth"`
	Media      Media      `yaml:"media"`
	Reminders  Reminders  `yaml:"reminders"`
	Activity   Activity   `yaml:"activity"`
	Pagination Pagination `yaml:"pagination"`
}

type HTTP struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Database struct {
	// DSN vacío => store in-memory (modo dev).
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type AuthMode string

const (
	AuthModeDev  AuthMode = "dev"
	AuthModeOdin AuthMode = "odin"
)

type Auth struct {
	Mode AuthMode `yaml:"mode"`
	Odin Odin     `yaml:"odin"`
}

type Odin struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	APIKeyHeader string        `yaml:"api_key_header"`
	Timeout      time.Duration `yaml:"timeout"`
}

type Media struct {
	Dir            string `yaml:"dir"`
	BaseURL        string `yaml:"base_url"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type Reminders struct {
	DefaultHorizonDays int `yaml:"default_horizon_days"`
}

type Activity struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type Pagination struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// Default devuelve la configuración base (modo dev, in-memory).
func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: Database{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
			App:    "dog-care-api",
		},
		Auth: Auth{
			Mode: AuthModeDev,
			Odin: Odin{
				APIKeyHeader: "X-Api-Key",
				Timeout:      5 * time.Second,
			},
		},
		Media: Media{
			Dir:            "./media",
			BaseURL:        "/media",
			MaxUploadBytes: 10 << 20,
		},
		Reminders:  Reminders{DefaultHorizonDays: 30},
		Activity:   Activity{DefaultLimit: 50, MaxLimit: 200},
		Pagination: Pagination{DefaultLimit: 100, MaxLimit: 200},
	}
}

var searchPaths = []string{"dogcare.yaml", "dogcare.yml"}

// Load arma la config: defaults -> archivo YAML (opcional) -> env.
// Si path está vacío se buscan dogcare.yaml / dogcare.yml en el cwd.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		for _, p := range searchPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("PORT"); ok {
		cfg.HTTP.Addr = ":" + v
	}
	if v, ok := get("DB_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := get("APP_NAME"); ok {
		cfg.Log.App = v
	}
	if v, ok := get("AUTH_MODE"); ok {
		cfg.Auth.Mode = AuthMode(strings.ToLower(v))
	}
	if v, ok := get("ODIN_BASE_URL"); ok {
		cfg.Auth.Odin.BaseURL = v
	}
	if v, ok := get("ODIN_API_KEY"); ok {
		cfg.Auth.Odin.APIKey = v
	}
	if v, ok := get("MEDIA_DIR"); ok {
		cfg.Media.Dir = v
	}
	if v, ok := get("MEDIA_BASE_URL"); ok {
		cfg.Media.BaseURL = v
	}
	if v, ok := get("MEDIA_MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MEDIA_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Media.MaxUploadBytes = n
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	switch c.Auth.Mode {
	case AuthModeDev:
	case AuthModeOdin:
		if strings.TrimSpace(c.Auth.Odin.BaseURL) == "" {
			errs = append(errs, errors.New("auth.odin.base_url is required in odin mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.mode must be dev or odin, got %q", c.Auth.Mode))
	}
	if c.Reminders.DefaultHorizonDays < 0 {
		errs = append(errs, errors.New("reminders.default_horizon_days must be >= 0"))
	}
	if c.Activity.DefaultLimit <= 0 || c.Activity.MaxLimit < c.Activity.DefaultLimit {
		errs = append(errs, errors.New("activity limits must satisfy 0 < default_limit <= max_limit"))
	}
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, errors.New("pagination limits must satisfy 0 < default_limit <= max_limit"))
	}
	if c.Media.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("media.max_upload_bytes must be > 0"))
	}

	return errors.Join(errs...)
}
