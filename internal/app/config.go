package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/docforge-backend/internal/data/db"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/envutil"
	"github.com/yungbote/docforge-backend/internal/platform/llm"
)

const defaultJWTSecret = "defaultsecret"

// Config is built once at startup and passed to the components that need it.
type Config struct {
	Port    string
	LogMode string

	DB db.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	LLM                   llm.Config
	GenerationConcurrency int

	CORSAllowedOrigins []string
	MetricsEnabled     bool
	Otel               observability.OtelConfig
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE.
type fileConfig struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	Database struct {
		Driver     string `yaml:"driver"`
		URL        string `yaml:"url"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Auth struct {
		JWTSecretKey          string `yaml:"jwt_secret_key"`
		AccessTokenTTLSeconds int    `yaml:"access_token_ttl_seconds"`
	} `yaml:"auth"`

	LLM struct {
		APIKey         string   `yaml:"api_key"`
		Model          string   `yaml:"model"`
		BaseURL        string   `yaml:"base_url"`
		Temperature    *float64 `yaml:"temperature"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Concurrency    int      `yaml:"generation_concurrency"`
	} `yaml:"llm"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MetricsEnabled     *bool    `yaml:"metrics_enabled"`

	Otel struct {
		Enabled     bool              `yaml:"enabled"`
		ServiceName string            `yaml:"service_name"`
		Environment string            `yaml:"environment"`
		Endpoint    string            `yaml:"endpoint"`
		Headers     map[string]string `yaml:"headers"`
		Insecure    bool              `yaml:"insecure"`
		SampleRatio *float64          `yaml:"sample_ratio"`
	} `yaml:"otel"`
}

func defaultConfig() Config {
	return Config{
		Port:    "8080",
		LogMode: "development",
		DB: db.Config{
			Driver:     db.DriverSQLite,
			SQLitePath: "docforge.db",
		},
		JWTSecretKey:          defaultJWTSecret,
		AccessTokenTTL:        time.Hour,
		LLM:                   llm.Config{Model: llm.DefaultModel, BaseURL: llm.DefaultBaseURL},
		GenerationConcurrency: 3,
		MetricsEnabled:        true,
		Otel: observability.OtelConfig{
			ServiceName: "docforge-backend",
			Environment: "development",
			SampleRatio: 1,
		},
	}
}

// LoadConfig reads defaults, then the YAML file at CONFIG_FILE (if any), then
// the environment. Environment values win.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Port, fc.Port)
	setString(&cfg.LogMode, fc.LogMode)
	setString(&cfg.DB.Driver, fc.Database.Driver)
	setString(&cfg.DB.DSN, fc.Database.URL)
	setString(&cfg.DB.SQLitePath, fc.Database.SQLitePath)
	setString(&cfg.JWTSecretKey, fc.Auth.JWTSecretKey)
	if fc.Auth.AccessTokenTTLSeconds > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.Auth.AccessTokenTTLSeconds) * time.Second
	}
	setString(&cfg.LLM.APIKey, fc.LLM.APIKey)
	setString(&cfg.LLM.Model, fc.LLM.Model)
	setString(&cfg.LLM.BaseURL, fc.LLM.BaseURL)
	if fc.LLM.Temperature != nil {
		cfg.LLM.Temperature = fc.LLM.Temperature
	}
	if fc.LLM.TimeoutSeconds > 0 {
		cfg.LLM.Timeout = time.Duration(fc.LLM.TimeoutSeconds) * time.Second
	}
	if fc.LLM.Concurrency > 0 {
		cfg.GenerationConcurrency = fc.LLM.Concurrency
	}
	if len(fc.CORSAllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	if fc.MetricsEnabled != nil {
		cfg.MetricsEnabled = *fc.MetricsEnabled
	}
	cfg.Otel.Enabled = cfg.Otel.Enabled || fc.Otel.Enabled
	setString(&cfg.Otel.ServiceName, fc.Otel.ServiceName)
	setString(&cfg.Otel.Environment, fc.Otel.Environment)
	setString(&cfg.Otel.Endpoint, fc.Otel.Endpoint)
	if len(fc.Otel.Headers) > 0 {
		cfg.Otel.Headers = fc.Otel.Headers
	}
	cfg.Otel.Insecure = cfg.Otel.Insecure || fc.Otel.Insecure
	if fc.Otel.SampleRatio != nil {
		cfg.Otel.SampleRatio = *fc.Otel.SampleRatio
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.DSN = envutil.String("DATABASE_URL", cfg.DB.DSN)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTL = envutil.Seconds("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)

	cfg.LLM.APIKey = envutil.String("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = envutil.String("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = envutil.String("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Timeout = envutil.Seconds("LLM_TIMEOUT", cfg.LLM.Timeout)
	cfg.GenerationConcurrency = envutil.Int("GENERATION_CONCURRENCY", cfg.GenerationConcurrency)

	cfg.CORSAllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""); raw != "" {
		cfg.Otel.Headers = observability.ParseHeaders(raw)
	}
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", cfg.Otel.SampleRatio)
}

func (c Config) validate() error {
	if c.GenerationConcurrency < 1 {
		return fmt.Errorf("GENERATION_CONCURRENCY must be at least 1, got %d", c.GenerationConcurrency)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
