package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
}

// DatabaseConfig selects and locates the relational store.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DSN is a libpq connection string for postgres or a file path for sqlite.
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// AIConfig holds settings for the generative-language integration.
type AIConfig struct {
	Model           string `mapstructure:"model" yaml:"model"`
	APIKey          string `mapstructure:"api_key" yaml:"api_key"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// TemplatesConfig controls the template review pipeline.
type TemplatesConfig struct {
	// Languages are the translation targets created when a template is approved.
	Languages []string `mapstructure:"languages" yaml:"languages"`

	// TranslateConcurrency bounds the number of parallel translation calls.
	TranslateConcurrency int `mapstructure:"translate_concurrency" yaml:"translate_concurrency"`
}

// AdminConfig holds the shared secret guarding the admin routes.
type AdminConfig struct {
	Secret string `mapstructure:"secret" yaml:"secret"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	AI        AIConfig        `mapstructure:"ai" yaml:"ai"`
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`
	Admin     AdminConfig     `mapstructure:"admin" yaml:"admin"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/listo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "listo", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 60,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "listo.db",
		},
		AI: AIConfig{
			Model:           "gemini-2.0-flash",
			MaxOutputTokens: 4096,
			TimeoutSec:      45,
		},
		Templates: TemplatesConfig{
			Languages:            []string{"en", "es"},
			TranslateConcurrency: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout_sec", d.Server.ReadTimeoutSec)
	v.SetDefault("server.write_timeout_sec", d.Server.WriteTimeoutSec)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.max_output_tokens", d.AI.MaxOutputTokens)
	v.SetDefault("ai.timeout_sec", d.AI.TimeoutSec)
	v.SetDefault("ai.base_url", "")
	v.SetDefault("templates.languages", d.Templates.Languages)
	v.SetDefault("templates.translate_concurrency", d.Templates.TranslateConcurrency)
	v.SetDefault("admin.secret", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", false)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error. Every key can be overridden from the
// environment as LISTO_<SECTION>_<KEY>, e.g. LISTO_DATABASE_DSN.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("listo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database dsn must not be empty")
	}
	if c.Templates.TranslateConcurrency <= 0 {
		c.Templates.TranslateConcurrency = 1
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. Secrets are not written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	ai := cfg.AI
	ai.APIKey = ""
	v.Set("server", cfg.Server)
	v.Set("database", cfg.Database)
	v.Set("ai", ai)
	v.Set("templates", cfg.Templates)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
