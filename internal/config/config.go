package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"

	dateLayout = "2006-01-02"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Store    StoreConfig    `mapstructure:"store"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	App      AppConfig      `mapstructure:"app"`
}

type TelegramConfig struct {
	Token    string   `mapstructure:"token"`
	AdminIDs []string `mapstructure:"admin_ids"`
}

type RedisConfig struct {
	URI string `mapstructure:"uri"`
}

type StoreConfig struct {
	Driver         string `mapstructure:"driver"`
	SupabaseURL    string `mapstructure:"supabase_url"`
	SupabaseKey    string `mapstructure:"supabase_key"`
	DatabaseURL    string `mapstructure:"database_url"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type AppConfig struct {
	LocalesDir      string        `mapstructure:"locales_dir"`
	DefaultLanguage string        `mapstructure:"default_language"`
	TimezoneName    string        `mapstructure:"timezone_name"`
	TimezoneOffset  time.Duration `mapstructure:"timezone_offset"`
	RamadanStart    string        `mapstructure:"ramadan_start"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
}

// Location returns the fixed zone readings are dated in
func (a AppConfig) Location() *time.Location {
	return time.FixedZone(a.TimezoneName, int(a.TimezoneOffset.Seconds()))
}

// RamadanStartDate parses the first day of the Ramadan calendar
func (a AppConfig) RamadanStartDate() (time.Time, error) {
	return time.ParseInLocation(dateLayout, a.RamadanStart, a.Location())
}

// Load loads configuration from a YAML file with environment variable overrides.
// A .env file next to the config file is loaded first when present.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(filepath.Dir(filename), ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// Set config file
	v.SetConfigFile(filename)

	// Set defaults
	v.SetDefault("store.driver", StoreSupabase)
	v.SetDefault("store.migrations_path", "migrations")
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("app.locales_dir", "locales")
	v.SetDefault("app.default_language", "id")
	v.SetDefault("app.timezone_name", "WIB")
	v.SetDefault("app.timezone_offset", "7h")
	v.SetDefault("app.ramadan_start", "2026-02-19")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "console")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Environment variable configuration
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if c.Redis.URI == "" {
		return fmt.Errorf("redis URI is required")
	}

	switch c.Store.Driver {
	case StoreSupabase:
		if c.Store.SupabaseURL == "" {
			return fmt.Errorf("supabase URL is required")
		}
		if c.Store.SupabaseKey == "" {
			return fmt.Errorf("supabase key is required")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("database URL is required")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if _, err := c.App.RamadanStartDate(); err != nil {
		return fmt.Errorf("parse ramadan start: %w", err)
	}

	return nil
}
