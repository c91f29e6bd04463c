package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BOOKING_CALENDAR_BACKEND_BASE_URL
const EnvPrefix = "BOOKING_CALENDAR"

// Holiday sources
const (
	SourceComputed = "computed"
	SourceTable    = "table"
	SourceRemote   = "remote"
)

// Config represents application configuration
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// BackendConfig points at the booking API
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// HolidaysConfig selects and configures the holiday source
type HolidaysConfig struct {
	Source    string `mapstructure:"source"`     // computed, table, remote or primary+fallback
	TableFile string `mapstructure:"table_file"` // extra table years, optional
	RemoteURL string `mapstructure:"remote_url"`
	Country   string `mapstructure:"country"`
	CacheTTL  string `mapstructure:"cache_ttl"`
}

// RefreshConfig controls periodic booking refresh
type RefreshConfig struct {
	Interval   string `mapstructure:"interval"`
	SystemTray bool   `mapstructure:"system_tray"` // Windows only
}

// ServerConfig configures the HTTP rendering API
type ServerConfig struct {
	Bind string `mapstructure:"bind"`
}

// LogConfig configures logging
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file, .env and the environment.
// A missing config file is not an error when no explicit path was given.
func Load(configPath string) (*Config, error) {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.booking-calendar")
		v.AddConfigPath("/etc/booking-calendar")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("holidays.source", SourceComputed)
	v.SetDefault("holidays.remote_url", "https://date.nager.at")
	v.SetDefault("holidays.country", "US")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("refresh.interval", "5m")
	v.SetDefault("refresh.system_tray", false)
	v.SetDefault("server.bind", ":8080")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL, got '%s'", c.Backend.BaseURL)
	}

	primary, fallback := c.Holidays.Sources()
	for _, src := range []string{primary, fallback} {
		switch src {
		case "", SourceComputed, SourceTable:
		case SourceRemote:
			if c.Holidays.RemoteURL == "" {
				return fmt.Errorf("holidays.remote_url is required for remote source")
			}
			if c.Holidays.Country == "" {
				return fmt.Errorf("holidays.country is required for remote source")
			}
		default:
			return fmt.Errorf("holidays.source must be computed, table, remote or primary+fallback, got '%s'", c.Holidays.Source)
		}
	}
	if primary == "" {
		return fmt.Errorf("holidays.source is required")
	}
	if fallback != "" && fallback == primary {
		return fmt.Errorf("holidays.source fallback must differ from primary, got '%s'", c.Holidays.Source)
	}

	for name, value := range map[string]string{
		"backend.timeout":    c.Backend.Timeout,
		"holidays.cache_ttl": c.Holidays.CacheTTL,
		"refresh.interval":   c.Refresh.Interval,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if d := c.Refresh.GetInterval(); d < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s, got %s", d)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got '%s'", c.Log.Level)
	}

	return nil
}

// Sources splits holidays.source into primary and optional fallback
func (c *HolidaysConfig) Sources() (primary, fallback string) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(c.Source)), "+", 2)
	primary = parts[0]
	if len(parts) == 2 {
		fallback = parts[1]
	}
	return primary, fallback
}

// GetTimeout returns the backend request timeout
func (c *BackendConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// GetCacheTTL returns remote holiday cache TTL
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	return parseDuration(c.CacheTTL, 24*time.Hour)
}

// GetInterval returns the refresh interval
func (c *RefreshConfig) GetInterval() time.Duration {
	return parseDuration(c.Interval, 5*time.Minute)
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Backend.BaseURL = os.ExpandEnv(c.Backend.BaseURL)
	c.Holidays.TableFile = os.ExpandEnv(c.Holidays.TableFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
