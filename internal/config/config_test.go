package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://bookings.example.com
holidays:
  source: remote+table
refresh:
  interval: 2m
`)
	t.Setenv("BOOKING_CALENDAR_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.BaseURL != "https://bookings.example.com" {
		t.Errorf("base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.GetTimeout() != 30*time.Second {
		t.Errorf("timeout default = %s", cfg.Backend.GetTimeout())
	}
	if cfg.Refresh.GetInterval() != 2*time.Minute {
		t.Errorf("interval = %s, want 2m", cfg.Refresh.GetInterval())
	}
	if cfg.Holidays.Country != "US" || cfg.Holidays.RemoteURL != "https://date.nager.at" {
		t.Errorf("remote defaults = %q %q", cfg.Holidays.Country, cfg.Holidays.RemoteURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("env override log.level = %q, want debug", cfg.Log.Level)
	}

	primary, fallback := cfg.Holidays.Sources()
	if primary != SourceRemote || fallback != SourceTable {
		t.Errorf("Sources() = %q, %q", primary, fallback)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Backend:  BackendConfig{BaseURL: "http://localhost:8000", Timeout: "10s"},
			Holidays: HolidaysConfig{Source: "computed", RemoteURL: "https://date.nager.at", Country: "US"},
			Refresh:  RefreshConfig{Interval: "5m"},
			Log:      LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"table with computed fallback", func(c *Config) { c.Holidays.Source = "table+computed" }, ""},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "bookings" }, "absolute URL"},
		{"unknown source", func(c *Config) { c.Holidays.Source = "ical" }, "holidays.source"},
		{"same fallback", func(c *Config) { c.Holidays.Source = "table+table" }, "must differ"},
		{"remote without country", func(c *Config) {
			c.Holidays.Source = "remote"
			c.Holidays.Country = ""
		}, "holidays.country"},
		{"bad interval", func(c *Config) { c.Refresh.Interval = "soon" }, "refresh.interval"},
		{"sub-second interval", func(c *Config) { c.Refresh.Interval = "500ms" }, "at least 1s"},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = "-1s" }, "backend.timeout"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDurationDefaults(t *testing.T) {
	var h HolidaysConfig
	if h.GetCacheTTL() != 24*time.Hour {
		t.Errorf("GetCacheTTL() = %s", h.GetCacheTTL())
	}
	h.CacheTTL = "garbage"
	if h.GetCacheTTL() != 24*time.Hour {
		t.Errorf("GetCacheTTL() with bad value = %s", h.GetCacheTTL())
	}
}
