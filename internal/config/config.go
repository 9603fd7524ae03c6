// Package config loads the tripbudget app config and the trip file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all tripbudget app configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Rates      RatesConfig      `toml:"rates"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	TripFile string `toml:"trip_file,omitempty"`
	Format   string `toml:"format" validate:"omitempty,oneof=table json yaml"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig controls the background recompute service.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	PollSeconds  int    `toml:"poll_seconds" validate:"gte=1"`
	EventsBuffer int    `toml:"events_buffer" validate:"gte=1"`
}

// RatesConfig points at the exchange-rate endpoint.
type RatesConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
	APIKey  string `toml:"api_key,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Format: "table",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			PollSeconds:  2,
			EventsBuffer: 200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripbudget")
}

// DataDir returns the XDG data directory holding the snapshot database and
// daemon runtime files.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tripbudget")
}

// SnapshotDBPath returns the sqlite file used for saved scenarios.
func SnapshotDBPath() string {
	return filepath.Join(DataDir(), "snapshots.db")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadEnv reads a .env file from the working directory if there is one.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", fieldErrors(err))
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return writeTOML(ConfigPath(), cfg)
}

// TripPath resolves the trip file: env var first, then config, then the
// default location next to config.toml.
func TripPath(cfg Config) string {
	if p := os.Getenv("TRIPBUDGET_TRIP_FILE"); p != "" {
		return p
	}
	if cfg.General.TripFile != "" {
		return cfg.General.TripFile
	}
	return filepath.Join(ConfigDir(), "trip.toml")
}

// GetRatesAPIKey returns the API key from env var or config, in that order.
func GetRatesAPIKey(cfg Config) string {
	if key := os.Getenv("TRIPBUDGET_RATES_API_KEY"); key != "" {
		return key
	}
	return cfg.Rates.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func writeTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
