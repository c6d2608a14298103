package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig
	UI    UIConfig
	Log   LogConfig
}

// StoreConfig selects and locates the persistence backend.
type StoreConfig struct {
	Backend string // "json" or "sqlite"
	Path    string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	Path  string // empty means log output is discarded while the TUI runs
}

// Supported store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "pennyledger")
}

// Load reads configuration from file and env. Env var overrides use prefix
// PENNYLEDGER_, e.g. PENNYLEDGER_STORE_BACKEND=sqlite.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.path", "")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PENNYLEDGER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pennyledger"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PENNYLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Store.Path == "" {
		switch c.Store.Backend {
		case BackendSQLite:
			c.Store.Path = filepath.Join(dataDir(), "pennyledger.db")
		default:
			c.Store.Path = filepath.Join(dataDir(), "state.json")
		}
	}
	if c.Store.Backend != BackendJSON && c.Store.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("PENNYLEDGER_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "pennyledger", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
