// Package config resolves envpath's data directory and loads its settings.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultTitle is the reserved console title of the PATH viewer.
const DefaultTitle = "envpath - PATH viewer"

// Config holds all runtime settings.
type Config struct {
	Relay     RelayConfig     `koanf:"relay"`
	Singleton SingletonConfig `koanf:"singleton"`
	Store     StoreConfig     `koanf:"store"`
	History   HistoryConfig   `koanf:"history"`
	Log       LogConfig       `koanf:"log"`
}

// RelayConfig controls the elevated output relay.
type RelayConfig struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	// Dir holds relay channel files. Empty means the OS temp dir.
	Dir string `koanf:"dir"`
}

// SingletonConfig controls viewer discovery.
type SingletonConfig struct {
	Address string `koanf:"address"`
	Title   string `koanf:"title"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Backend is one of auto, registry, powershell, file.
	Backend string `koanf:"backend"`
	File    string `koanf:"file"`
}

// HistoryConfig toggles the snapshot journal.
type HistoryConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LogConfig sets the log file location. Empty means the XDG state dir.
type LogConfig struct {
	File string `koanf:"file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"relay.poll_interval": "100ms",
		"relay.dir":           "",
		"singleton.address":   "127.0.0.1:47113",
		"singleton.title":     DefaultTitle,
		"store.backend":       "auto",
		"store.file":          "",
		"history.enabled":     true,
		"log.file":            "",
	}
}

// Load merges defaults, the optional config.toml in the data dir, and
// ENVPATH_* environment variables, in that order.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	cfgPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
		}
	}

	// ENVPATH_RELAY_POLL_INTERVAL -> relay.poll_interval
	err = k.Load(env.Provider("ENVPATH_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "ENVPATH_"))
	return strings.Replace(s, "_", ".", 1)
}

func postProcess(cfg *Config) error {
	if cfg.Relay.PollInterval <= 0 {
		return fmt.Errorf("relay.poll_interval must be positive, got %s", cfg.Relay.PollInterval)
	}
	if cfg.Relay.Dir == "" {
		cfg.Relay.Dir = os.TempDir()
	}
	if strings.TrimSpace(cfg.Singleton.Title) == "" {
		cfg.Singleton.Title = DefaultTitle
	}
	switch cfg.Store.Backend {
	case "auto", "registry", "powershell", "file":
	default:
		return fmt.Errorf("unknown store.backend %q", cfg.Store.Backend)
	}
	if cfg.Store.File == "" {
		p, err := EnvironmentFilePath()
		if err != nil {
			return err
		}
		cfg.Store.File = p
	}
	return nil
}
