package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pranaysashank/hpath/pkg/fsops"
)

// ConfigFileName is the TOML file looked up inside the XDG config
// directory, under the hpath subdirectory.
const ConfigFileName = "hpath.toml"

// Config holds the CLI defaults. Copy and error modes are stored as their
// string spellings and validated on load.
type Config struct {
	CopyMode  string `koanf:"copy_mode"`
	ErrorMode string `koanf:"error_mode"`
	Verbosity int    `koanf:"verbosity"`
}

// Default returns the built-in configuration: strict copies, fail-early
// recursion, warnings-only logging.
func Default() Config {
	return Config{
		CopyMode:  fsops.Strict.String(),
		ErrorMode: fsops.FailEarly.String(),
		Verbosity: 0,
	}
}

// Load builds the effective configuration from defaults, the optional
// config file, and HPATH_* environment variables, in that order.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	err := k.Load(confmap.Provider(map[string]interface{}{
		"copy_mode":  defaults.CopyMode,
		"error_mode": defaults.ErrorMode,
		"verbosity":  defaults.Verbosity,
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	configPath := configFilePath()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	err = k.Load(env.Provider("HPATH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "HPATH_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that mode spellings parse.
func (c *Config) Validate() error {
	if _, err := fsops.ParseCopyMode(c.CopyMode); err != nil {
		return err
	}
	if _, err := fsops.ParseErrorMode(c.ErrorMode); err != nil {
		return err
	}
	return nil
}

// DefaultCopyMode returns the configured copy mode. Validate must have
// passed.
func (c *Config) DefaultCopyMode() fsops.CopyMode {
	m, _ := fsops.ParseCopyMode(c.CopyMode)
	return m
}

// DefaultErrorMode returns the configured recursive error mode.
func (c *Config) DefaultErrorMode() fsops.RecursiveErrorMode {
	m, _ := fsops.ParseErrorMode(c.ErrorMode)
	return m
}

// configFilePath resolves the config file location. HPATH_CONFIG overrides
// the XDG lookup, mostly for tests.
func configFilePath() string {
	if override := os.Getenv("HPATH_CONFIG"); override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, "hpath", ConfigFileName)
}
