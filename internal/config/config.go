// Package config loads sysprefs settings from a TOML file and SYSPREFS_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/spf13/viper"
)

const EnvConfig = "SYSPREFS_CONFIG"

// Config holds application configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"    toml:"app"`
	Bridge BridgeConfig `mapstructure:"bridge" toml:"bridge"`
	Output OutputConfig `mapstructure:"output" toml:"output"`
	Log    LogConfig    `mapstructure:"log"    toml:"log"`
}

// AppConfig selects the target application.
type AppConfig struct {
	Name string `mapstructure:"name" toml:"name"`
}

// BridgeConfig selects and tunes the scripting runner.
type BridgeConfig struct {
	Backend   string        `mapstructure:"backend"   toml:"backend"`
	Timeout   time.Duration `mapstructure:"timeout"   toml:"timeout"`
	Osascript string        `mapstructure:"osascript" toml:"osascript"`
	Fixture   string        `mapstructure:"fixture"   toml:"fixture,omitempty"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" toml:"format"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		App:    AppConfig{Name: "System Preferences"},
		Bridge: BridgeConfig{Backend: platform.BackendOsascript, Timeout: 30 * time.Second, Osascript: "/usr/bin/osascript"},
		Output: OutputConfig{Format: "yaml"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Path returns the config file location: $SYSPREFS_CONFIG, or
// ~/.config/sysprefs/config.toml.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "sysprefs", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// SYSPREFS_, e.g. SYSPREFS_BRIDGE_BACKEND. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("app.name", def.App.Name)
	v.SetDefault("bridge.backend", def.Bridge.Backend)
	v.SetDefault("bridge.timeout", def.Bridge.Timeout)
	v.SetDefault("bridge.osascript", def.Bridge.Osascript)
	v.SetDefault("bridge.fixture", "")
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("log.level", def.Log.Level)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("SYSPREFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Bridge.Backend {
	case platform.BackendOsascript, platform.BackendSimulator:
	default:
		return fmt.Errorf("invalid bridge.backend %q (expected osascript or simulator)", c.Bridge.Backend)
	}
	switch c.Output.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("invalid output.format %q (expected yaml or json)", c.Output.Format)
	}
	if c.Bridge.Timeout < 0 {
		return fmt.Errorf("invalid bridge.timeout %s", c.Bridge.Timeout)
	}
	return nil
}

// fileConfig is the on-disk form; durations are written as strings.
type fileConfig struct {
	App    AppConfig    `toml:"app"`
	Bridge fileBridge   `toml:"bridge"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type fileBridge struct {
	Backend   string `toml:"backend"`
	Timeout   string `toml:"timeout"`
	Osascript string `toml:"osascript"`
	Fixture   string `toml:"fixture,omitempty"`
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	fc := fileConfig{
		App: c.App,
		Bridge: fileBridge{
			Backend:   c.Bridge.Backend,
			Timeout:   c.Bridge.Timeout.String(),
			Osascript: c.Bridge.Osascript,
			Fixture:   c.Bridge.Fixture,
		},
		Output: c.Output,
		Log:    c.Log,
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fc); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes c to path, creating the directory if needed. It refuses to
// overwrite an existing file unless force is set.
func Save(c Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}
	}
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
