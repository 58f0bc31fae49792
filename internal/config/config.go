// Package config loads studhub settings from <data dir>/config.yaml with
// STUDHUB_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`
	UI  UIConfig  `mapstructure:"ui"  yaml:"ui"`
}

type LogConfig struct {
	Level    string         `mapstructure:"level"    yaml:"level"`
	File     string         `mapstructure:"file"     yaml:"file"`
	JSON     bool           `mapstructure:"json"     yaml:"json"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

type UIConfig struct {
	PageSize     int    `mapstructure:"page_size"     yaml:"page_size"`
	CounterSteps int    `mapstructure:"counter_steps" yaml:"counter_steps"`
	Theme        string `mapstructure:"theme"         yaml:"theme"`
}

func Default(dataDir string) Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "studhub.log"),
			Rotation: RotationConfig{
				MaxSize:    16,
				MaxBackups: 3,
				MaxAge:     14,
			},
		},
		UI: UIConfig{
			PageSize:     50,
			CounterSteps: 24,
			Theme:        "auto",
		},
	}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)
	v.SetDefault("ui.page_size", d.UI.PageSize)
	v.SetDefault("ui.counter_steps", d.UI.CounterSteps)
	v.SetDefault("ui.theme", d.UI.Theme)
}

// Load reads dataDir/config.yaml if present. Missing file means defaults.
func Load(dataDir string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default(dataDir))

	v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("STUDHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read %s: %w", filepath.Join(dataDir, fileName), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.CounterSteps <= 0 {
		return fmt.Errorf("ui.counter_steps must be positive, got %d", c.UI.CounterSteps)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be auto|light|dark, got %q", c.UI.Theme)
	}
	return nil
}

// WriteDefault writes the default config to dataDir/config.yaml unless the
// file already exists. It reports whether a file was written.
func WriteDefault(dataDir string) (string, bool, error) {
	path := filepath.Join(dataDir, fileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, false, err
	}
	b, err := yaml.Marshal(Default(dataDir))
	if err != nil {
		return path, false, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return path, false, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return path, false, err
	}
	return path, true, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
