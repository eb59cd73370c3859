// Package config provides configuration types and defaults for pixelpet.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration options for pixelpet.
type Config struct {
	// ConfigDir overrides the directory holding sounds.json, mappings.json,
	// settings.json and the run history database. Empty means the default
	// user config directory.
	ConfigDir string `mapstructure:"config_dir"`

	// StepInterval is the delay between production run steps.
	StepInterval time.Duration `mapstructure:"step_interval"`

	// SliderStep is the amount a slider moves per key press.
	SliderStep int `mapstructure:"slider_step"`

	// HistoryLimit caps how many past runs the history pane shows.
	HistoryLimit int `mapstructure:"history_limit"`

	Audio AudioConfig `mapstructure:"audio"`
	Log   LogConfig   `mapstructure:"log"`
}

// AudioConfig holds audio subsystem configuration options.
type AudioConfig struct {
	// MaxVoices caps simultaneously playing sounds.
	MaxVoices int `mapstructure:"max_voices"`

	// VoiceTimeout releases a voice slot whose completion callback never
	// fired, e.g. after a speaker stall.
	VoiceTimeout time.Duration `mapstructure:"voice_timeout"`

	// WatchConfig reloads sounds.json and mappings.json when they change.
	WatchConfig bool `mapstructure:"watch_config"`
}

// LogConfig holds logging configuration options.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		StepInterval: 900 * time.Millisecond,
		SliderStep:   5,
		HistoryLimit: 10,
		Audio: AudioConfig{
			MaxVoices:    8,
			VoiceTimeout: 10 * time.Second,
			WatchConfig:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks configuration values for errors.
func (c Config) Validate() error {
	if c.StepInterval <= 0 {
		return fmt.Errorf("step_interval must be positive, got %s", c.StepInterval)
	}
	if c.SliderStep < 1 || c.SliderStep > 100 {
		return fmt.Errorf("slider_step must be between 1 and 100, got %d", c.SliderStep)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.Audio.MaxVoices < 1 {
		return fmt.Errorf("audio.max_voices must be positive, got %d", c.Audio.MaxVoices)
	}
	if c.Audio.VoiceTimeout <= 0 {
		return fmt.Errorf("audio.voice_timeout must be positive, got %s", c.Audio.VoiceTimeout)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// Dir returns the effective config directory. Resolution order: explicit
// ConfigDir, $XDG_CONFIG_HOME/pixelpet, ~/.config/pixelpet.
func (c Config) Dir() string {
	if c.ConfigDir != "" {
		return c.ConfigDir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pixelpet")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pixelpet"
	}
	return filepath.Join(home, ".config", "pixelpet")
}

// LogPath returns the log file location inside the config directory.
func (c Config) LogPath() string {
	return filepath.Join(c.Dir(), "pixelpet.log")
}

// DBPath returns the run history database location.
func (c Config) DBPath() string {
	return filepath.Join(c.Dir(), "pixelpet.db")
}

// Load reads config.yaml from the config directory on top of defaults.
// A missing file is not an error; a malformed one is.
func Load(configDir string) (Config, error) {
	cfg := Defaults()
	cfg.ConfigDir = configDir

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir())

	v.SetDefault("step_interval", cfg.StepInterval)
	v.SetDefault("slider_step", cfg.SliderStep)
	v.SetDefault("history_limit", cfg.HistoryLimit)
	v.SetDefault("audio.max_voices", cfg.Audio.MaxVoices)
	v.SetDefault("audio.voice_timeout", cfg.Audio.VoiceTimeout)
	v.SetDefault("audio.watch_config", cfg.Audio.WatchConfig)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	// The flag wins over any config_dir key in the file.
	if configDir != "" {
		cfg.ConfigDir = configDir
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Pixelpet Configuration

# Directory holding sounds.json, mappings.json, settings.json and the
# run history database (default: ~/.config/pixelpet)
# config_dir: /path/to/dir

# Delay between production run steps
step_interval: 900ms

# Amount a slider moves per key press
slider_step: 5

# How many past runs the history pane shows
history_limit: 10

# Audio settings
audio:
  max_voices: 8       # Cap on simultaneously playing sounds
  voice_timeout: 10s  # Safety net releasing slots that never complete
  watch_config: true  # Reload sounds.json / mappings.json on change

# Logging
log:
  level: info  # debug, info, warn or error
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
