package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spincat/pixelpet/internal/log"
)

// AudioSettings is the user-adjustable audio state persisted between runs.
// Stored verbatim as JSON so hand edits survive a round trip.
type AudioSettings struct {
	MasterVolume    float64            `json:"master_volume"`
	Enabled         bool               `json:"enabled"`
	CategoryVolumes map[string]float64 `json:"category_volumes,omitempty"`
}

// DefaultAudioSettings returns the settings used when nothing is persisted.
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{
		MasterVolume: 0.7,
		Enabled:      true,
	}
}

// Normalize clamps volumes into [0,1].
func (s *AudioSettings) Normalize() {
	s.MasterVolume = clamp01(s.MasterVolume)
	for k, v := range s.CategoryVolumes {
		s.CategoryVolumes[k] = clamp01(v)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// settingsPath returns the settings file location inside the config directory.
func (c Config) settingsPath() string {
	return filepath.Join(c.Dir(), "settings.json")
}

// LoadAudioSettings reads persisted audio settings. A missing or malformed
// file is not an error: defaults are returned and the problem is logged.
func (c Config) LoadAudioSettings() AudioSettings {
	path := c.settingsPath()
	data, err := os.ReadFile(path) //nolint:gosec // G304: path derives from app config
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn(log.CatConfig, "reading settings failed, using defaults", "path", path, "error", err)
		}
		return DefaultAudioSettings()
	}

	var s AudioSettings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Warn(log.CatConfig, "settings file malformed, using defaults", "path", path, "error", err)
		return DefaultAudioSettings()
	}
	s.Normalize()
	return s
}

// SaveAudioSettings persists audio settings to the config directory.
func (c Config) SaveAudioSettings(s AudioSettings) error {
	s.Normalize()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(c.Dir(), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(c.settingsPath(), data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
