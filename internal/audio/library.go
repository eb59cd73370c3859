package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spincat/pixelpet/internal/log"
)

// SoundDef is one named sound in sounds.json.
type SoundDef struct {
	// Settings is the comma-separated sfxr parameter string.
	Settings string `json:"settings"`
	// Category groups sounds for per-category volume control, e.g. "ui",
	// "production", "feedback".
	Category string `json:"category"`
	// Description is a human note shown by the sounds command.
	Description string `json:"description,omitempty"`
}

// Well-known abstract actions the UI triggers.
const (
	ActionSliderChange = "slider.change"
	ActionRunStep      = "run.step"
	ActionCardRevealed = "card.revealed"
	ActionDenied       = "ui.denied"
)

// builtinSounds are the sound definitions used when sounds.json is absent.
func builtinSounds() map[string]SoundDef {
	return map[string]SoundDef{
		"blip": {
			Settings:    "0,,.167,.1637,.1361,.7212,.0399,-.363,,,,,,.1314,.0517,,.0154,-.1633,1,,,.0515,,.2",
			Category:    "ui",
			Description: "Short square blip for slider movement",
		},
		"thunk": {
			Settings:    "3,,.3626,.5543,.191,.0731,,-.3749,,,,,,,,,,,1,,,,,.4",
			Category:    "production",
			Description: "Low noise hit marking a production step",
		},
		"fanfare": {
			Settings:    "1,,.0398,,.4198,.3891,,.4383,,,,,,,,.616,,,1,,,,,.5",
			Category:    "feedback",
			Description: "Rising sawtooth for the finished product card",
		},
		"buzz": {
			Settings:    "0,.2,.1099,.0733,.0854,.14,,-.1891,.36,,,.9826,,,.4642,,-.1194,.2327,.8815,-.2364,.0992,.0076,.2,.5",
			Category:    "feedback",
			Description: "Harsh buzz for rejected actions",
		},
	}
}

// builtinMappings are the action bindings used when mappings.json is absent.
func builtinMappings() map[string]string {
	return map[string]string{
		ActionSliderChange: "blip",
		ActionRunStep:      "thunk",
		ActionCardRevealed: "fanfare",
		ActionDenied:       "buzz",
	}
}

// Library maps abstract action names to sound definitions. Contents come
// from sounds.json and mappings.json in the config directory, with built-in
// fallbacks when either file is missing or malformed.
type Library struct {
	mu       sync.RWMutex
	dir      string
	sounds   map[string]SoundDef
	mappings map[string]string
}

// NewLibrary creates a library loaded from dir. Load problems are logged
// and fall back to built-ins, never returned.
func NewLibrary(dir string) *Library {
	l := &Library{dir: dir}
	l.Reload()
	return l
}

// Reload re-reads both config files, falling back to built-ins per file.
func (l *Library) Reload() {
	sounds := builtinSounds()
	if loaded, err := loadSoundsFile(filepath.Join(l.dir, "sounds.json")); err != nil {
		log.Warn(log.CatAudio, "sounds.json unusable, using built-ins", "error", err)
	} else if loaded != nil {
		sounds = loaded
	}

	mappings := builtinMappings()
	if loaded, err := loadMappingsFile(filepath.Join(l.dir, "mappings.json")); err != nil {
		log.Warn(log.CatAudio, "mappings.json unusable, using built-ins", "error", err)
	} else if loaded != nil {
		mappings = loaded
	}

	l.mu.Lock()
	l.sounds = sounds
	l.mappings = mappings
	l.mu.Unlock()

	log.Debug(log.CatAudio, "sound library loaded", "sounds", len(sounds), "mappings", len(mappings))
}

// loadSoundsFile returns (nil, nil) when the file does not exist.
func loadSoundsFile(path string) (map[string]SoundDef, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path derives from app config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var sounds map[string]SoundDef
	if err := json.Unmarshal(data, &sounds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	for name, def := range sounds {
		if def.Settings == "" {
			return nil, fmt.Errorf("sound %q has no settings string", name)
		}
	}
	return sounds, nil
}

// loadMappingsFile returns (nil, nil) when the file does not exist.
func loadMappingsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path derives from app config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var mappings map[string]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return mappings, nil
}

// Resolve returns the sound bound to an abstract action. ok is false for
// unknown actions and for mappings naming a sound that does not exist.
func (l *Library) Resolve(action string) (name string, def SoundDef, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	name, ok = l.mappings[action]
	if !ok {
		return "", SoundDef{}, false
	}
	def, ok = l.sounds[name]
	if !ok {
		log.Warn(log.CatAudio, "mapping names unknown sound", "action", action, "sound", name)
		return "", SoundDef{}, false
	}
	return name, def, true
}

// Sound returns a sound definition by name.
func (l *Library) Sound(name string) (SoundDef, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.sounds[name]
	return def, ok
}

// Sounds returns a copy of all sound definitions.
func (l *Library) Sounds() map[string]SoundDef {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]SoundDef, len(l.sounds))
	for k, v := range l.sounds {
		out[k] = v
	}
	return out
}

// Mappings returns a copy of all action bindings.
func (l *Library) Mappings() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.mappings))
	for k, v := range l.mappings {
		out[k] = v
	}
	return out
}

// Watch reloads the library whenever sounds.json or mappings.json changes.
// It blocks until ctx is cancelled; callers run it in a goroutine. onReload,
// if non-nil, runs after each successful reload.
func (l *Library) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the files: editors replace files on save,
	// which would drop a per-file watch.
	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watching %s: %w", l.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			base := filepath.Base(event.Name)
			if base != "sounds.json" && base != "mappings.json" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Info(log.CatAudio, "sound config changed, reloading", "file", base)
			l.Reload()
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(log.CatAudio, "watcher error", "error", err)
		}
	}
}
