// Package cmd implements the pixelpet command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spincat/pixelpet/internal/audio"
	"github.com/spincat/pixelpet/internal/config"
	"github.com/spincat/pixelpet/internal/log"
	"github.com/spincat/pixelpet/internal/mode/demo"
	"github.com/spincat/pixelpet/internal/store"
)

var (
	configDir string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pixelpet",
	Short: "Pixel cat-food factory demo with sfxr sound effects",
	Long: `Pixelpet is a terminal toy: tune the five quality sliders of a pixel
cat-food factory, run the production line and collect the product card,
with retro sfxr sound effects for every interaction.

Sounds and action bindings live in sounds.json and mappings.json in the
config directory and reload on change.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configDir)
		return err
	},
	RunE: runRoot,
}

// Execute runs the root command.
func Execute() {
	defer log.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"directory for config, sounds and run history (default ~/.config/pixelpet)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := log.Init(cfg.LogPath(), cfg.Log.Level); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := audio.NewBus()
	defer bus.Shutdown()

	library := audio.NewLibrary(cfg.Dir())
	settings := cfg.LoadAudioSettings()

	engine := audio.NewEngine(audio.EngineConfig{
		Library:         library,
		Bus:             bus,
		MaxVoices:       cfg.Audio.MaxVoices,
		VoiceTimeout:    cfg.Audio.VoiceTimeout,
		MasterVolume:    settings.MasterVolume,
		Enabled:         settings.Enabled,
		CategoryVolumes: settings.CategoryVolumes,
	})
	go engine.Run(ctx)

	if cfg.Audio.WatchConfig {
		go func() {
			// Rendered buffers cache by settings string, so a reload must
			// flush them for edited sounds to take effect.
			if err := library.Watch(ctx, engine.FlushCache); err != nil {
				log.Warn(log.CatAudio, "sound config watcher stopped", "error", err)
			}
		}()
	}

	m := demo.New(demo.Options{
		Config:   cfg,
		Runs:     db.Runs(),
		Engine:   engine,
		Bus:      bus,
		Settings: settings,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// Keep the history table bounded between sessions.
	if cfg.HistoryLimit > 0 {
		if _, err := db.Runs().Prune(cfg.HistoryLimit); err != nil {
			log.ErrorErr(log.CatDB, "pruning run history failed", err)
		}
	}
	return nil
}
