package demo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spincat/pixelpet/internal/audio"
	"github.com/spincat/pixelpet/internal/config"
	"github.com/spincat/pixelpet/internal/factory"
)

// fakeClipboard records copied text in memory.
type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return nil
}

// silentPlayer satisfies audio.Player without touching hardware.
type silentPlayer struct{}

func (silentPlayer) Init(beep.SampleRate, int) error { return nil }
func (silentPlayer) Play(beep.Streamer)              {}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.SliderStep == 0 {
		cfg := config.Defaults()
		cfg.ConfigDir = t.TempDir()
		opts.Config = cfg
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &fakeClipboard{}
	}
	if opts.Settings.MasterVolume == 0 {
		opts.Settings = config.DefaultAudioSettings()
	}
	return New(opts)
}

func newTestEngine(t *testing.T, bus *audio.Bus) *audio.Engine {
	t.Helper()
	return audio.NewEngine(audio.EngineConfig{
		Library:      audio.NewLibrary(t.TempDir()),
		Bus:          bus,
		Enabled:      true,
		MasterVolume: 0.7,
		Player:       silentPlayer{},
	})
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// tick delivers one production step tick.
func tick(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(stepTickMsg(time.Now()))
	return next.(Model), cmd
}

func TestUpdate_AdjustSlider(t *testing.T) {
	m := newTestModel(t, Options{})
	start := m.line.Value(factory.Recipe)

	m, _ = press(m, "right")
	assert.Equal(t, start+m.cfg.SliderStep, m.line.Value(factory.Recipe))

	m, _ = press(m, "left")
	m, _ = press(m, "left")
	assert.Equal(t, start-m.cfg.SliderStep, m.line.Value(factory.Recipe))
}

func TestUpdate_SelectionMoves(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, factory.Recipe, m.selected)

	m, _ = press(m, "down")
	assert.Equal(t, factory.Production, m.selected)

	m, _ = press(m, "up")
	m, _ = press(m, "up")
	assert.Equal(t, factory.Recipe, m.selected, "selection stops at the first dimension")

	for i := 0; i < 10; i++ {
		m, _ = press(m, "j")
	}
	assert.Equal(t, factory.Logistics, m.selected, "selection stops at the last dimension")
}

func TestUpdate_SlidersLockedDuringRun(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "enter")
	require.True(t, m.run.Active())

	before := m.line.Value(factory.Recipe)
	m, _ = press(m, "right")
	assert.Equal(t, before, m.line.Value(factory.Recipe))
	assert.NotEmpty(t, m.status)
}

func TestUpdate_RunLifecycle(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := press(m, "enter")
	require.True(t, m.run.Active())
	require.NotNil(t, cmd, "starting a run schedules the first tick")

	for i := 0; i < factory.NumSteps; i++ {
		m, _ = tick(m)
	}

	assert.True(t, m.run.Complete())
	require.NotNil(t, m.card)
	assert.Regexp(t, `^TRK-\d{8}$`, m.card.TrackingNumber)
	assert.Equal(t, m.line.Overall(), m.card.Overall)
	assert.Equal(t, factory.Rating(m.card.Overall), m.card.Rating)
}

func TestUpdate_StartWhileActiveRejected(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "enter")

	m, _ = press(m, "enter")
	assert.NotEmpty(t, m.status)
	assert.True(t, m.run.Active())
}

func TestUpdate_TickWithoutRunIsNoop(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := tick(m)
	assert.Nil(t, cmd)
	assert.Nil(t, m.card)
}

func TestUpdate_Reset(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "right")
	m, _ = press(m, "enter")
	for i := 0; i < factory.NumSteps; i++ {
		m, _ = tick(m)
	}
	require.NotNil(t, m.card)

	m, _ = press(m, "r")
	assert.Equal(t, 75, m.line.Value(factory.Recipe))
	assert.Nil(t, m.card)
	assert.Equal(t, factory.RunIdle, m.run.State())
}

func TestUpdate_ResetDeniedDuringRun(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "right")
	m, _ = press(m, "enter")

	m, _ = press(m, "r")
	assert.True(t, m.run.Active())
	assert.Equal(t, 80, m.line.Value(factory.Recipe), "values survive a denied reset")
}

func TestUpdate_CopyCard(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, Options{Clipboard: clip})

	m, _ = press(m, "c")
	assert.Empty(t, clip.copied, "nothing to copy before a run completes")
	assert.NotEmpty(t, m.status)

	m, _ = press(m, "enter")
	for i := 0; i < factory.NumSteps; i++ {
		m, _ = tick(m)
	}

	m, _ = press(m, "c")
	require.Len(t, clip.copied, 1)
	assert.Contains(t, clip.copied[0], m.card.TrackingNumber)
	assert.Contains(t, clip.copied[0], m.card.BatchID)
}

func TestUpdate_DeniedActionOnBus(t *testing.T) {
	bus := audio.NewBus()
	defer bus.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := bus.Subscribe(ctx, &audio.EventFilter{Types: []audio.EventType{audio.EventAction}})

	m := newTestModel(t, Options{Bus: bus})
	m, _ = press(m, "c")

	select {
	case event := <-ch:
		assert.Equal(t, audio.ActionDenied, event.Action)
	case <-time.After(time.Second):
		t.Fatal("expected a denied action event")
	}
}

func TestUpdate_ToggleAudioPersists(t *testing.T) {
	bus := audio.NewBus()
	defer bus.Shutdown()
	engine := newTestEngine(t, bus)

	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.ConfigDir = dir

	m := newTestModel(t, Options{
		Config:   cfg,
		Engine:   engine,
		Bus:      bus,
		Settings: config.DefaultAudioSettings(),
	})

	m, _ = press(m, "m")
	assert.False(t, engine.Enabled())
	require.FileExists(t, filepath.Join(dir, "settings.json"))

	persisted := cfg.LoadAudioSettings()
	assert.False(t, persisted.Enabled)

	m, _ = press(m, "m")
	assert.True(t, engine.Enabled())
	assert.True(t, cfg.LoadAudioSettings().Enabled)
}

func TestUpdate_VolumeKeys(t *testing.T) {
	bus := audio.NewBus()
	defer bus.Shutdown()
	engine := newTestEngine(t, bus)

	m := newTestModel(t, Options{Engine: engine, Bus: bus, Settings: config.DefaultAudioSettings()})

	m, _ = press(m, "+")
	assert.InDelta(t, 0.8, engine.MasterVolume(), 1e-9)

	for i := 0; i < 5; i++ {
		m, _ = press(m, "+")
	}
	assert.Equal(t, 1.0, engine.MasterVolume(), "volume clamps at full")

	m, _ = press(m, "-")
	assert.InDelta(t, 0.9, engine.MasterVolume(), 1e-9)

	persisted := m.cfg.LoadAudioSettings()
	assert.InDelta(t, 0.9, persisted.MasterVolume, 1e-9)
}

func TestUpdate_StatusExpiry(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "c")
	require.NotEmpty(t, m.status)
	seq := m.statusSeq

	// A stale clear must not wipe a newer status.
	next, _ := m.Update(statusClearMsg{seq: seq - 1})
	m = next.(Model)
	assert.NotEmpty(t, m.status)

	next, _ = m.Update(statusClearMsg{seq: seq})
	m = next.(Model)
	assert.Empty(t, m.status)
}
