// Package demo implements the interactive factory demo mode: quality
// sliders, the stepped production run, the product card and run history.
package demo

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spincat/pixelpet/internal/audio"
	"github.com/spincat/pixelpet/internal/config"
	"github.com/spincat/pixelpet/internal/factory"
	"github.com/spincat/pixelpet/internal/log"
	"github.com/spincat/pixelpet/internal/mode/shared"
	"github.com/spincat/pixelpet/internal/store"
)

// stepTickMsg advances the production run.
type stepTickMsg time.Time

// historyMsg delivers freshly loaded run history.
type historyMsg struct {
	runs []store.Run
	err  error
}

// runSavedMsg reports the outcome of persisting a completed run.
type runSavedMsg struct {
	err error
}

// statusClearMsg expires a transient status message.
type statusClearMsg struct{ seq int }

// Model is the Bubble Tea model for the factory demo.
type Model struct {
	cfg       config.Config
	line      *factory.Line
	run       *factory.Run
	card      *factory.ProductCard
	history   []store.Run
	runs      *store.RunRepository
	engine    *audio.Engine
	bus       *audio.Bus
	clipboard shared.Clipboard
	settings  config.AudioSettings

	selected factory.Dimension
	bars     []progress.Model

	status    string
	statusSeq int

	width  int
	height int
}

// Options wires the model's collaborators. Nil fields degrade gracefully:
// no store means no persisted history, no engine means no volume keys.
type Options struct {
	Config    config.Config
	Runs      *store.RunRepository
	Engine    *audio.Engine
	Bus       *audio.Bus
	Clipboard shared.Clipboard
	Settings  config.AudioSettings
}

// New creates the demo model.
func New(opts Options) Model {
	bars := make([]progress.Model, factory.NumDimensions)
	for i := range bars {
		bars[i] = progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		)
	}

	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = shared.SystemClipboard{}
	}

	return Model{
		cfg:       opts.Config,
		line:      factory.NewLine(),
		run:       factory.NewRun(),
		runs:      opts.Runs,
		engine:    opts.Engine,
		bus:       opts.Bus,
		clipboard: clipboard,
		settings:  opts.Settings,
		bars:      bars,
	}
}

// Init loads the run history.
func (m Model) Init() tea.Cmd {
	return m.loadHistory()
}

// loadHistory fetches recent runs from the store.
func (m Model) loadHistory() tea.Cmd {
	if m.runs == nil {
		return nil
	}
	repo := m.runs
	limit := m.cfg.HistoryLimit
	return func() tea.Msg {
		runs, err := repo.List(limit)
		return historyMsg{runs: runs, err: err}
	}
}

// saveRun persists a completed run.
func (m Model) saveRun(card factory.ProductCard) tea.Cmd {
	if m.runs == nil {
		return nil
	}
	repo := m.runs
	return func() tea.Msg {
		_, err := repo.Save(card)
		return runSavedMsg{err: err}
	}
}

// stepTick schedules the next production step.
func (m Model) stepTick() tea.Cmd {
	return tea.Tick(m.cfg.StepInterval, func(t time.Time) tea.Msg {
		return stepTickMsg(t)
	})
}

// publish emits an abstract action on the audio bus.
func (m Model) publish(action string) {
	if m.bus != nil {
		m.bus.Publish(audio.NewActionEvent(action))
	}
}

// setStatus shows a transient status message.
func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// persistSettings writes the audio settings blob, logging failures.
func (m Model) persistSettings() {
	if err := m.cfg.SaveAudioSettings(m.settings); err != nil {
		log.ErrorErr(log.CatConfig, "saving audio settings failed", err)
	}
}
