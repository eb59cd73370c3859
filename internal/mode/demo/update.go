package demo

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spincat/pixelpet/internal/audio"
	"github.com/spincat/pixelpet/internal/factory"
	"github.com/spincat/pixelpet/internal/log"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stepTickMsg:
		return m.advanceRun()

	case historyMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "loading run history failed", msg.err)
			return m, nil
		}
		m.history = msg.runs
		return m, nil

	case runSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "saving run failed", msg.err)
			return m, nil
		}
		return m, m.loadHistory()

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if int(m.selected) < factory.NumDimensions-1 {
			m.selected++
		}
		return m, nil

	case "left", "h":
		return m.adjustSlider(-m.cfg.SliderStep)

	case "right", "l":
		return m.adjustSlider(m.cfg.SliderStep)

	case "enter", "s":
		return m.startRun()

	case "r":
		return m.reset()

	case "c":
		return m.copyCard()

	case "m":
		return m.toggleAudio()

	case "+", "=":
		return m.adjustVolume(0.1)

	case "-":
		return m.adjustVolume(-0.1)
	}

	return m, nil
}

func (m Model) adjustSlider(delta int) (tea.Model, tea.Cmd) {
	if m.run.Active() {
		m.publish(audio.ActionDenied)
		return m, m.setStatus("sliders are locked while the line is running")
	}

	m.line.Adjust(m.selected, delta)
	m.publish(audio.ActionSliderChange)
	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	if !m.run.Start() {
		m.publish(audio.ActionDenied)
		return m, m.setStatus("a run is already in progress")
	}

	m.card = nil
	log.Info(log.CatRun, "production run started", "overall", m.line.Overall())
	return m, m.stepTick()
}

func (m Model) advanceRun() (tea.Model, tea.Cmd) {
	finished, done, ok := m.run.Advance()
	if !ok {
		return m, nil
	}

	if !done {
		m.publish(audio.ActionRunStep)
		log.Debug(log.CatRun, "step complete", "step", finished.Label())
		return m, m.stepTick()
	}

	card := factory.NewProductCard(m.line)
	m.card = &card
	m.publish(audio.ActionCardRevealed)
	log.Info(log.CatRun, "production run complete",
		"tracking", card.TrackingNumber, "batch", card.BatchID, "rating", card.Rating)
	return m, m.saveRun(card)
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	if m.run.Active() {
		m.publish(audio.ActionDenied)
		return m, m.setStatus("cannot reset while the line is running")
	}

	m.line.Reset()
	m.run.Reset()
	m.card = nil
	m.publish(audio.ActionSliderChange)
	return m, m.setStatus("line reset to defaults")
}

func (m Model) copyCard() (tea.Model, tea.Cmd) {
	if m.card == nil {
		m.publish(audio.ActionDenied)
		return m, m.setStatus("no product card to copy")
	}

	if err := m.clipboard.Copy(m.card.Summary()); err != nil {
		log.ErrorErr(log.CatUI, "clipboard copy failed", err)
		return m, m.setStatus("clipboard copy failed")
	}
	return m, m.setStatus("product card copied")
}

func (m Model) toggleAudio() (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}

	enabled := !m.engine.Enabled()
	m.engine.SetEnabled(enabled)
	m.settings.Enabled = enabled
	m.persistSettings()

	if enabled {
		return m, m.setStatus("audio on")
	}
	return m, m.setStatus("audio off")
}

func (m Model) adjustVolume(delta float64) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}

	m.engine.SetMasterVolume(m.engine.MasterVolume() + delta)
	m.settings.MasterVolume = m.engine.MasterVolume()
	m.persistSettings()
	return m, nil
}
