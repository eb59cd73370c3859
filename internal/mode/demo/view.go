package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/spincat/pixelpet/internal/factory"
	"github.com/spincat/pixelpet/internal/ui/styles"
)

const cardTextWidth = 38

// View renders the demo screen: sliders on the left, the production line
// and product card on the right, run history below, status bar at the foot.
func (m Model) View() string {
	left := m.renderSliders()
	right := lipgloss.JoinVertical(lipgloss.Left, m.renderSteps(), m.renderCard())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	sections := []string{
		styles.TitleStyle.Render("Pixelpet Cat-Food Factory"),
		body,
		m.renderHistory(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSliders() string {
	var b strings.Builder
	b.WriteString(styles.LabelStyle.Render("Quality sliders"))
	b.WriteString("\n")

	for i, d := range factory.Dimensions() {
		value := m.line.Value(d)
		label := fmt.Sprintf("%-11s", d.Label())
		if d == m.selected {
			label = styles.SelectedStyle.Render("▸ " + label)
		} else {
			label = styles.LabelStyle.Render("  " + label)
		}

		bar := m.bars[i].ViewAs(float64(value) / 100)
		line := fmt.Sprintf("%s %s %s %s",
			label,
			bar,
			styles.FormatPercent(value),
			styles.RatingStyle(factory.Rating(value)).Render(factory.Rating(value)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	overall := m.line.Overall()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %s",
		styles.TitleStyle.Render("  Overall    "),
		styles.FormatPercent(overall),
		styles.RatingStyle(factory.Rating(overall)).Render(factory.Rating(overall)),
	))

	panel := styles.PanelStyle
	if !m.run.Active() {
		panel = styles.FocusedPanelStyle
	}
	return panel.Render(b.String())
}

func (m Model) renderSteps() string {
	var b strings.Builder
	b.WriteString(styles.LabelStyle.Render("Production line"))
	b.WriteString("\n")

	current, running := m.run.Current()
	for _, s := range factory.Steps() {
		switch {
		case m.run.StepDone(s):
			b.WriteString(styles.StepDoneStyle.Render("✓ " + s.Label()))
		case running && s == current:
			b.WriteString(styles.StepCurrentStyle.Render("▶ " + s.Label() + "…"))
		default:
			b.WriteString(styles.StepPendingStyle.Render("· " + s.Label()))
		}
		b.WriteString("\n")
	}

	switch m.run.State() {
	case factory.RunIdle:
		b.WriteString(styles.MutedStyle.Render("press enter to start"))
	case factory.RunComplete:
		b.WriteString(styles.StepDoneStyle.Render("batch dispatched"))
	}

	panel := styles.PanelStyle
	if m.run.Active() {
		panel = styles.FocusedPanelStyle
	}
	return panel.Render(b.String())
}

func (m Model) renderCard() string {
	if m.card == nil {
		return ""
	}
	c := m.card

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Pixelpet Cat Food"))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(c.TrackingNumber))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("batch " + c.BatchID))
	b.WriteString("\n\n")

	tagline := wordwrap.String(cardTagline(c.Rating), cardTextWidth)
	b.WriteString(styles.LabelStyle.Render(tagline))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s %s",
		styles.LabelStyle.Render("Overall"),
		styles.FormatPercent(c.Overall),
		styles.RatingStyle(c.Rating).Render(c.Rating),
	))

	return styles.CardStyle.Render(b.String())
}

// cardTagline describes the batch in marketing copy matched to its rating.
func cardTagline(rating string) string {
	switch rating {
	case "outstanding":
		return "A flawless batch. Every whisker in the tasting panel twitched with approval."
	case "excellent":
		return "A very fine batch. Discerning cats will come back for seconds."
	case "solid":
		return "A dependable batch. Honest food for honest cats."
	case "uneven":
		return "A mixed batch. Some bowls will be licked clean, some merely sniffed."
	default:
		return "A rough batch. Recommended only for cats with no other options."
	}
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.LabelStyle.Render("Recent batches"))
	b.WriteString("\n")
	for _, run := range m.history {
		c := run.Card
		b.WriteString(fmt.Sprintf("%s  %s %s  %s\n",
			styles.MutedStyle.Render(c.CreatedAt.Format(time.DateTime)),
			c.TrackingNumber,
			styles.FormatPercent(c.Overall),
			styles.RatingStyle(c.Rating).Render(c.Rating),
		))
	}
	return styles.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatusBar() string {
	help := "↑/↓ select · ←/→ adjust · enter run · r reset · c copy · m mute · +/- volume · q quit"

	audio := ""
	if m.engine != nil {
		audio = fmt.Sprintf("  %s %s",
			styles.FormatMuteIndicator(m.engine.Enabled()),
			styles.FormatVolume(m.engine.MasterVolume()),
		)
	}

	if m.status != "" {
		return styles.StatusBarStyle.Render(m.status + audio)
	}
	return styles.StatusBarStyle.Render(help + audio)
}
