package demo

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spincat/pixelpet/internal/factory"
	"github.com/spincat/pixelpet/internal/store"
)

func TestView_Sliders(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()

	for _, d := range factory.Dimensions() {
		assert.Contains(t, view, d.Label())
	}
	assert.Contains(t, view, "Overall")
	assert.Contains(t, view, " 75%")
	assert.Contains(t, view, "press enter to start")
}

func TestView_RunInProgress(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "enter")
	m, _ = tick(m)

	view := m.View()
	assert.Contains(t, view, "✓ Mixing")
	assert.Contains(t, view, "▶ Cooking")
	assert.Contains(t, view, "· Dispatch")
}

func TestView_ProductCard(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "enter")
	for i := 0; i < factory.NumSteps; i++ {
		m, _ = tick(m)
	}
	require.NotNil(t, m.card)

	view := m.View()
	assert.Contains(t, view, m.card.TrackingNumber)
	assert.Contains(t, view, "batch dispatched")
	assert.Contains(t, view, m.card.Rating)
}

func TestView_History(t *testing.T) {
	m := newTestModel(t, Options{})
	card := factory.ProductCard{
		TrackingNumber: "TRK-00001234",
		Scores:         [factory.NumDimensions]int{80, 80, 80, 80, 80},
		Overall:        80,
		Rating:         "excellent",
		CreatedAt:      time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC),
	}

	next, _ := m.Update(historyMsg{runs: []store.Run{{ID: 1, Card: card}}})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Recent batches")
	assert.Contains(t, view, "TRK-00001234")
}

func TestView_StatusBar(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Contains(t, m.View(), "q quit")

	m, _ = press(m, "c")
	assert.Contains(t, m.View(), "no product card to copy")
}

func TestDemo_ProgramSmoke(t *testing.T) {
	m := newTestModel(t, Options{})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
}
