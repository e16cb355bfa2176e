package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	m "refract.dev/pkg/refract/internal/model"
)

func browserFixture() browserModel {
	model := newBrowserModel([]browseItem{
		{rule: "incdec", entry: m.ResultEntry{Kind: m.EntryChange, File: "a.go", Message: "first diff"}},
		{rule: "doubleneg", entry: m.ResultEntry{Kind: m.EntryError, File: "b.go", Message: "second failed"}},
	})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	return updated.(browserModel)
}

func TestBrowserShowsCurrentEntry(t *testing.T) {
	b := browserFixture()

	view := b.View()
	require.Contains(t, view, "entry 1/2")
	require.Contains(t, view, "a.go")
	require.Contains(t, view, "first diff")
}

func TestBrowserNavigatesBetweenEntries(t *testing.T) {
	b := browserFixture()

	next, _ := b.Update(tea.KeyMsg{Type: tea.KeyRight})
	b = next.(browserModel)

	view := b.View()
	require.Contains(t, view, "entry 2/2")
	require.Contains(t, view, "b.go")

	// Stepping past the last entry stays put.
	next, _ = b.Update(tea.KeyMsg{Type: tea.KeyRight})
	b = next.(browserModel)
	require.Contains(t, b.View(), "entry 2/2")

	prev, _ := b.Update(tea.KeyMsg{Type: tea.KeyLeft})
	b = prev.(browserModel)
	require.Contains(t, b.View(), "entry 1/2")
}

func TestBrowserQuits(t *testing.T) {
	b := browserFixture()

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestBrowserEmptyResults(t *testing.T) {
	model := newBrowserModel(nil)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	b := updated.(browserModel)

	require.Contains(t, b.View(), "no entries")
}
