package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "refract.dev/pkg/refract/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// browseItem is one result entry flattened for navigation.
type browseItem struct {
	rule  string
	entry m.ResultEntry
}

// browserModel is the Bubble Tea model for paging through entries.
type browserModel struct {
	items    []browseItem
	index    int
	viewport viewport.Model
	ready    bool
}

func newBrowserModel(items []browseItem) browserModel {
	return browserModel{items: items}
}

// runBrowser opens the interactive results browser.
func runBrowser(results []m.RuleResults) error {
	var items []browseItem

	for _, perRule := range results {
		for _, entry := range perRule.Entries {
			items = append(items, browseItem{rule: perRule.Rule, entry: entry})
		}
	}

	program := tea.NewProgram(newBrowserModel(items), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (b browserModel) Init() tea.Cmd {
	return nil
}

func (b browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 1

		if !b.ready {
			b.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			b.ready = true
		} else {
			b.viewport.Width = msg.Width
			b.viewport.Height = msg.Height - headerHeight - footerHeight
		}

		b.viewport.SetContent(b.content())

		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case "left", "h":
			if b.index > 0 {
				b.index--
				b.viewport.SetContent(b.content())
				b.viewport.GotoTop()
			}

			return b, nil
		case "right", "l", "enter", "tab":
			if b.index < len(b.items)-1 {
				b.index++
				b.viewport.SetContent(b.content())
				b.viewport.GotoTop()
			}

			return b, nil
		}
	}

	var cmd tea.Cmd

	b.viewport, cmd = b.viewport.Update(msg)

	return b, cmd
}

func (b browserModel) View() string {
	if !b.ready {
		return "loading..."
	}

	return b.header() + "\n" + b.viewport.View() + "\n" + b.footer()
}

func (b browserModel) header() string {
	if len(b.items) == 0 {
		return headerStyle.Render("refract results") + "\n" + footerStyle.Render("no entries")
	}

	item := b.items[b.index]

	label := ruleStyle.Render(item.rule)
	if item.entry.Kind == m.EntryError {
		label = errorStyle.Render(item.rule + " (error)")
	}

	title := fmt.Sprintf("entry %d/%d  %s", b.index+1, len(b.items), label)

	return headerStyle.Render("refract results") + "\n" + title + "  " + string(item.entry.File)
}

func (b browserModel) footer() string {
	return footerStyle.Render(fmt.Sprintf("←/→ switch entry · ↑/↓ scroll · q quit · %3.f%%", b.viewport.ScrollPercent()*100))
}

func (b browserModel) content() string {
	if len(b.items) == 0 {
		return "No result entries were recorded."
	}

	item := b.items[b.index]
	if item.entry.Kind == m.EntryChange {
		return item.entry.Message
	}

	return errorStyle.Render(item.entry.Message)
}
