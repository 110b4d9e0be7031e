// # cmd/includecost/ui.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"includecost/internal/app"
	"includecost/internal/graph"
	"includecost/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type fileItem struct {
	title, desc string
}

func (i fileItem) Title() string       { return i.title }
func (i fileItem) Description() string { return i.desc }
func (i fileItem) FilterValue() string { return i.title }

type uiModel struct {
	list       list.Model
	set        *graph.Set
	cycle      *graph.CycleError
	key        report.SortKey
	descending bool
	lastUpdate time.Time
}

type updateMsg struct {
	result *app.Result
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.key = nextSortKey(m.key)
			m.reloadItems()
		case "d":
			m.descending = !m.descending
			m.reloadItems()
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.set = msg.result.Set
		m.cycle = msg.result.Cycle
		m.lastUpdate = time.Now()
		m.reloadItems()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *uiModel) reloadItems() {
	resolved := m.set.Resolved()

	items := []list.Item{}
	for _, f := range report.Order(m.set.Files, m.key, m.descending) {
		contrib := "?"
		combined := "?"
		if resolved {
			contrib = report.FormatCount(f.ContribTotal)
			combined = report.FormatCount(f.CombinedLines)
		}
		items = append(items, fileItem{
			title: f.DisplayName(),
			desc: fmt.Sprintf("code %s | combined %s | contrib %s | incl %d | incl by %d",
				report.FormatCount(f.CodeLines), combined, contrib,
				len(f.Includes), len(f.IncludedBy)),
		})
	}
	m.list.SetItems(items)
}

func (m uiModel) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d stubs | sort: %s",
		m.lastUpdate.Format("15:04:05"), m.set.Len(), m.set.StubCount(), sortLabel(m.key, m.descending)))

	var summary string
	if m.cycle != nil {
		summary = cycleStyle.Render(fmt.Sprintf("⚠️  %s", m.cycle.Error()))
	} else {
		summary = successStyle.Render("✅ Acyclic")
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Include Cost Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func sortLabel(key report.SortKey, descending bool) string {
	if descending {
		return string(key) + " ↓"
	}
	return string(key) + " ↑"
}

func nextSortKey(key report.SortKey) report.SortKey {
	keys := report.SortKeys()
	for i, k := range keys {
		if k == key {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func newUIModel(result *app.Result, key report.SortKey, descending bool) uiModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Files by cost"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := uiModel{
		list:       l,
		set:        result.Set,
		cycle:      result.Cycle,
		key:        key,
		descending: descending,
		lastUpdate: time.Now(),
	}
	m.reloadItems()
	return m
}

func runUI(a *app.App, first *app.Result, key report.SortKey, descending, watch bool) error {
	p := tea.NewProgram(newUIModel(first, key, descending), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watch {
		go func() {
			_ = a.Watch(ctx, func(r *app.Result) {
				p.Send(updateMsg{result: r})
			})
		}()
	}

	_, err := p.Run()
	return err
}
