package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cascadevis/cascade/pkg/render/waterfall"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BarListModel - Interactive bar inspection
// =============================================================================

// BarListModel is the bubbletea model for browsing a parsed bar sequence.
// The list shows one row per bar; selecting a stacked bar reveals its
// per-measure breakdown below the list.
type BarListModel struct {
	Title  string
	Bars   []layout.Bar
	Cursor int
	Height int
	Offset int
}

// newBarListModel creates a new bar list model.
func newBarListModel(title string, bars []layout.Bar) BarListModel {
	return BarListModel{
		Title:  title,
		Bars:   bars,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m BarListModel) Init() tea.Cmd {
	return nil
}

func (m BarListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Bars)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Bars) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		if h := msg.Height - 8; h > 3 {
			m.Height = h
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	}
	return m, nil
}

func (m BarListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Bars) {
		end = len(m.Bars)
	}
	for i := m.Offset; i < end; i++ {
		line := formatBarLine(m.Bars[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("❯ ") + listSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if end < len(m.Bars) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(m.Bars)-end)))
		b.WriteString("\n")
	}

	if sel := m.Bars[m.Cursor]; sel.Stacked() {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  segments:"))
		b.WriteString("\n")
		for _, v := range sel.Values {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color(v.Color)).Render("■"),
				listNormalStyle.Render(fmt.Sprintf("%s: %s", v.Measure, waterfall.FormatValue(v.Value)))))
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  ↑/↓ move · q quit"))
	b.WriteString("\n")

	return b.String()
}
