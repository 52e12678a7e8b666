package ui

import (
	"spotui/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	inactiveTabStyle  = lipgloss.NewStyle().Border(inactiveTabBorder, true).BorderForeground(highlightColor).Padding(0, 1)
	activeTabStyle    = inactiveTabStyle.Border(activeTabBorder, true).Bold(true)
)

// TabModel selects one of the library filters.
type TabModel struct {
	Tabs   []domain.LibraryFilter
	Active domain.LibraryFilter
}

func NewTabModel() TabModel {
	return TabModel{
		Tabs:   domain.LibraryFilters(),
		Active: domain.FilterAll,
	}
}

func (m *TabModel) Next() { m.Active = m.Active.Next() }

func (m *TabModel) Prev() { m.Active = m.Active.Prev() }

func (m TabModel) View() string {
	var renderedTabs []string

	for _, t := range m.Tabs {
		style := inactiveTabStyle
		if t == m.Active {
			style = activeTabStyle
		}
		renderedTabs = append(renderedTabs, style.Render(t.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}
