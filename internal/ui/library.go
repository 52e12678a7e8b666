package ui

import (
	"fmt"
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/ports"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const gridColumns = 3

var (
	libraryPrevTab = key.NewBinding(key.WithKeys("h", "shift+tab"))
	libraryNextTab = key.NewBinding(key.WithKeys("l"))
	libraryLayout  = key.NewBinding(key.WithKeys("g"))
)

// LibraryModel lists playlists, artists and albums under a filter, as a list or a grid.
type LibraryModel struct {
	library *catalog.Library
	tabs    TabModel
	items   []catalog.LibraryItem
	cursor  int
	grid    bool
	width   int
	styles  Styles
	keys    KeyMap
}

func NewLibraryModel(library *catalog.Library, styles Styles) LibraryModel {
	m := LibraryModel{
		library: library,
		tabs:    NewTabModel(),
		styles:  styles,
		keys:    DefaultKeyMap,
	}
	m.Refresh()
	return m
}

// Refresh reloads the items for the active filter.
func (m *LibraryModel) Refresh() {
	m.items = m.library.Items(m.tabs.Active)
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m *LibraryModel) SetSize(w, h int) { m.width = w }

func (m LibraryModel) Filter() domain.LibraryFilter { return m.tabs.Active }

func (m LibraryModel) Grid() bool { return m.grid }

func (m LibraryModel) Update(msg tea.Msg) (LibraryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	step := 1
	if m.grid {
		step = gridColumns
	}

	switch {
	case key.Matches(keyMsg, libraryNextTab):
		m.tabs.Next()
		m.cursor = 0
		m.Refresh()
	case key.Matches(keyMsg, libraryPrevTab):
		m.tabs.Prev()
		m.cursor = 0
		m.Refresh()
	case key.Matches(keyMsg, libraryLayout):
		m.grid = !m.grid
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = max(m.cursor-step, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = min(m.cursor+step, max(len(m.items)-1, 0))
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.items) && m.items[m.cursor].Kind == catalog.ItemPlaylist {
			item := m.items[m.cursor]
			page := domain.PlaylistPage(item.Name)
			if item.Pinned {
				page = domain.Page{Kind: domain.PageLikedSongs}
			}
			return m, func() tea.Msg { return ports.NavigateMsg{Page: page} }
		}
	}
	return m, nil
}

func (m LibraryModel) itemView(i int, item catalog.LibraryItem, width int) string {
	style := m.styles.ListNormal
	pointer := "  "
	if i == m.cursor {
		style = m.styles.ListSelected
		pointer = m.styles.ListPointer.String()
	}

	name := item.Name
	if item.Pinned {
		name = "★ " + name
	}
	subtitle := item.Subtitle
	if item.TrackCount > 0 {
		subtitle = fmt.Sprintf("%s • %d %s", subtitle, item.TrackCount, pluralize(item.TrackCount, "song", "songs"))
	}

	if m.grid {
		card := lipgloss.JoinVertical(lipgloss.Left,
			style.Render(truncate(name, width-4)),
			m.styles.Subtle.Render(truncate(item.Kind.String(), width-4)),
		)
		cardStyle := m.styles.Card.Width(width - 2)
		if i == m.cursor {
			cardStyle = cardStyle.BorderForeground(highlightColor)
		}
		return cardStyle.Render(card)
	}

	return style.Render(pointer+truncate(name, max(width/2, 8))) + "  " +
		m.styles.Subtle.Render(truncate(subtitle, max(width/2-4, 8)))
}

func (m LibraryModel) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Your Library"),
		m.tabs.View(),
	)
	layout := "list"
	if m.grid {
		layout = "grid"
	}
	hint := m.styles.Subtle.Render(fmt.Sprintf("h/l filter • g %s view", layout))

	if len(m.items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.styles.Subtle.Render("Nothing in your library yet."))
	}

	var body string
	if m.grid {
		cellWidth := max(m.width/gridColumns, 12)
		var rows []string
		for i := 0; i < len(m.items); i += gridColumns {
			var cells []string
			for j := i; j < min(i+gridColumns, len(m.items)); j++ {
				cells = append(cells, m.itemView(j, m.items[j], cellWidth))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		body = strings.Join(rows, "\n")
	} else {
		lines := make([]string, len(m.items))
		for i, item := range m.items {
			lines[i] = m.itemView(i, item, m.width)
		}
		body = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, hint, "", body)
}
