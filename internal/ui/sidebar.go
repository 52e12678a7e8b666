package ui

import (
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/ports"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var navigationPages = []domain.Page{
	{Kind: domain.PageHome},
	{Kind: domain.PageSearch},
	{Kind: domain.PageLibrary},
	{Kind: domain.PageCreatePlaylist},
	{Kind: domain.PageLikedSongs},
	{Kind: domain.PageDownloaded},
}

type SidebarModel struct {
	entries []domain.Page
	cursor  int
	width   int
	height  int
	styles  Styles
	keys    KeyMap
}

func NewSidebarModel(styles Styles) SidebarModel {
	entries := append([]domain.Page(nil), navigationPages...)
	for _, name := range catalog.SidebarPlaylists() {
		entries = append(entries, domain.PlaylistPage(name))
	}
	return SidebarModel{entries: entries, styles: styles, keys: DefaultKeyMap}
}

// AddPlaylist lists a playlist created during the session, once.
func (m *SidebarModel) AddPlaylist(name string) {
	page := domain.PlaylistPage(name)
	for _, e := range m.entries {
		if e.Equal(page) {
			return
		}
	}
	m.entries = append(m.entries, page)
}

func (m *SidebarModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Sync moves the cursor onto the given page when it is listed.
func (m *SidebarModel) Sync(page domain.Page) {
	for i, e := range m.entries {
		if e.Equal(page) {
			m.cursor = i
			return
		}
	}
}

func (m SidebarModel) Update(msg tea.Msg) (SidebarModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		page := m.entries[m.cursor]
		return m, func() tea.Msg { return ports.NavigateMsg{Page: page} }
	}
	return m, nil
}

func (m SidebarModel) View(active domain.Page, focused bool) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("spotui"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		if i == len(navigationPages) {
			b.WriteString("\n")
			b.WriteString(m.styles.Subtle.Render("PLAYLISTS"))
			b.WriteString("\n")
		}

		pointer := " "
		if focused && i == m.cursor {
			pointer = m.styles.SidebarCursor.String()
		}
		style := m.styles.SidebarItem
		if e.Equal(active) {
			style = m.styles.SidebarActive
		}
		b.WriteString(pointer)
		b.WriteString(style.Render(truncate(e.Title(), max(m.width-3, 4))))
		b.WriteString("\n")
	}
	return b.String()
}
