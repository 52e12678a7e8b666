package ui

import (
	"errors"
	"fmt"

	"spotui/internal/catalog"
	"spotui/internal/ports"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var createPlaylistTips = []string{
	"Give your playlist a descriptive name that reflects the mood or theme",
	"Write a description to help others understand what your playlist is about",
	"Start with 10-15 songs and keep adding as you discover new music",
}

// CreatePlaylistModel collects a name and an optional description.
type CreatePlaylistModel struct {
	library *catalog.Library
	inputs  []textinput.Model
	active  int
	created string
	err     error
	styles  Styles
	keys    KeyMap
}

func NewCreatePlaylistModel(library *catalog.Library, styles Styles) CreatePlaylistModel {
	name := textinput.New()
	name.Placeholder = "My Playlist #1"
	name.CharLimit = 100
	name.Prompt = "Name        "

	description := textinput.New()
	description.Placeholder = "Add an optional description"
	description.CharLimit = 300
	description.Prompt = "Description "

	return CreatePlaylistModel{
		library: library,
		inputs:  []textinput.Model{name, description},
		styles:  styles,
		keys:    DefaultKeyMap,
	}
}

func (m *CreatePlaylistModel) Focus() tea.Cmd {
	m.created = ""
	m.err = nil
	return m.inputs[m.active].Focus()
}

func (m *CreatePlaylistModel) Blur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m CreatePlaylistModel) Typing() bool {
	return m.inputs[m.active].Focused()
}

func (m *CreatePlaylistModel) SetSize(w, h int) {
	for i := range m.inputs {
		m.inputs[i].Width = max(w-16, 10)
	}
}

func (m *CreatePlaylistModel) moveTo(i int) tea.Cmd {
	m.inputs[m.active].Blur()
	m.active = i
	return m.inputs[m.active].Focus()
}

func (m CreatePlaylistModel) Update(msg tea.Msg) (CreatePlaylistModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case keyMsg.Type == tea.KeyUp && m.active > 0:
			return m, m.moveTo(m.active - 1)
		case keyMsg.Type == tea.KeyDown && m.active < len(m.inputs)-1:
			return m, m.moveTo(m.active + 1)
		case key.Matches(keyMsg, m.keys.Select):
			return m.submit()
		}
	}

	if isKey && !m.Typing() {
		return m, m.Focus()
	}

	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	if isKey {
		m.err = nil
		m.created = ""
	}
	return m, cmd
}

func (m CreatePlaylistModel) submit() (CreatePlaylistModel, tea.Cmd) {
	playlist, err := m.library.CreatePlaylist(m.inputs[0].Value(), m.inputs[1].Value())
	if err != nil {
		m.err = err
		return m, nil
	}

	m.created = playlist.Name
	m.err = nil
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	cmd := m.moveTo(0)
	return m, tea.Batch(cmd, func() tea.Msg { return ports.PlaylistCreatedMsg{Playlist: playlist} })
}

func (m CreatePlaylistModel) View() string {
	lines := []string{
		m.styles.Title.Render("Create a new playlist"),
		m.styles.Subtle.Render("Give your playlist a name and description to get started"),
		"",
	}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "")

	switch {
	case m.created != "":
		lines = append(lines, m.styles.Notice.Render(fmt.Sprintf("✓ Created %q", m.created)))
	case errors.Is(m.err, catalog.ErrEmptyPlaylistName):
		lines = append(lines, m.styles.ErrorText.Render("Give your playlist a name first"))
	case m.err != nil:
		lines = append(lines, m.styles.ErrorText.Render(m.err.Error()))
	default:
		lines = append(lines, m.styles.Subtle.Render("enter to create • ↑/↓ to move between fields"))
	}

	lines = append(lines, "", m.styles.Section.Render("Tips for creating great playlists"))
	for _, tip := range createPlaylistTips {
		lines = append(lines, m.styles.Subtle.Render("• "+tip))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
