package ui

import (
	"fmt"
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type componentFocus int

const (
	inputFocus componentFocus = iota
	listFocus
)

// SearchModel filters the catalog as the query changes.
type SearchModel struct {
	tracks    []domain.Track
	textInput textinput.Model
	results   trackListModel
	result    catalog.SearchResult
	focus     componentFocus
	styles    Styles
	keys      KeyMap
	width     int
	height    int
}

func NewSearchModel(tracks []domain.Track, styles Styles) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "What do you want to listen to?"
	ti.CharLimit = 156
	ti.Prompt = "⌕ "

	return SearchModel{
		tracks:    tracks,
		textInput: ti,
		results:   newTrackListModel(nil, styles),
		styles:    styles,
		keys:      DefaultKeyMap,
	}
}

func (m *SearchModel) Focus() tea.Cmd {
	m.focus = inputFocus
	return m.textInput.Focus()
}

func (m *SearchModel) Blur() {
	m.textInput.Blur()
}

// Typing reports whether keystrokes belong to the query input.
func (m SearchModel) Typing() bool {
	return m.focus == inputFocus && m.textInput.Focused()
}

func (m SearchModel) Result() catalog.SearchResult { return m.result }

func (m *SearchModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.textInput.Width = max(w-4, 10)
	m.results.SetSize(w, h-4)
}

func (m *SearchModel) runQuery() {
	m.result = catalog.Search(m.tracks, m.textInput.Value())
	m.results.SetTracks(m.result.Tracks)
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.focus {
	case inputFocus:
		if isKey && (key.Matches(keyMsg, m.keys.Select) || keyMsg.Type == tea.KeyDown) {
			if m.result.State() == catalog.SearchHasMatches {
				m.focus = listFocus
				m.textInput.Blur()
			}
			return m, nil
		}
		if !m.textInput.Focused() {
			if isKey {
				return m, m.Focus()
			}
			return m, nil
		}

		before := m.textInput.Value()
		m.textInput, cmd = m.textInput.Update(msg)
		if m.textInput.Value() != before {
			m.runQuery()
		}
		return m, cmd

	case listFocus:
		if isKey && key.Matches(keyMsg, m.keys.Up) && m.results.list.Index() == 0 {
			return m, m.Focus()
		}
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m SearchModel) View(current nowPlaying) string {
	var body string
	switch m.result.State() {
	case catalog.SearchIdle:
		body = m.browseView()
	case catalog.SearchNoMatches:
		body = lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("No results found for %q", strings.TrimSpace(m.result.Query)),
			m.styles.Subtle.Render("Try searching for something else"),
		)
	case catalog.SearchHasMatches:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render("Search Results"),
			m.results.View(current),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.textInput.View(), "", body)
}

func (m SearchModel) browseView() string {
	var cards []string
	for _, c := range catalog.BrowseCategories() {
		card := lipgloss.NewStyle().
			Width(14).
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(c.Color)).
			Render(c.Name)
		cards = append(cards, card)
	}

	perRow := max((m.width+1)/17, 1)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		var row []string
		for _, c := range cards[i:end] {
			row = append(row, c, " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...), "")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{m.styles.Title.Render("Browse all")}, rows...)...,
	)
}
