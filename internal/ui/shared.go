package ui

import (
	"fmt"
	"io"
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/ports"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type trackItem struct {
	track domain.Track
	index int
}

func (i trackItem) FilterValue() string { return i.track.Title }

// nowPlaying is what the delegate needs to mark the current track.
type nowPlaying struct {
	id      string
	playing bool
}

func nowPlayingOf(state domain.PlaybackState) nowPlaying {
	if state.CurrentTrack == nil {
		return nowPlaying{}
	}
	return nowPlaying{id: state.CurrentTrack.ID, playing: state.IsPlaying}
}

type trackDelegate struct {
	styles    Styles
	current   nowPlaying
	showAdded bool
}

func (d trackDelegate) Height() int                               { return 1 }
func (d trackDelegate) Spacing() int                              { return 0 }
func (d trackDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d trackDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(trackItem)
	if !ok {
		return
	}

	itemStyle := d.styles.ListNormal
	pointer := "  "
	if index == m.Index() {
		itemStyle = d.styles.ListSelected
		pointer = d.styles.ListPointer.String()
	}

	marker := fmt.Sprintf("%2d", ti.index+1)
	if ti.track.ID == d.current.id {
		itemStyle = d.styles.Playing
		marker = " ■"
		if d.current.playing {
			marker = " ♪"
		}
	}

	var line strings.Builder
	line.WriteString(marker)
	line.WriteString("  ")
	line.WriteString(ti.track.Title)
	line.WriteString(" · ")
	line.WriteString(ti.track.Artist)

	text := line.String()
	duration := ti.track.Duration
	if d.showAdded {
		days := catalog.DaysAgo(ti.track.ID, 30)
		duration = fmt.Sprintf("%2d %s ago  %s", days, pluralize(days, "day", "days"), duration)
	}
	if m.Width() > 0 {
		lineWidth := m.Width() - lipgloss.Width(pointer) - lipgloss.Width(duration) - 2
		text = truncate(text, lineWidth)
		if pad := lineWidth - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	fmt.Fprint(w, itemStyle.Render(pointer+text+"  "+duration))
}

// trackListModel is a navigable list of tracks; enter asks the app to play the
// selected one.
type trackListModel struct {
	list      list.Model
	styles    Styles
	keys      KeyMap
	showAdded bool
}

func newTrackListModel(tracks []domain.Track, styles Styles) trackListModel {
	li := list.New(nil, trackDelegate{styles: styles}, 0, 0)
	li.SetShowTitle(false)
	li.SetShowStatusBar(false)
	li.SetShowPagination(false)
	li.SetShowHelp(false)
	li.SetFilteringEnabled(false)
	li.DisableQuitKeybindings()

	m := trackListModel{list: li, styles: styles, keys: DefaultKeyMap}
	m.SetTracks(tracks)
	return m
}

func (m *trackListModel) SetTracks(tracks []domain.Track) {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t, index: i}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *trackListModel) SetSize(w, h int) {
	m.list.SetSize(w, max(h, 1))
}

func (m trackListModel) Len() int { return len(m.list.Items()) }

func (m trackListModel) Selected() (domain.Track, bool) {
	ti, ok := m.list.SelectedItem().(trackItem)
	if !ok {
		return domain.Track{}, false
	}
	return ti.track, true
}

func (m trackListModel) Update(msg tea.Msg) (trackListModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Select) {
		if track, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ports.PlayTrackMsg{Track: track} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m trackListModel) View(current nowPlaying) string {
	if m.Len() == 0 {
		return m.styles.Subtle.Render("No songs here yet.")
	}
	li := m.list
	li.SetDelegate(trackDelegate{styles: m.styles, current: current, showAdded: m.showAdded})
	return li.View()
}
