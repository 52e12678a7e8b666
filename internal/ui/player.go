package ui

import (
	"fmt"

	"spotui/internal/catalog"
	"spotui/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const idlePlayerText = "Select a song to start playing"

type PlayerModel struct {
	width    int
	progress progress.Model
	spinner  spinner.Model
	styles   Styles
}

func NewPlayerModel(styles Styles) PlayerModel {
	bar := progress.New(
		progress.WithSolidFill(string(accentColor.Dark)),
		progress.WithoutPercentage(),
	)
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner
	return PlayerModel{progress: bar, spinner: s, styles: styles}
}

func (m PlayerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m PlayerModel) Update(msg tea.Msg) (PlayerModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// loading is true between selecting a track and the backend reporting anything about it.
func loading(state domain.PlaybackState) bool {
	return state.IsPlaying && state.Duration == 0 && state.CurrentTime == 0
}

func (m *PlayerModel) SetSize(w int) {
	m.width = w
	m.progress.Width = max(w-2*len("00:00")-4, 10)
}

func indicator(styles Styles, label string, on bool) string {
	if on {
		return styles.IndicatorOn.Render(label)
	}
	return styles.Indicator.Render(label)
}

func repeatLabel(mode domain.RepeatMode) string {
	if mode == domain.RepeatOne {
		return "⟲1"
	}
	return "⟲"
}

func (m PlayerModel) View(state domain.PlaybackState) string {
	if !state.HasTrack() {
		idle := m.styles.Subtle.Render(idlePlayerText)
		return lipgloss.JoinVertical(lipgloss.Left, idle, "", m.volumeView(state.Volume))
	}

	status := "▶"
	if state.IsPlaying {
		status = "❚❚"
	}
	if loading(state) {
		status = m.spinner.View()
	}

	track := state.CurrentTrack
	nowPlaying := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.PlayerTitle.Render(truncate(track.Title, max(m.width/2, 8))),
		" - ",
		m.styles.PlayerArtist.Render(truncate(track.Artist, max(m.width/3, 8))),
	)

	controls := lipgloss.JoinHorizontal(lipgloss.Left,
		indicator(m.styles, "⤮", state.Shuffle), "  ",
		m.styles.Title.Render(status), "  ",
		indicator(m.styles, repeatLabel(state.Repeat), state.Repeat != domain.RepeatOff), "    ",
		m.volumeView(state.Volume),
	)

	bar := lipgloss.JoinHorizontal(lipgloss.Left,
		catalog.FormatClock(state.CurrentTime), " ",
		m.progress.ViewAs(state.Progress()), " ",
		catalog.FormatClock(state.Duration),
	)

	return lipgloss.JoinVertical(lipgloss.Left, nowPlaying, controls, bar)
}

func (m PlayerModel) volumeView(volume float64) string {
	return m.styles.Subtle.Render(fmt.Sprintf("vol %d%%", int(volume*100+0.5)))
}
