package ui

import (
	"errors"
	"fmt"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/logger"
	"spotui/internal/playback"
	"spotui/internal/ports"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	MIN_WIDTH     = 60
	MIN_HEIGHT    = 20
	SIDEBAR_WIDTH = 24
	PLAYER_HEIGHT = 3
)

// AppModel is the root model. It is the only place the playback controller is
// mutated, so every audio event is funneled through Update.
type AppModel struct {
	width, height int
	controller    *playback.Controller
	events        <-chan ports.AudioEvent
	library       *catalog.Library
	controls      domain.ControlsConfig
	page          domain.Page
	focus         ports.FocusState
	sidebar       SidebarModel
	search        SearchModel
	libraryView   LibraryModel
	create        CreatePlaylistModel
	home          trackListModel
	liked         trackListModel
	downloaded    trackListModel
	playlist      trackListModel
	player        PlayerModel
	help          help.Model
	keys          KeyMap
	notice        string
	noticeIsError bool
	noticeID      int
	styles        Styles
}

func InitialModel(controller *playback.Controller, library *catalog.Library, events <-chan ports.AudioEvent, controls domain.ControlsConfig) AppModel {
	styles := DefaultStyles()
	tracks := library.Tracks()

	m := AppModel{
		controller:  controller,
		events:      events,
		library:     library,
		controls:    controls,
		page:        domain.Page{Kind: domain.PageHome},
		focus:       ports.SidebarFocus,
		sidebar:     NewSidebarModel(styles),
		search:      NewSearchModel(tracks, styles),
		libraryView: NewLibraryModel(library, styles),
		create:      NewCreatePlaylistModel(library, styles),
		home:        newTrackListModel(catalog.RecentlyPlayed(tracks), styles),
		liked:       newTrackListModel(tracks, styles),
		downloaded:  newTrackListModel(catalog.Downloaded(tracks), styles),
		playlist:    newTrackListModel(tracks, styles),
		player:      NewPlayerModel(styles),
		help:        help.New(),
		keys:        DefaultKeyMap,
		styles:      styles,
	}
	m.liked.showAdded = true
	m.playlist.showAdded = true
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.player.Init()}
	if m.events != nil {
		cmds = append(cmds, waitForAudioEvent(m.events))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Page() domain.Page { return m.page }

func (m AppModel) Focus() ports.FocusState { return m.focus }

func (m AppModel) Notice() string { return m.notice }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ports.AudioEventMsg:
		var cmd tea.Cmd
		if err := m.controller.HandleEvent(msg.Event); err != nil {
			cmd = m.setError(err)
		}
		return m, tea.Batch(cmd, waitForAudioEvent(m.events))

	case ports.PlayTrackMsg:
		if err := m.controller.SelectTrack(msg.Track); err != nil {
			return m, m.setError(err)
		}
		return m, nil

	case ports.NavigateMsg:
		return m, m.navigate(msg.Page)

	case ports.ChangeFocusMsg:
		return m, m.setFocus(msg.NewFocus)

	case ports.PlaylistCreatedMsg:
		m.sidebar.AddPlaylist(msg.Playlist.Name)
		m.libraryView.Refresh()
		logger.Log.Info().Str("playlist", msg.Playlist.Name).Msg("Playlist created")
		return m, m.setNotice(fmt.Sprintf("Created playlist %q", msg.Playlist.Name), false)

	case ports.NoticeMsg:
		return m, m.setNotice(msg.Text, false)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateContent(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.focus == ports.ContentFocus && m.typing() {
		if key.Matches(msg, m.keys.SwitchFocus) || key.Matches(msg, m.keys.Back) {
			return m, m.setFocus(ports.SidebarFocus)
		}
		return m.updateContent(msg)
	}

	state := m.controller.State()
	var err error

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.PlayPause):
		err = m.controller.TogglePlayPause()
	case key.Matches(msg, m.keys.Next):
		err = m.controller.Next()
	case key.Matches(msg, m.keys.Previous):
		err = m.controller.Previous()
	case key.Matches(msg, m.keys.SeekBack):
		err = m.controller.Seek(state.CurrentTime - m.controls.SeekStep)
	case key.Matches(msg, m.keys.SeekForward):
		err = m.controller.Seek(state.CurrentTime + m.controls.SeekStep)
	case key.Matches(msg, m.keys.VolumeUp):
		err = m.controller.SetVolume(state.Volume + m.controls.VolumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		err = m.controller.SetVolume(state.Volume - m.controls.VolumeStep)
	case key.Matches(msg, m.keys.Shuffle):
		m.controller.ToggleShuffle()
	case key.Matches(msg, m.keys.Repeat):
		m.controller.CycleRepeatMode()
	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == ports.SidebarFocus {
			return m, m.setFocus(ports.ContentFocus)
		}
		return m, m.setFocus(ports.SidebarFocus)
	case key.Matches(msg, m.keys.Search):
		return m, m.navigate(domain.Page{Kind: domain.PageSearch})
	case key.Matches(msg, m.keys.Back):
		return m, m.setFocus(ports.SidebarFocus)
	default:
		if m.focus == ports.SidebarFocus {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.Update(msg)
			return m, cmd
		}
		return m.updateContent(msg)
	}

	if err != nil {
		return m, m.setError(err)
	}
	return m, nil
}

func (m AppModel) updateContent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page.Kind {
	case domain.PageSearch:
		m.search, cmd = m.search.Update(msg)
	case domain.PageLibrary:
		m.libraryView, cmd = m.libraryView.Update(msg)
	case domain.PageCreatePlaylist:
		m.create, cmd = m.create.Update(msg)
	default:
		if tracks := m.pageTracks(m.page); tracks != nil {
			*tracks, cmd = tracks.Update(msg)
		}
	}
	return m, cmd
}

func (m AppModel) typing() bool {
	switch m.page.Kind {
	case domain.PageSearch:
		return m.search.Typing()
	case domain.PageCreatePlaylist:
		return m.create.Typing()
	}
	return false
}

func (m *AppModel) navigate(page domain.Page) tea.Cmd {
	logger.Log.Debug().Str("page", page.Title()).Msg("Navigating")

	m.page = page
	m.sidebar.Sync(page)
	switch page.Kind {
	case domain.PagePlaylist:
		m.playlist.SetTracks(m.library.Tracks())
	case domain.PageLibrary:
		m.libraryView.Refresh()
	}
	return m.setFocus(ports.ContentFocus)
}

func (m *AppModel) setFocus(focus ports.FocusState) tea.Cmd {
	m.focus = focus
	m.search.Blur()
	m.create.Blur()
	if focus == ports.SidebarFocus {
		return nil
	}

	switch m.page.Kind {
	case domain.PageSearch:
		return m.search.Focus()
	case domain.PageCreatePlaylist:
		return m.create.Focus()
	}
	return nil
}

func (m *AppModel) setNotice(text string, isError bool) tea.Cmd {
	m.noticeID++
	m.notice = text
	m.noticeIsError = isError
	return clearNoticeAfter(m.noticeID)
}

func (m *AppModel) setError(err error) tea.Cmd {
	var loadErr *playback.ResourceLoadError
	text := err.Error()
	if errors.As(err, &loadErr) {
		text = fmt.Sprintf("Could not play this track: %v", loadErr.Err)
	}
	return m.setNotice(text, true)
}

func (m *AppModel) contentSize() (int, int) {
	width := m.width - SIDEBAR_WIDTH - 4 - m.styles.App.GetHorizontalFrameSize()
	height := m.height - (PLAYER_HEIGHT + 2) - 1 - lipgloss.Height(m.help.View(m.keys)) - 2
	return max(width, 10), max(height, 3)
}

func (m *AppModel) resize() {
	width, height := m.contentSize()
	m.help.Width = m.width
	m.sidebar.SetSize(SIDEBAR_WIDTH, height)
	m.search.SetSize(width, height)
	m.libraryView.SetSize(width, height)
	m.create.SetSize(width, height)
	m.home.SetSize(width, min(height/3, m.home.Len()))
	m.liked.SetSize(width, height-5)
	m.downloaded.SetSize(width, height-5)
	m.playlist.SetSize(width, height-5)
	m.player.SetSize(m.width - 4 - m.styles.App.GetHorizontalFrameSize())
}

func (m AppModel) contentView(current nowPlaying) string {
	width, _ := m.contentSize()
	switch m.page.Kind {
	case domain.PageHome:
		return m.homeView(width, current)
	case domain.PageSearch:
		return m.search.View(current)
	case domain.PageLibrary:
		return m.libraryView.View()
	case domain.PageCreatePlaylist:
		return m.create.View()
	case domain.PageLikedSongs:
		return m.likedSongsView(current)
	case domain.PageDownloaded:
		return m.downloadedView(current)
	case domain.PagePlaylist:
		return m.playlistView(m.page.Playlist, current)
	}
	return ""
}

func (m AppModel) View() string {
	if m.width < MIN_WIDTH || m.height < MIN_HEIGHT {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Terminal too small")
	}

	state := m.controller.State()
	current := nowPlayingOf(state)
	width, height := m.contentSize()

	sidebarBox, contentBox := m.styles.Box, m.styles.FocusedBox
	if m.focus == ports.SidebarFocus {
		sidebarBox, contentBox = m.styles.FocusedBox, m.styles.Box
	}

	sidebar := sidebarBox.Width(SIDEBAR_WIDTH).Height(height).MaxHeight(height + 2).
		Render(m.sidebar.View(m.page, m.focus == ports.SidebarFocus))
	content := contentBox.Width(width).Height(height).MaxHeight(height + 2).
		Render(m.contentView(current))
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	playerWidth := lipgloss.Width(main) - 2
	player := m.styles.Box.Width(playerWidth).Height(PLAYER_HEIGHT).Render(m.player.View(state))

	notice := ""
	if m.notice != "" {
		style := m.styles.Notice
		if m.noticeIsError {
			style = m.styles.ErrorText
		}
		notice = style.Render(truncate(m.notice, playerWidth))
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		main,
		player,
		notice,
		m.help.View(m.keys),
	))
}
