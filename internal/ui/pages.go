package ui

import (
	"fmt"
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// collectionHeader is the banner above Liked Songs, Downloaded and playlist pages.
type collectionHeader struct {
	title       string
	description string
	meta        string
	color       int
}

func (m AppModel) renderCollection(h collectionHeader, tracks trackListModel, empty [2]string, current nowPlaying) string {
	banner := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subtle.Render("PLAYLIST"),
		m.styles.Header(h.color).Render(h.title),
		h.description,
		m.styles.Subtle.Render(h.meta),
		"",
	)

	if tracks.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			banner,
			m.styles.Title.Render(empty[0]),
			m.styles.Subtle.Render(empty[1]),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, banner, tracks.View(current))
}

func (m AppModel) homeView(width int, current nowPlaying) string {
	var made []string
	for _, t := range catalog.MadeForYou(m.library.Tracks()) {
		made = append(made, m.styles.Card.Width(22).Render(lipgloss.JoinVertical(lipgloss.Left,
			truncate(t.Title, 20),
			m.styles.Subtle.Render(truncate("By "+t.Artist, 20)),
		)))
	}

	var popular []string
	for _, p := range catalog.PopularPlaylists() {
		popular = append(popular, m.styles.Card.Width(22).Render(lipgloss.JoinVertical(lipgloss.Left,
			truncate(p.Name, 20),
			m.styles.Subtle.Render(truncate(p.Description, 20)),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Good evening"),
		m.styles.Section.Render("Recently played"),
		m.home.View(current),
		m.styles.Section.Render("Made for you"),
		wrapCards(made, width, 24),
		m.styles.Section.Render("Popular playlists"),
		wrapCards(popular, width, 24),
	)
}

// wrapCards lays equally sized cards out in as many rows as the width requires.
func wrapCards(cards []string, width, cardWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := max(width/cardWidth, 1)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+perRow, len(cards))]...))
	}
	return strings.Join(rows, "\n")
}

func (m AppModel) likedSongsView(current nowPlaying) string {
	n := m.liked.Len()
	return m.renderCollection(collectionHeader{
		title:       "Liked Songs",
		description: "Your favorite tracks all in one place",
		meta:        fmt.Sprintf("You • %d %s", n, pluralize(n, "song", "songs")),
		color:       0,
	}, m.liked, [2]string{"Songs you like will appear here", "Save songs by tapping the heart icon."}, current)
}

func (m AppModel) downloadedView(current nowPlaying) string {
	n := m.downloaded.Len()
	return m.renderCollection(collectionHeader{
		title:       "Downloaded",
		description: "Your offline music collection",
		meta:        fmt.Sprintf("You • %d %s downloaded", n, pluralize(n, "song", "songs")),
		color:       2,
	}, m.downloaded, [2]string{"No downloaded music", "Download songs to listen offline"}, current)
}

func (m AppModel) playlistView(name string, current nowPlaying) string {
	description := fmt.Sprintf("Your personal %s collection", strings.ToLower(name))
	creator := "You"
	for _, p := range m.library.Playlists() {
		if p.Name == name {
			if p.Description != "" {
				description = p.Description
			}
			if p.Creator != "" {
				creator = p.Creator
			}
			break
		}
	}

	tracks := m.library.Tracks()
	followers := catalog.Followers(name)
	meta := fmt.Sprintf("%s • %d %s • %d %s, %s",
		creator,
		followers, pluralize(followers, "like", "likes"),
		len(tracks), pluralize(len(tracks), "song", "songs"),
		catalog.FormatTotalDuration(catalog.TotalSeconds(tracks)),
	)

	return m.renderCollection(collectionHeader{
		title:       name,
		description: description,
		meta:        meta,
		color:       catalog.GradientIndex(name, len(headerPalette)),
	}, m.playlist, [2]string{"This playlist is empty", "Add some songs to get started"}, current)
}

// pageTracks is the track list shown on a page, if any.
func (m *AppModel) pageTracks(page domain.Page) *trackListModel {
	switch page.Kind {
	case domain.PageHome:
		return &m.home
	case domain.PageLikedSongs:
		return &m.liked
	case domain.PageDownloaded:
		return &m.downloaded
	case domain.PagePlaylist:
		return &m.playlist
	case domain.PageSearch, domain.PageLibrary, domain.PageCreatePlaylist:
		return nil
	}
	return nil
}
