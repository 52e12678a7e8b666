package catalog

import (
	"errors"
	"strings"

	"spotui/internal/domain"

	"github.com/google/uuid"
)

var ErrEmptyPlaylistName = errors.New("playlist name is required")

type ItemKind int

const (
	ItemPlaylist ItemKind = iota
	ItemArtist
	ItemAlbum
)

func (k ItemKind) String() string {
	switch k {
	case ItemArtist:
		return "Artist"
	case ItemAlbum:
		return "Album"
	default:
		return "Playlist"
	}
}

type LibraryItem struct {
	Kind       ItemKind
	Name       string
	Subtitle   string
	TrackCount int
	Pinned     bool
}

// Library holds the session's playlists. Nothing in it outlives the process.
type Library struct {
	tracks    []domain.Track
	playlists []domain.Playlist
}

func NewLibrary(tracks []domain.Track) *Library {
	return &Library{
		tracks:    tracks,
		playlists: SamplePlaylists(len(tracks)),
	}
}

func (l *Library) Tracks() []domain.Track { return l.tracks }

func (l *Library) Playlists() []domain.Playlist {
	return append([]domain.Playlist(nil), l.playlists...)
}

func (l *Library) CreatePlaylist(name, description string) (domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Playlist{}, ErrEmptyPlaylistName
	}

	p := domain.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Creator:     "You",
	}
	l.playlists = append(l.playlists, p)
	return p, nil
}

// Artists groups the catalog by artist, in order of first appearance.
func (l *Library) Artists() []LibraryItem {
	return group(l.tracks, ItemArtist, func(t domain.Track) (string, string) {
		return t.Artist, "Artist"
	})
}

func (l *Library) Albums() []LibraryItem {
	return group(l.tracks, ItemAlbum, func(t domain.Track) (string, string) {
		return t.Album, t.Artist
	})
}

func (l *Library) Items(filter domain.LibraryFilter) []LibraryItem {
	var playlists []LibraryItem
	for _, p := range l.playlists {
		playlists = append(playlists, LibraryItem{
			Kind:       ItemPlaylist,
			Name:       p.Name,
			Subtitle:   "Playlist • " + p.Creator,
			TrackCount: p.TrackCount,
			Pinned:     p.Pinned,
		})
	}

	switch filter {
	case domain.FilterPlaylists:
		return playlists
	case domain.FilterArtists:
		return l.Artists()
	case domain.FilterAlbums:
		return l.Albums()
	default:
		items := append(playlists, l.Artists()...)
		return append(items, l.Albums()...)
	}
}

func group(tracks []domain.Track, kind ItemKind, keyOf func(domain.Track) (string, string)) []LibraryItem {
	index := make(map[string]int)
	var items []LibraryItem
	for _, t := range tracks {
		name, subtitle := keyOf(t)
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			items[i].TrackCount++
			continue
		}
		index[name] = len(items)
		items = append(items, LibraryItem{Kind: kind, Name: name, Subtitle: subtitle, TrackCount: 1})
	}
	return items
}
