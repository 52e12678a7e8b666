package domain

type PageKind int

const (
	PageHome PageKind = iota
	PageSearch
	PageLibrary
	PageCreatePlaylist
	PageLikedSongs
	PageDownloaded
	PagePlaylist
)

// Page identifies what the main panel shows. Playlist is only meaningful when
// Kind is PagePlaylist.
type Page struct {
	Kind     PageKind
	Playlist string
}

func PlaylistPage(name string) Page {
	return Page{Kind: PagePlaylist, Playlist: name}
}

func (p Page) Equal(other Page) bool {
	if p.Kind != other.Kind {
		return false
	}
	return p.Kind != PagePlaylist || p.Playlist == other.Playlist
}

func (p Page) Title() string {
	switch p.Kind {
	case PageHome:
		return "Home"
	case PageSearch:
		return "Search"
	case PageLibrary:
		return "Your Library"
	case PageCreatePlaylist:
		return "Create Playlist"
	case PageLikedSongs:
		return "Liked Songs"
	case PageDownloaded:
		return "Downloaded"
	case PagePlaylist:
		return p.Playlist
	}
	return ""
}

type LibraryFilter int

const (
	FilterAll LibraryFilter = iota
	FilterPlaylists
	FilterArtists
	FilterAlbums
)

var libraryFilterNames = []string{"All", "Playlists", "Artists", "Albums"}

func (f LibraryFilter) String() string {
	if f < 0 || int(f) >= len(libraryFilterNames) {
		return ""
	}
	return libraryFilterNames[f]
}

func (f LibraryFilter) Next() LibraryFilter {
	return LibraryFilter((int(f) + 1) % len(libraryFilterNames))
}

func (f LibraryFilter) Prev() LibraryFilter {
	if f <= 0 {
		return LibraryFilter(len(libraryFilterNames) - 1)
	}
	return f - 1
}

func LibraryFilters() []LibraryFilter {
	return []LibraryFilter{FilterAll, FilterPlaylists, FilterArtists, FilterAlbums}
}
