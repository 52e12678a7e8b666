package catalog

import (
	"strings"

	"spotui/internal/domain"
)

type SearchState int

const (
	SearchIdle SearchState = iota
	SearchNoMatches
	SearchHasMatches
)

type SearchResult struct {
	Query  string
	Tracks []domain.Track
}

// State separates "nothing typed yet" from "typed, but nothing matched".
func (r SearchResult) State() SearchState {
	switch {
	case strings.TrimSpace(r.Query) == "":
		return SearchIdle
	case len(r.Tracks) == 0:
		return SearchNoMatches
	default:
		return SearchHasMatches
	}
}

// FilterTracks matches the query case-insensitively against title, artist and album.
// A blank query yields nil.
func FilterTracks(tracks []domain.Track, query string) []domain.Track {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []domain.Track
	for _, t := range tracks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Artist), q) ||
			strings.Contains(strings.ToLower(t.Album), q) {
			matches = append(matches, t)
		}
	}
	return matches
}

func Search(tracks []domain.Track, query string) SearchResult {
	return SearchResult{Query: query, Tracks: FilterTracks(tracks, query)}
}
