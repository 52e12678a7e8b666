package importer

import (
	"errors"
	"fmt"
	"os"

	"spotui/internal/domain"

	"github.com/buger/jsonparser"
)

var (
	ErrNoTracks    = errors.New("catalog has no tracks array")
	ErrMissingID   = errors.New("track is missing an id")
	ErrMissingURL  = errors.New("track is missing a url")
	ErrDuplicateID = errors.New("duplicate track id")
)

func ReadFile(path string) ([]domain.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog file: %w", err)
	}
	return ParseTracks(data)
}

// ParseTracks reads {"tracks": [{"id", "title", "artist", "album", "duration", "url",
// "cover"}]}. Unknown fields are ignored.
func ParseTracks(data []byte) ([]domain.Track, error) {
	raw, dataType, _, err := jsonparser.Get(data, "tracks")
	if err != nil || dataType != jsonparser.Array {
		return nil, ErrNoTracks
	}

	var tracks []domain.Track
	seen := make(map[string]struct{})
	var parseErr error

	_, err = jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil || dataType != jsonparser.Object {
			return
		}

		track := domain.Track{
			ID:       getString(value, "id"),
			Title:    getString(value, "title"),
			Artist:   getString(value, "artist"),
			Album:    getString(value, "album"),
			Duration: getString(value, "duration"),
			URL:      getString(value, "url"),
			Cover:    getString(value, "cover"),
		}

		switch {
		case track.ID == "":
			parseErr = fmt.Errorf("entry %d: %w", len(tracks), ErrMissingID)
			return
		case track.URL == "":
			parseErr = fmt.Errorf("track %s: %w", track.ID, ErrMissingURL)
			return
		}
		if _, dup := seen[track.ID]; dup {
			parseErr = fmt.Errorf("track %s: %w", track.ID, ErrDuplicateID)
			return
		}
		seen[track.ID] = struct{}{}
		tracks = append(tracks, track)
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse tracks: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return tracks, nil
}

// getString accepts strings and numbers, so ids like 7 and "7" both work.
func getString(data []byte, key string) string {
	value, dataType, _, err := jsonparser.Get(data, key)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return ""
		}
		return s
	case jsonparser.Number:
		return string(value)
	}
	return ""
}
