package domain

import (
	"strconv"
	"strings"
)

type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
	Cover    string `json:"cover"`
}

// Seconds parses the display duration ("M:SS" or "H:MM:SS"). Malformed values count as 0.
func (t Track) Seconds() int {
	parts := strings.Split(strings.TrimSpace(t.Duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

type Playlist struct {
	ID          string
	Name        string
	Description string
	Cover       string
	Creator     string
	TrackCount  int
	Pinned      bool
	Tracks      []Track
}

type Category struct {
	ID    string
	Name  string
	Color string
}
