package catalog

import "spotui/internal/domain"

const coverBase = "https://images.unsplash.com/"

func cover(id string) string {
	return coverBase + id + "?w=300&h=300&fit=crop"
}

func SampleTracks() []domain.Track {
	return []domain.Track{
		{
			ID:       "1",
			Title:    "Chill Abstract Intention",
			Artist:   "Coma-Media",
			Album:    "Free Music",
			Duration: "2:30",
			URL:      "https://www.soundjay.com/misc/sounds-1015.mp3",
			Cover:    cover("photo-1493225457124-a3eb161ffa5f"),
		},
		{
			ID:       "2",
			Title:    "Acoustic Breeze",
			Artist:   "Benjamin Tissot",
			Album:    "Bensound",
			Duration: "2:44",
			URL:      "https://www.bensound.com/bensound-music/bensound-acousticbreeze.mp3",
			Cover:    cover("photo-1511379938547-c1f69419868d"),
		},
		{
			ID:       "3",
			Title:    "Creative Minds",
			Artist:   "Benjamin Tissot",
			Album:    "Bensound",
			Duration: "2:30",
			URL:      "https://www.bensound.com/bensound-music/bensound-creativeminds.mp3",
			Cover:    cover("photo-1470225620780-dba8ba36b745"),
		},
		{
			ID:       "4",
			Title:    "Happy Rock",
			Artist:   "Benjamin Tissot",
			Album:    "Bensound",
			Duration: "1:45",
			URL:      "https://www.bensound.com/bensound-music/bensound-happyrock.mp3",
			Cover:    cover("photo-1493225457124-a3eb161ffa5f"),
		},
		{
			ID:       "5",
			Title:    "Sunny",
			Artist:   "Benjamin Tissot",
			Album:    "Bensound",
			Duration: "2:20",
			URL:      "https://www.bensound.com/bensound-music/bensound-sunny.mp3",
			Cover:    cover("photo-1514320291840-2e0a9bf2a9ae"),
		},
	}
}

// SidebarPlaylists are the playlist names listed under the navigation.
func SidebarPlaylists() []string {
	return []string{"My Playlist #1", "Chill Vibes", "Workout Mix", "Study Music", "Road Trip"}
}

// SamplePlaylists returns the library playlists. "Liked Songs" is pinned and sized
// by the catalog.
func SamplePlaylists(trackCount int) []domain.Playlist {
	return []domain.Playlist{
		{ID: "1", Name: "Liked Songs", Creator: "You", TrackCount: trackCount, Pinned: true, Cover: cover("photo-1493225457124-a3eb161ffa5f")},
		{ID: "2", Name: "My Playlist #1", Creator: "You", TrackCount: 23, Cover: cover("photo-1511379938547-c1f69419868d")},
		{ID: "3", Name: "Chill Vibes", Creator: "You", TrackCount: 45, Cover: cover("photo-1470225620780-dba8ba36b745")},
		{ID: "4", Name: "Workout Mix", Creator: "You", TrackCount: 32, Cover: cover("photo-1571974599782-87624638275c")},
		{ID: "5", Name: "Study Music", Creator: "You", TrackCount: 67, Cover: cover("photo-1520523839897-bd0b52f945a0")},
		{ID: "6", Name: "Road Trip", Creator: "You", TrackCount: 28, Cover: cover("photo-1514320291840-2e0a9bf2a9ae")},
	}
}

func PopularPlaylists() []domain.Playlist {
	return []domain.Playlist{
		{ID: "1", Name: "Today's Top Hits", Description: "The most played songs right now", TrackCount: 50},
		{ID: "2", Name: "RapCaviar", Description: "New music from Drake, Travis Scott and more", TrackCount: 65},
		{ID: "3", Name: "All Out 2010s", Description: "The biggest songs of the 2010s", TrackCount: 100},
		{ID: "4", Name: "Rock Classics", Description: "Rock legends & epic songs", TrackCount: 75},
	}
}

func BrowseCategories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Podcasts", Color: "#1DB954"},
		{ID: "2", Name: "Made For You", Color: "#3B82F6"},
		{ID: "3", Name: "Charts", Color: "#8B5CF6"},
		{ID: "4", Name: "New Releases", Color: "#EF4444"},
		{ID: "5", Name: "Discover", Color: "#F97316"},
		{ID: "6", Name: "Hip-Hop", Color: "#EAB308"},
		{ID: "7", Name: "Pop", Color: "#EC4899"},
		{ID: "8", Name: "Rock", Color: "#6366F1"},
		{ID: "9", Name: "Chill", Color: "#14B8A6"},
		{ID: "10", Name: "Electronic", Color: "#06B6D4"},
	}
}

func RecentlyPlayed(tracks []domain.Track) []domain.Track {
	return window(tracks, 0, 6)
}

func MadeForYou(tracks []domain.Track) []domain.Track {
	return window(tracks, 2, 8)
}

func Downloaded(tracks []domain.Track) []domain.Track {
	return window(tracks, 0, 3)
}

func window(tracks []domain.Track, from, to int) []domain.Track {
	if from > len(tracks) {
		from = len(tracks)
	}
	if to > len(tracks) {
		to = len(tracks)
	}
	return tracks[from:to]
}
