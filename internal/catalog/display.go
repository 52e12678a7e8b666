package catalog

import (
	"fmt"
	"hash/fnv"
	"math"

	"spotui/internal/domain"
)

func hashOf(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// DaysAgo derives a stable "added N days ago" value in [1, limit] from key.
func DaysAgo(key string, limit int) int {
	if limit < 1 {
		return 1
	}
	return int(hashOf("days:"+key)%uint32(limit)) + 1
}

func Followers(name string) int {
	return int(hashOf("followers:"+name)%1000) + 50
}

func GradientIndex(name string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(hashOf("gradient:"+name) % uint32(n))
}

func TotalSeconds(tracks []domain.Track) int {
	total := 0
	for _, t := range tracks {
		total += t.Seconds()
	}
	return total
}

func FormatTotalDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d hr %d min", hours, minutes)
	}
	return fmt.Sprintf("%d min", minutes)
}

func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
