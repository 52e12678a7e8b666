package catalog

import (
	"math"
	"testing"

	"spotui/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedValuesAreStable(t *testing.T) {
	for _, name := range SidebarPlaylists() {
		f := Followers(name)
		require.Equal(t, f, Followers(name))
		require.GreaterOrEqual(t, f, 50)
		require.Less(t, f, 1050)

		g := GradientIndex(name, 6)
		require.Equal(t, g, GradientIndex(name, 6))
		require.GreaterOrEqual(t, g, 0)
		require.Less(t, g, 6)
	}

	for _, track := range SampleTracks() {
		d := DaysAgo(track.ID, 30)
		require.Equal(t, d, DaysAgo(track.ID, 30))
		require.GreaterOrEqual(t, d, 1)
		require.LessOrEqual(t, d, 30)
	}

	require.Equal(t, 1, DaysAgo("x", 0))
	require.Equal(t, 0, GradientIndex("x", 0))
}

func TestTotalDuration(t *testing.T) {
	total := TotalSeconds(SampleTracks())
	require.Equal(t, 150+164+150+105+140, total)
	require.Equal(t, "11 min", FormatTotalDuration(total))
	require.Equal(t, "1 hr 2 min", FormatTotalDuration(3720))

	bad := []domain.Track{{Duration: "abc"}, {Duration: "3:05"}}
	require.Equal(t, 185, TotalSeconds(bad))
}

func TestFormatClock(t *testing.T) {
	testCases := []struct {
		in       float64
		expected string
	}{
		{0, "0:00"},
		{9.9, "0:09"},
		{65, "1:05"},
		{3600, "60:00"},
		{-1, "0:00"},
		{math.NaN(), "0:00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatClock(tc.in))
	}
}
