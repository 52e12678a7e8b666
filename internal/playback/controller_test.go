package playback

import (
	"errors"
	"math"
	"testing"

	"spotui/internal/domain"
	"spotui/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	loaded    []string
	playing   bool
	position  float64
	duration  float64
	volume    float64
	plays     int
	pauses    int
	loadErr   error
	playErr   error
	pauseErr  error
	events    chan ports.AudioEvent
	closeCall int
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{events: make(chan ports.AudioEvent)}
}

func (f *fakeAudio) Load(url string) (ports.SourceID, error) {
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	f.loaded = append(f.loaded, url)
	f.playing = false
	f.position = 0
	return f.source(), nil
}

// source is the id handed out by the latest successful Load.
func (f *fakeAudio) source() ports.SourceID { return ports.SourceID(len(f.loaded)) }

func (f *fakeAudio) Play() error {
	if f.playErr != nil {
		return f.playErr
	}
	f.plays++
	f.playing = true
	return nil
}

func (f *fakeAudio) Pause() error {
	if f.pauseErr != nil {
		return f.pauseErr
	}
	f.pauses++
	f.playing = false
	return nil
}

func (f *fakeAudio) SetPosition(seconds float64) error {
	f.position = seconds
	return nil
}

func (f *fakeAudio) Position() float64               { return f.position }
func (f *fakeAudio) Duration() float64               { return f.duration }
func (f *fakeAudio) Events() <-chan ports.AudioEvent { return f.events }
func (f *fakeAudio) Close() error                    { f.closeCall++; return nil }
func (f *fakeAudio) SetVolume(volume float64) error  { f.volume = volume; return nil }
func (f *fakeAudio) lastLoaded() string              { return f.loaded[len(f.loaded)-1] }

func sampleTracks() []domain.Track {
	return []domain.Track{
		{ID: "a", Title: "Alpha", Artist: "One", Album: "First", Duration: "2:30", URL: "http://x/a.mp3"},
		{ID: "b", Title: "Bravo", Artist: "Two", Album: "First", Duration: "2:44", URL: "http://x/b.mp3"},
		{ID: "c", Title: "Charlie", Artist: "Two", Album: "Second", Duration: "1:45", URL: "http://x/c.mp3"},
	}
}

func newTestController(t *testing.T) (*Controller, *fakeAudio, []domain.Track) {
	t.Helper()
	audio := newFakeAudio()
	tracks := sampleTracks()
	return NewController(tracks, audio, DefaultVolume), audio, tracks
}

func TestNewController_StartsIdle(t *testing.T) {
	c, audio, _ := newTestController(t)

	s := c.State()
	require.Nil(t, s.CurrentTrack)
	require.False(t, s.IsPlaying)
	require.Equal(t, domain.StatusIdle, s.Status())
	require.Equal(t, domain.RepeatOff, s.Repeat)
	require.InDelta(t, DefaultVolume, s.Volume, 1e-9)
	require.InDelta(t, DefaultVolume, audio.volume, 1e-9)
}

func TestSelectTrack_SetsPlayingState(t *testing.T) {
	c, audio, tracks := newTestController(t)

	for _, track := range tracks {
		c.OnResourceTimeUpdate(42)
		require.NoError(t, c.SelectTrack(track))

		s := c.State()
		require.NotNil(t, s.CurrentTrack)
		require.Equal(t, track, *s.CurrentTrack)
		require.True(t, s.IsPlaying)
		require.Zero(t, s.CurrentTime)
		require.Equal(t, track.URL, audio.lastLoaded())
		require.True(t, audio.playing)
	}
	require.Len(t, audio.loaded, len(tracks), "each selection replaces the source once")
}

func TestSelectTrack_LoadFailureLeavesTrackPaused(t *testing.T) {
	c, audio, tracks := newTestController(t)
	audio.loadErr = errors.New("404")

	err := c.SelectTrack(tracks[1])

	var loadErr *ResourceLoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, tracks[1].URL, loadErr.URL)
	require.ErrorIs(t, err, audio.loadErr)

	s := c.State()
	require.Equal(t, tracks[1].ID, s.CurrentTrack.ID)
	require.False(t, s.IsPlaying)
	require.Equal(t, domain.StatusPaused, s.Status())
	require.Equal(t, err, c.LastError())

	c.ClearError()
	require.NoError(t, c.LastError())
}

func TestState_ReturnsCopy(t *testing.T) {
	c, _, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[0]))

	s := c.State()
	s.CurrentTrack.Title = "changed"

	require.Equal(t, "Alpha", c.State().CurrentTrack.Title)
}

func TestTogglePlayPause(t *testing.T) {
	c, audio, tracks := newTestController(t)

	require.NoError(t, c.TogglePlayPause())
	require.False(t, c.State().IsPlaying, "toggle is a no-op without a track")
	require.Zero(t, audio.plays)

	require.NoError(t, c.SelectTrack(tracks[0]))
	c.OnResourceTimeUpdate(12)

	require.NoError(t, c.TogglePlayPause())
	require.False(t, c.State().IsPlaying)
	require.False(t, audio.playing)
	require.InDelta(t, 12, c.State().CurrentTime, 1e-9, "pause keeps the position")

	require.NoError(t, c.TogglePlayPause())
	require.True(t, c.State().IsPlaying)
	require.True(t, audio.playing)
	require.InDelta(t, 12, c.State().CurrentTime, 1e-9)
}

func TestTogglePlayPause_TwiceIsIdentity(t *testing.T) {
	c, _, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[2]))

	for _, start := range []bool{true, false} {
		if c.State().IsPlaying != start {
			require.NoError(t, c.TogglePlayPause())
		}
		require.NoError(t, c.TogglePlayPause())
		require.NoError(t, c.TogglePlayPause())
		require.Equal(t, start, c.State().IsPlaying)
	}
}

func TestNextPrevious_Scenario(t *testing.T) {
	c, _, tracks := newTestController(t)
	a, b, cc := tracks[0], tracks[1], tracks[2]

	require.NoError(t, c.SelectTrack(a))
	require.Equal(t, a.ID, c.State().CurrentTrack.ID)

	steps := []struct {
		name string
		op   func() error
		want string
	}{
		{"next to B", c.Next, b.ID},
		{"next to C", c.Next, cc.ID},
		{"next wraps to A", c.Next, a.ID},
		{"previous wraps to C", c.Previous, cc.ID},
	}
	for _, step := range steps {
		require.NoError(t, step.op(), step.name)
		require.Equal(t, step.want, c.State().CurrentTrack.ID, step.name)
		require.True(t, c.State().IsPlaying, step.name)
	}
}

func TestNext_CyclesThroughEveryTrack(t *testing.T) {
	c, _, tracks := newTestController(t)

	for _, start := range tracks {
		require.NoError(t, c.SelectTrack(start))
		for range tracks {
			require.NoError(t, c.Next())
		}
		require.Equal(t, start.ID, c.State().CurrentTrack.ID)
	}
}

func TestPrevious_InvertsNext(t *testing.T) {
	c, _, tracks := newTestController(t)

	for _, start := range tracks {
		require.NoError(t, c.SelectTrack(start))
		require.NoError(t, c.Next())
		require.NoError(t, c.Previous())
		require.Equal(t, start.ID, c.State().CurrentTrack.ID)
	}
}

func TestNextPrevious_NoOps(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		c, audio, _ := newTestController(t)
		require.NoError(t, c.Next())
		require.NoError(t, c.Previous())
		require.Nil(t, c.State().CurrentTrack)
		require.Empty(t, audio.loaded)
	})

	t.Run("empty catalog", func(t *testing.T) {
		audio := newFakeAudio()
		c := NewController(nil, audio, 1)
		require.NoError(t, c.SelectTrack(sampleTracks()[0]))

		require.NoError(t, c.Next())
		require.NoError(t, c.Previous())
		require.Equal(t, "a", c.State().CurrentTrack.ID)
		require.Len(t, audio.loaded, 1)
	})
}

func TestNextPrevious_TrackOutsideSequence(t *testing.T) {
	c, _, tracks := newTestController(t)
	stray := domain.Track{ID: "zz", URL: "http://x/zz.mp3"}

	require.NoError(t, c.SelectTrack(stray))
	require.NoError(t, c.Next())
	require.Equal(t, tracks[0].ID, c.State().CurrentTrack.ID)

	require.NoError(t, c.SelectTrack(stray))
	require.NoError(t, c.Previous())
	require.Equal(t, tracks[2].ID, c.State().CurrentTrack.ID)
}

func TestSeek(t *testing.T) {
	testCases := []struct {
		name     string
		duration float64
		target   float64
		expected float64
	}{
		{name: "inside range", duration: 150, target: 30, expected: 30},
		{name: "negative clamps to zero", duration: 150, target: -5, expected: 0},
		{name: "past end clamps to duration", duration: 150, target: 400, expected: 150},
		{name: "unknown duration keeps target", duration: 0, target: 75, expected: 75},
		{name: "NaN clamps to zero", duration: 150, target: math.NaN(), expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, audio, tracks := newTestController(t)
			require.NoError(t, c.SelectTrack(tracks[0]))
			c.OnResourceDurationKnown(tc.duration)

			require.NoError(t, c.Seek(tc.target))
			assert.InDelta(t, tc.expected, c.State().CurrentTime, 1e-9)
			assert.InDelta(t, tc.expected, audio.position, 1e-9)
		})
	}
}

func TestSeek_IdleIsNoOp(t *testing.T) {
	c, audio, _ := newTestController(t)
	audio.position = 3

	require.NoError(t, c.Seek(10))
	require.Zero(t, c.State().CurrentTime)
	require.InDelta(t, 3, audio.position, 1e-9)
}

func TestSetVolume_AlwaysClamped(t *testing.T) {
	inputs := []float64{-3, -0.01, 0, 0.25, 0.7, 1, 1.01, 42, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, in := range inputs {
		c, audio, _ := newTestController(t)
		require.NoError(t, c.SetVolume(in))

		v := c.State().Volume
		assert.GreaterOrEqual(t, v, 0.0, "input %v", in)
		assert.LessOrEqual(t, v, 1.0, "input %v", in)
		assert.Equal(t, v, audio.volume, "volume is propagated")
	}
}

func TestCycleRepeatMode(t *testing.T) {
	c, _, _ := newTestController(t)

	expected := []domain.RepeatMode{domain.RepeatAll, domain.RepeatOne, domain.RepeatOff}
	for _, want := range expected {
		c.CycleRepeatMode()
		require.Equal(t, want, c.State().Repeat)
	}
}

func TestToggleShuffle_DoesNotChangeOrder(t *testing.T) {
	c, _, tracks := newTestController(t)
	c.ToggleShuffle()
	require.True(t, c.State().Shuffle)

	require.NoError(t, c.SelectTrack(tracks[0]))
	require.NoError(t, c.Next())
	require.Equal(t, tracks[1].ID, c.State().CurrentTrack.ID)

	c.ToggleShuffle()
	require.False(t, c.State().Shuffle)
}

func TestResourceCallbacks(t *testing.T) {
	c, _, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[0]))

	c.OnResourceDurationKnown(150)
	require.InDelta(t, 150, c.State().Duration, 1e-9)

	c.OnResourceTimeUpdate(20.5)
	require.InDelta(t, 20.5, c.State().CurrentTime, 1e-9)

	c.OnResourceTimeUpdate(999)
	require.InDelta(t, 150, c.State().CurrentTime, 1e-9)

	c.OnResourceDurationKnown(math.NaN())
	require.Zero(t, c.State().Duration)
}

func TestOnResourceEnded_RepeatOneReplays(t *testing.T) {
	c, audio, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[1]))
	c.OnResourceDurationKnown(164)
	c.OnResourceTimeUpdate(164)
	c.CycleRepeatMode()
	c.CycleRepeatMode()
	require.Equal(t, domain.RepeatOne, c.State().Repeat)
	playsBefore := audio.plays

	require.NoError(t, c.OnResourceEnded())

	s := c.State()
	require.Equal(t, tracks[1].ID, s.CurrentTrack.ID)
	require.Zero(t, s.CurrentTime)
	require.True(t, s.IsPlaying)
	require.Zero(t, audio.position)
	require.Equal(t, playsBefore+1, audio.plays)
	require.Len(t, audio.loaded, 1, "the source is restarted, not reloaded")
}

func TestOnResourceEnded_WrapsOnLastTrack(t *testing.T) {
	for _, mode := range []domain.RepeatMode{domain.RepeatOff, domain.RepeatAll} {
		t.Run(mode.String(), func(t *testing.T) {
			c, _, tracks := newTestController(t)
			for c.State().Repeat != mode {
				c.CycleRepeatMode()
			}
			require.NoError(t, c.SelectTrack(tracks[2]))

			require.NoError(t, c.OnResourceEnded())

			s := c.State()
			require.Equal(t, tracks[0].ID, s.CurrentTrack.ID)
			require.True(t, s.IsPlaying)
			require.Zero(t, s.CurrentTime)
		})
	}
}

func TestHandleEvent(t *testing.T) {
	c, audio, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[0]))

	require.NoError(t, c.HandleEvent(ports.AudioEvent{Kind: ports.AudioDurationKnown, Source: audio.source(), Seconds: 90}))
	require.NoError(t, c.HandleEvent(ports.AudioEvent{Kind: ports.AudioTimeUpdate, Source: audio.source(), Seconds: 45}))
	require.InDelta(t, 0.5, c.State().Progress(), 1e-9)

	require.NoError(t, c.HandleEvent(ports.AudioEvent{Kind: ports.AudioEnded, Source: audio.source()}))
	require.Equal(t, tracks[1].ID, c.State().CurrentTrack.ID)

	failure := errors.New("decode failed")
	err := c.HandleEvent(ports.AudioEvent{Kind: ports.AudioLoadFailed, Source: audio.source(), Err: failure})
	require.ErrorIs(t, err, failure)
	require.False(t, c.State().IsPlaying)
	require.Equal(t, tracks[1].ID, c.State().CurrentTrack.ID)

	require.NoError(t, c.TogglePlayPause())
	require.True(t, c.State().IsPlaying, "playback can be retried after a failure")
}

func TestHandleEvent_DropsEventsOfReplacedSource(t *testing.T) {
	c, audio, tracks := newTestController(t)

	require.NoError(t, c.SelectTrack(tracks[0]))
	previous := audio.source()
	require.NoError(t, c.SelectTrack(tracks[1]))
	require.NotEqual(t, previous, audio.source())

	queued := []ports.AudioEvent{
		{Kind: ports.AudioTimeUpdate, Source: previous, Seconds: 149},
		{Kind: ports.AudioDurationKnown, Source: previous, Seconds: 150},
		{Kind: ports.AudioEnded, Source: previous},
		{Kind: ports.AudioLoadFailed, Source: previous, Err: errors.New("404")},
	}
	for _, ev := range queued {
		require.NoError(t, c.HandleEvent(ev))
	}

	s := c.State()
	require.Equal(t, tracks[1].ID, s.CurrentTrack.ID)
	require.True(t, s.IsPlaying)
	require.Zero(t, s.CurrentTime)
	require.Zero(t, s.Duration)
	require.NoError(t, c.LastError())
	require.Len(t, audio.loaded, 2, "a stale end of stream must not advance")

	require.NoError(t, c.HandleEvent(ports.AudioEvent{Kind: ports.AudioTimeUpdate, Source: audio.source(), Seconds: 7}))
	require.InDelta(t, 7, c.State().CurrentTime, 1e-9)
}

func TestTogglePlayPause_PauseFailureKeepsPlaying(t *testing.T) {
	c, audio, tracks := newTestController(t)
	require.NoError(t, c.SelectTrack(tracks[0]))
	audio.pauseErr = errors.New("socket closed")

	err := c.TogglePlayPause()
	require.ErrorIs(t, err, audio.pauseErr)
	require.True(t, c.State().IsPlaying)
	require.True(t, audio.playing)
}
