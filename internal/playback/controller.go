package playback

import (
	"errors"
	"fmt"
	"math"

	"spotui/internal/domain"
	"spotui/internal/logger"
	"spotui/internal/ports"
)

const DefaultVolume = 0.7

// ResourceLoadError reports that the audio resource could not load or start a source.
// It never leaves the controller in an invalid state: the track stays selected and
// playback is paused.
type ResourceLoadError struct {
	URL string
	Err error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.URL, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// Controller is the sole owner of the playback state and of the audio resource.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Controller struct {
	tracks  []domain.Track
	audio   ports.AudioResource
	state   domain.PlaybackState
	source  ports.SourceID
	lastErr error
}

func NewController(tracks []domain.Track, audio ports.AudioResource, volume float64) *Controller {
	c := &Controller{
		tracks: append([]domain.Track(nil), tracks...),
		audio:  audio,
	}
	c.state.Volume = clampUnit(volume)
	if err := c.audio.SetVolume(c.state.Volume); err != nil {
		logger.Log.Warn().Err(err).Msg("Could not apply initial volume")
	}
	return c
}

// State returns a copy of the current playback state.
func (c *Controller) State() domain.PlaybackState {
	s := c.state
	if s.CurrentTrack != nil {
		t := *s.CurrentTrack
		s.CurrentTrack = &t
	}
	return s
}

func (c *Controller) Tracks() []domain.Track {
	return append([]domain.Track(nil), c.tracks...)
}

func (c *Controller) LastError() error { return c.lastErr }

func (c *Controller) ClearError() { c.lastErr = nil }

func (c *Controller) SelectTrack(track domain.Track) error {
	t := track
	c.state.CurrentTrack = &t
	c.state.CurrentTime = 0
	c.state.Duration = 0
	c.state.IsPlaying = true
	c.lastErr = nil

	logger.Log.Debug().Str("track", t.ID).Str("url", t.URL).Msg("Selecting track")

	source, err := c.audio.Load(t.URL)
	c.source = source
	if err != nil {
		return c.failLoad(t.URL, err)
	}
	if err := c.audio.Play(); err != nil {
		return c.failLoad(t.URL, err)
	}
	return nil
}

func (c *Controller) TogglePlayPause() error {
	if c.state.CurrentTrack == nil {
		return nil
	}

	c.state.IsPlaying = !c.state.IsPlaying
	logger.Log.Debug().Str("track", c.state.CurrentTrack.ID).Bool("playing", c.state.IsPlaying).Msg("Toggled playback")
	if c.state.IsPlaying {
		if err := c.audio.Play(); err != nil {
			return c.failLoad(c.state.CurrentTrack.URL, err)
		}
		return nil
	}
	if err := c.audio.Pause(); err != nil {
		c.state.IsPlaying = true
		return fmt.Errorf("could not pause: %w", err)
	}
	return nil
}

func (c *Controller) Next() error {
	if c.state.CurrentTrack == nil || len(c.tracks) == 0 {
		return nil
	}

	idx := c.indexOf(c.state.CurrentTrack.ID)
	return c.SelectTrack(c.tracks[(idx+1)%len(c.tracks)])
}

func (c *Controller) Previous() error {
	if c.state.CurrentTrack == nil || len(c.tracks) == 0 {
		return nil
	}

	idx := c.indexOf(c.state.CurrentTrack.ID)
	switch idx {
	case -1, 0:
		idx = len(c.tracks) - 1
	default:
		idx--
	}
	return c.SelectTrack(c.tracks[idx])
}

// Seek moves the position, clamped to [0, duration] once the duration is known.
func (c *Controller) Seek(seconds float64) error {
	if c.state.CurrentTrack == nil {
		return nil
	}

	seconds = c.clampTime(seconds)
	if err := c.audio.SetPosition(seconds); err != nil {
		return fmt.Errorf("could not seek to %.1fs: %w", seconds, err)
	}
	c.state.CurrentTime = seconds
	return nil
}

func (c *Controller) SetVolume(volume float64) error {
	c.state.Volume = clampUnit(volume)
	if err := c.audio.SetVolume(c.state.Volume); err != nil {
		return fmt.Errorf("could not set volume: %w", err)
	}
	return nil
}

// ToggleShuffle only flips the indicator; track order is unaffected.
func (c *Controller) ToggleShuffle() {
	c.state.Shuffle = !c.state.Shuffle
	logger.Log.Debug().Bool("shuffle", c.state.Shuffle).Msg("Toggled shuffle")
}

func (c *Controller) CycleRepeatMode() {
	c.state.Repeat = c.state.Repeat.Next()
	logger.Log.Debug().Stringer("repeat", c.state.Repeat).Msg("Repeat mode changed")
}

func (c *Controller) OnResourceTimeUpdate(seconds float64) {
	c.state.CurrentTime = c.clampTime(seconds)
}

func (c *Controller) OnResourceDurationKnown(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	c.state.Duration = seconds
	if c.state.CurrentTime > seconds && seconds > 0 {
		c.state.CurrentTime = seconds
	}
}

// OnResourceEnded restarts the track under RepeatOne and advances otherwise. Advancing
// wraps at the end of the sequence, so RepeatAll behaves like RepeatOff.
func (c *Controller) OnResourceEnded() error {
	if c.state.CurrentTrack == nil {
		return nil
	}
	if c.state.Repeat != domain.RepeatOne {
		return c.Next()
	}

	logger.Log.Debug().Str("track", c.state.CurrentTrack.ID).Msg("Replaying track")
	c.state.CurrentTime = 0
	c.state.IsPlaying = true
	if err := c.audio.SetPosition(0); err != nil {
		return c.failLoad(c.state.CurrentTrack.URL, err)
	}
	if err := c.audio.Play(); err != nil {
		return c.failLoad(c.state.CurrentTrack.URL, err)
	}
	return nil
}

func (c *Controller) OnResourceError(err error) {
	url := ""
	if c.state.CurrentTrack != nil {
		url = c.state.CurrentTrack.URL
	}
	c.failLoad(url, err)
}

// HandleEvent applies an event from the audio resource. Events that belong to a
// source replaced by a later SelectTrack are dropped.
func (c *Controller) HandleEvent(ev ports.AudioEvent) error {
	if ev.Source != c.source {
		logger.Log.Debug().Uint64("source", uint64(ev.Source)).Uint64("current", uint64(c.source)).Msg("Dropping stale audio event")
		return nil
	}

	switch ev.Kind {
	case ports.AudioTimeUpdate:
		c.OnResourceTimeUpdate(ev.Seconds)
	case ports.AudioDurationKnown:
		c.OnResourceDurationKnown(ev.Seconds)
	case ports.AudioEnded:
		return c.OnResourceEnded()
	case ports.AudioLoadFailed:
		c.OnResourceError(ev.Err)
		return c.lastErr
	}
	return nil
}

func (c *Controller) failLoad(url string, err error) error {
	var loadErr *ResourceLoadError
	if !errors.As(err, &loadErr) {
		loadErr = &ResourceLoadError{URL: url, Err: err}
	}

	c.state.IsPlaying = false
	c.lastErr = loadErr
	logger.Log.Warn().Err(err).Str("url", url).Msg("Audio resource failed")
	return loadErr
}

func (c *Controller) indexOf(id string) int {
	for i, t := range c.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) clampTime(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	if c.state.Duration > 0 && seconds > c.state.Duration {
		return c.state.Duration
	}
	if math.IsInf(seconds, 1) {
		return 0
	}
	return seconds
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
