package domain

import "math"

type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (r RepeatMode) Next() RepeatMode {
	switch r {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

func (r RepeatMode) String() string {
	switch r {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

type PlaybackStatus int

const (
	StatusIdle PlaybackStatus = iota
	StatusPaused
	StatusPlaying
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusPaused:
		return "paused"
	case StatusPlaying:
		return "playing"
	default:
		return "idle"
	}
}

// PlaybackState is a snapshot of the transport. CurrentTrack is nil until the first
// track is selected; Duration stays 0 until the audio resource reports it.
type PlaybackState struct {
	CurrentTrack *Track
	IsPlaying    bool
	CurrentTime  float64
	Duration     float64
	Volume       float64
	Shuffle      bool
	Repeat       RepeatMode
}

func (s PlaybackState) HasTrack() bool {
	return s.CurrentTrack != nil
}

func (s PlaybackState) Status() PlaybackStatus {
	switch {
	case s.CurrentTrack == nil:
		return StatusIdle
	case s.IsPlaying:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// Progress returns the playback position as a fraction in [0, 1].
func (s PlaybackState) Progress() float64 {
	if s.Duration <= 0 || math.IsNaN(s.Duration) {
		return 0
	}
	p := s.CurrentTime / s.Duration
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
