package ports

type AudioEventKind int

const (
	AudioTimeUpdate AudioEventKind = iota
	AudioDurationKnown
	AudioEnded
	AudioLoadFailed
)

// SourceID identifies one Load call. Backends hand out non-zero, increasing ids.
type SourceID uint64

type AudioEvent struct {
	Kind    AudioEventKind
	Source  SourceID
	Seconds float64
	Err     error
}

// AudioResource plays one source at a time. Load replaces the current source and
// resolves it in the background; progress, metadata, end of stream and load failures
// are reported on Events tagged with the id Load returned. Events already queued when
// a source is replaced keep their old id, so consumers must compare it.
type AudioResource interface {
	Load(url string) (SourceID, error)
	Play() error
	Pause() error
	SetPosition(seconds float64) error
	Position() float64
	Duration() float64
	SetVolume(volume float64) error
	Events() <-chan AudioEvent
	Close() error
}
