package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"spotui/internal/logger"
	"spotui/internal/ports"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	speakerSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
	tickInterval      = 250 * time.Millisecond
	eventBufferSize   = 32
	maxSourceBytes    = 64 << 20
)

var errSourceTooLarge = errors.New("source exceeds 64 MiB")

// memSource lets the decoders seek inside a fully fetched source.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

type track struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	ended    bool
}

// BeepPlayer decodes sources in-process and plays them on the default output device.
// Every Load starts a new generation; work and events from older generations are
// discarded.
type BeepPlayer struct {
	mu          sync.Mutex
	client      *http.Client
	initialized bool
	gen         uint64
	cancel      context.CancelFunc
	current     *track
	wantPlay    bool
	volume      float64
	events      chan ports.AudioEvent
	done        chan struct{}
	closeOnce   sync.Once
}

func NewBeepPlayer() *BeepPlayer {
	p := &BeepPlayer{
		client: &http.Client{Timeout: 60 * time.Second},
		volume: 1,
		events: make(chan ports.AudioEvent, eventBufferSize),
		done:   make(chan struct{}),
	}
	go p.tickLoop()
	return p
}

func (p *BeepPlayer) Events() <-chan ports.AudioEvent { return p.events }

func (p *BeepPlayer) Load(mediaURL string) (ports.SourceID, error) {
	if strings.TrimSpace(mediaURL) == "" {
		return 0, errors.New("empty media url")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.releaseCurrent()
	p.wantPlay = false

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.resolve(ctx, p.gen, mediaURL)
	return ports.SourceID(p.gen), nil
}

// releaseCurrent stops the active stream. Callers hold p.mu.
func (p *BeepPlayer) releaseCurrent() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.current == nil {
		return
	}
	speaker.Clear()
	if err := p.current.streamer.Close(); err != nil {
		logger.Log.Warn().Err(err).Msg("Error closing previous stream")
	}
	p.current = nil
}

func (p *BeepPlayer) resolve(ctx context.Context, gen uint64, mediaURL string) {
	data, err := fetchSource(ctx, p.client, mediaURL)
	if err != nil {
		p.fail(gen, mediaURL, err)
		return
	}

	streamer, format, err := decode(mediaURL, data)
	if err != nil {
		p.fail(gen, mediaURL, err)
		return
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		streamer.Close()
		return
	}

	if !p.initialized {
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			p.mu.Unlock()
			streamer.Close()
			p.fail(gen, mediaURL, fmt.Errorf("could not initialize speaker: %w", err))
			return
		}
		p.initialized = true
	}

	t := &track{streamer: streamer, format: format}
	p.current = t
	p.attach(t, gen)
	duration := format.SampleRate.D(streamer.Len()).Seconds()
	p.mu.Unlock()

	logger.Log.Debug().Str("url", mediaURL).Float64("duration", duration).Msg("Source ready")
	p.emit(gen, ports.AudioEvent{Kind: ports.AudioDurationKnown, Seconds: duration})
}

// attach hands a fresh pipeline for t to the speaker. A finished beep.Seq cannot be
// restarted, so replaying after the end goes through here again. Callers hold p.mu.
func (p *BeepPlayer) attach(t *track, gen uint64) {
	var s beep.Streamer = t.streamer
	if t.format.SampleRate != speakerSampleRate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, speakerSampleRate, t.streamer)
	}
	s = beep.Seq(s, beep.Callback(func() {
		go p.finished(gen)
	}))
	t.ctrl = &beep.Ctrl{Streamer: s, Paused: !p.wantPlay}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	applyVolume(t.volume, p.volume)
	t.ended = false
	speaker.Play(t.volume)
}

func (p *BeepPlayer) fail(gen uint64, mediaURL string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.Log.Warn().Err(err).Str("url", mediaURL).Msg("Could not load source")
	p.emit(gen, ports.AudioEvent{Kind: ports.AudioLoadFailed, Err: err})
}

func (p *BeepPlayer) finished(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.current == nil {
		p.mu.Unlock()
		return
	}
	p.current.ended = true
	p.mu.Unlock()
	p.emit(gen, ports.AudioEvent{Kind: ports.AudioEnded})
}

func (p *BeepPlayer) emit(gen uint64, ev ports.AudioEvent) {
	ev.Source = ports.SourceID(gen)
	p.mu.Lock()
	stale := gen != p.gen
	p.mu.Unlock()
	if stale {
		return
	}

	select {
	case p.events <- ev:
	case <-p.done:
	}
}

func (p *BeepPlayer) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.current == nil || !p.wantPlay || p.current.ended {
				p.mu.Unlock()
				continue
			}
			seconds := p.positionLocked()
			source := ports.SourceID(p.gen)
			p.mu.Unlock()

			select {
			case p.events <- ports.AudioEvent{Kind: ports.AudioTimeUpdate, Source: source, Seconds: seconds}:
			default:
			}
		}
	}
}

func (p *BeepPlayer) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantPlay = !paused
	if p.current == nil {
		return
	}
	speaker.Lock()
	p.current.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *BeepPlayer) Play() error {
	p.setPaused(false)
	return nil
}

func (p *BeepPlayer) Pause() error {
	p.setPaused(true)
	return nil
}

// SetPosition is ignored until the source is ready.
func (p *BeepPlayer) SetPosition(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}

	t := p.current
	n := t.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if last := t.streamer.Len() - 1; n > last {
		n = max(last, 0)
	}

	speaker.Lock()
	err := t.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("could not seek: %w", err)
	}
	if t.ended {
		p.attach(t, p.gen)
	}
	return nil
}

func (p *BeepPlayer) positionLocked() float64 {
	if p.current == nil {
		return 0
	}
	speaker.Lock()
	pos := p.current.streamer.Position()
	speaker.Unlock()
	return p.current.format.SampleRate.D(pos).Seconds()
}

func (p *BeepPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *BeepPlayer) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0
	}
	return p.current.format.SampleRate.D(p.current.streamer.Len()).Seconds()
}

func (p *BeepPlayer) SetVolume(volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = volume
	if p.current == nil {
		return nil
	}
	speaker.Lock()
	applyVolume(p.current.volume, volume)
	speaker.Unlock()
	return nil
}

func (p *BeepPlayer) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		p.gen++
		p.releaseCurrent()
		initialized := p.initialized
		p.mu.Unlock()
		if initialized {
			speaker.Close()
		}
	})
	return nil
}

// applyVolume maps a linear level in [0, 1] onto the base-2 gain of effects.Volume.
func applyVolume(v *effects.Volume, level float64) {
	gain, silent := gainFor(level)
	v.Volume = gain
	v.Silent = silent
}

func gainFor(level float64) (float64, bool) {
	if level <= 0 || math.IsNaN(level) {
		return 0, true
	}
	if level > 1 {
		level = 1
	}
	return math.Log2(level), false
}

func fetchSource(ctx context.Context, client *http.Client, mediaURL string) ([]byte, error) {
	if !isRemote(mediaURL) {
		data, err := os.ReadFile(strings.TrimPrefix(mediaURL, "file://"))
		if err != nil {
			return nil, fmt.Errorf("could not read source: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if len(data) > maxSourceBytes {
		return nil, errSourceTooLarge
	}
	return data, nil
}

func isRemote(mediaURL string) bool {
	return strings.HasPrefix(mediaURL, "http://") || strings.HasPrefix(mediaURL, "https://")
}

// sourceFormat picks a decoder from the path extension, ignoring any query string.
func sourceFormat(mediaURL string) string {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".wav":
		return "wav"
	case ".flac":
		return "flac"
	default:
		return "mp3"
	}
}

func decode(mediaURL string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	src := memSource{bytes.NewReader(data)}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch sourceFormat(mediaURL) {
	case "wav":
		streamer, format, err = wav.Decode(src)
	case "flac":
		streamer, format, err = flac.Decode(src)
	default:
		streamer, format, err = mp3.Decode(src)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("could not decode source: %w", err)
	}
	return streamer, format, nil
}
