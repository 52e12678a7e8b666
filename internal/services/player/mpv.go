package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"spotui/internal/logger"
	"spotui/internal/ports"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond
	mpvObserveIDPos     = 1
	mpvObserveIDDur     = 2
	mpvCommandReqIDPos  = 3
	mpvCommandReqIDDur  = 4
	eventBufferSize     = 32
)

var execCommand = exec.Command

type MpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type MpvResponse struct {
	Error     string `json:"error"`
	Data      any    `json:"data"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// MpvPlayer drives an mpv process over its JSON IPC socket. A second, long-lived
// connection observes time-pos and duration and watches for end-file.
//
// Observed events are tagged with the id of the latest Load. Between a Load and the
// start-file event mpv sends for it, everything observed belongs to the replaced file
// and is dropped.
type MpvPlayer struct {
	socketPath    string
	cmd           *exec.Cmd
	exited        chan struct{}
	mu            sync.Mutex
	events        chan ports.AudioEvent
	done          chan struct{}
	closeOnce     sync.Once
	observer      net.Conn
	loaded        bool
	volume        float64
	source        ports.SourceID
	awaitingStart bool
}

func NewMpvPlayer(socketPath string) *MpvPlayer {
	os.Remove(socketPath)
	return &MpvPlayer{
		socketPath: socketPath,
		events:     make(chan ports.AudioEvent, eventBufferSize),
		done:       make(chan struct{}),
		volume:     1,
	}
}

// isProcessRunning reports whether the started mpv process is still alive. Callers
// hold p.mu.
func (p *MpvPlayer) isProcessRunning() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

// watch records the exit of cmd. Callers hold p.mu. If cmd is still the current
// process when it exits, the current source fails and the next Load starts a new one.
func (p *MpvPlayer) watch(cmd *exec.Cmd) {
	exited := make(chan struct{})
	p.cmd = cmd
	p.exited = exited

	go func() {
		err := cmd.Wait()
		close(exited)

		p.mu.Lock()
		current := p.cmd == cmd
		source := p.source
		p.mu.Unlock()
		if !current {
			return
		}

		logger.Log.Error().Err(err).Msg("mpv process exited unexpectedly")
		p.emit(ports.AudioEvent{Kind: ports.AudioLoadFailed, Source: source, Err: errors.New("mpv exited unexpectedly")})
	}()
}

// resetProcess forgets a dead mpv process. Callers hold p.mu.
func (p *MpvPlayer) resetProcess() {
	if p.observer != nil {
		p.observer.Close()
		p.observer = nil
	}
	p.cmd = nil
	p.loaded = false
	os.Remove(p.socketPath)
}

func (p *MpvPlayer) startMpvProcess() error {
	if p.isProcessRunning() {
		return nil
	}
	if p.cmd != nil {
		logger.Log.Warn().Msg("mpv process is gone, restarting it")
		p.resetProcess()
	}

	logger.Log.Info().Msg("Starting new mpv process...")
	args := []string{
		"--idle",
		"--input-ipc-server=" + p.socketPath,
		"--no-video",
		"--no-config",
		"--pause",
		fmt.Sprintf("--volume=%d", volumePercent(p.volume)),
	}

	cmd := execCommand("mpv", args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start mpv process: %w", err)
	}
	p.watch(cmd)

	for i := 0; i < socketCheckRetries; i++ {
		if _, err := os.Stat(p.socketPath); err == nil {
			logger.Log.Info().Msg("mpv socket detected. Process ready.")
			return p.startObserver()
		}
		time.Sleep(socketCheckInterval)
	}

	logger.Log.Error().Str("socket", p.socketPath).Msg("Timed out waiting for mpv socket.")
	p.cmd.Process.Kill()
	<-p.exited
	p.cmd = nil
	return fmt.Errorf("mpv process started but socket did not appear at %s", p.socketPath)
}

func (p *MpvPlayer) startObserver() error {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return fmt.Errorf("could not open mpv event connection: %w", err)
	}

	encoder := json.NewEncoder(conn)
	for _, cmd := range []MpvCommand{
		{Command: []any{"observe_property", mpvObserveIDPos, "time-pos"}},
		{Command: []any{"observe_property", mpvObserveIDDur, "duration"}},
	} {
		if err := encoder.Encode(cmd); err != nil {
			conn.Close()
			return fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	p.observer = conn
	go p.readEvents(conn)
	return nil
}

func (p *MpvPlayer) readEvents(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		resp, ok := decodeLine(scanner.Bytes())
		if !ok {
			continue
		}

		p.mu.Lock()
		if resp.Event == "start-file" {
			p.awaitingStart = false
		}
		stale := p.awaitingStart
		source := p.source
		p.mu.Unlock()

		ev, ok := eventFor(resp)
		if !ok || stale {
			continue
		}
		ev.Source = source
		p.emit(ev)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		logger.Log.Error().Err(err).Msg("Error reading mpv events")
	}
}

// emit drops time updates when the buffer is full and gives up on anything else once
// the player is closed.
func (p *MpvPlayer) emit(ev ports.AudioEvent) {
	if ev.Kind == ports.AudioTimeUpdate {
		select {
		case p.events <- ev:
		default:
		}
		return
	}

	select {
	case p.events <- ev:
	case <-p.done:
	}
}

func decodeLine(line []byte) (MpvResponse, bool) {
	var resp MpvResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		logger.Log.Warn().Str("line", string(line)).Err(err).Msg("Could not parse line from mpv")
		return MpvResponse{}, false
	}
	return resp, true
}

// parseEvent maps one line of mpv output to an untagged AudioEvent.
func parseEvent(line []byte) (ports.AudioEvent, bool) {
	resp, ok := decodeLine(line)
	if !ok {
		return ports.AudioEvent{}, false
	}
	return eventFor(resp)
}

// eventFor ignores replies to commands and end-file events caused by replacing or
// stopping the file.
func eventFor(resp MpvResponse) (ports.AudioEvent, bool) {
	switch resp.Event {
	case "property-change":
		seconds, ok := resp.Data.(float64)
		if !ok {
			return ports.AudioEvent{}, false
		}
		switch resp.ID {
		case mpvObserveIDPos:
			return ports.AudioEvent{Kind: ports.AudioTimeUpdate, Seconds: seconds}, true
		case mpvObserveIDDur:
			return ports.AudioEvent{Kind: ports.AudioDurationKnown, Seconds: seconds}, true
		}
	case "end-file":
		switch resp.Reason {
		case "eof":
			return ports.AudioEvent{Kind: ports.AudioEnded}, true
		case "error":
			msg := resp.FileError
			if msg == "" {
				msg = "unknown error"
			}
			return ports.AudioEvent{Kind: ports.AudioLoadFailed, Err: fmt.Errorf("mpv: %s", msg)}, true
		}
	}
	return ports.AudioEvent{}, false
}

func (p *MpvPlayer) sendCommands(cmds ...MpvCommand) ([]MpvResponse, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	encoder := json.NewEncoder(conn)
	for _, cmd := range cmds {
		if err := encoder.Encode(cmd); err != nil {
			return nil, fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	var responses []MpvResponse
	scanner := bufio.NewScanner(conn)
	for len(responses) < len(cmds) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Log.Error().Err(err).Msg("Error reading from mpv socket")
			}
			break
		}

		line := scanner.Bytes()
		var resp MpvResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			logger.Log.Warn().Str("line", string(line)).Err(err).Msg("Could not parse line from mpv")
			continue
		}

		if resp.Event == "" {
			responses = append(responses, resp)
		}
	}

	for _, resp := range responses {
		if resp.Error != "" && resp.Error != "success" {
			return responses, fmt.Errorf("mpv: %s", resp.Error)
		}
	}
	return responses, nil
}

func (p *MpvPlayer) Load(mediaURL string) (ports.SourceID, error) {
	if mediaURL == "" {
		return 0, errors.New("empty media url")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.startMpvProcess(); err != nil {
		return 0, err
	}
	p.loaded = true
	p.source++
	p.awaitingStart = true
	if _, err := p.sendCommands(
		MpvCommand{Command: []any{"set_property", "pause", true}},
		MpvCommand{Command: []any{"loadfile", mediaURL, "replace"}},
	); err != nil {
		return 0, err
	}
	return p.source, nil
}

func (p *MpvPlayer) setProperty(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() || !p.loaded {
		return nil
	}
	_, err := p.sendCommands(MpvCommand{Command: []any{"set_property", name, value}})
	return err
}

func (p *MpvPlayer) Play() error  { return p.setProperty("pause", false) }
func (p *MpvPlayer) Pause() error { return p.setProperty("pause", true) }

func (p *MpvPlayer) SetPosition(seconds float64) error {
	return p.setProperty("time-pos", seconds)
}

func (p *MpvPlayer) SetVolume(volume float64) error {
	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
	return p.setProperty("volume", volumePercent(volume))
}

func (p *MpvPlayer) getFloat(name string, reqID int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return 0
	}

	responses, err := p.sendCommands(MpvCommand{Command: []any{"get_property", name}, RequestID: reqID})
	if err != nil {
		return 0
	}
	for _, resp := range responses {
		if resp.RequestID == reqID {
			if v, ok := resp.Data.(float64); ok {
				return v
			}
		}
	}
	return 0
}

func (p *MpvPlayer) Position() float64 { return p.getFloat("time-pos", mpvCommandReqIDPos) }
func (p *MpvPlayer) Duration() float64 { return p.getFloat("duration", mpvCommandReqIDDur) }

func (p *MpvPlayer) Events() <-chan ports.AudioEvent { return p.events }

func (p *MpvPlayer) Close() error {
	p.closeOnce.Do(func() { close(p.done) })

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.observer != nil {
		p.observer.Close()
		p.observer = nil
	}
	if p.cmd != nil {
		if p.isProcessRunning() {
			if err := p.cmd.Process.Kill(); err != nil {
				logger.Log.Error().Err(err).Msg("Error terminating mpv process")
			}
		}
		<-p.exited
		p.cmd = nil
	}
	os.Remove(p.socketPath)
	return nil
}

func volumePercent(volume float64) int {
	return int(volume*100 + 0.5)
}
