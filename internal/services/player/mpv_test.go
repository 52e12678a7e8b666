package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"spotui/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expectOK bool
		expected ports.AudioEvent
	}{
		{
			name:     "time-pos change",
			line:     `{"event":"property-change","id":1,"name":"time-pos","data":12.5}`,
			expectOK: true,
			expected: ports.AudioEvent{Kind: ports.AudioTimeUpdate, Seconds: 12.5},
		},
		{
			name:     "duration change",
			line:     `{"event":"property-change","id":2,"name":"duration","data":164.2}`,
			expectOK: true,
			expected: ports.AudioEvent{Kind: ports.AudioDurationKnown, Seconds: 164.2},
		},
		{
			name: "property unavailable",
			line: `{"event":"property-change","id":2,"name":"duration"}`,
		},
		{
			name:     "end of file",
			line:     `{"event":"end-file","reason":"eof","playlist_entry_id":1}`,
			expectOK: true,
			expected: ports.AudioEvent{Kind: ports.AudioEnded},
		},
		{
			name: "replaced file is ignored",
			line: `{"event":"end-file","reason":"stop"}`,
		},
		{
			name: "command reply is ignored",
			line: `{"error":"success","request_id":0}`,
		},
		{
			name: "garbage",
			line: `not json`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := parseEvent([]byte(tc.line))
			require.Equal(t, tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(t, tc.expected, ev)
			}
		})
	}
}

func TestParseEvent_LoadError(t *testing.T) {
	ev, ok := parseEvent([]byte(`{"event":"end-file","reason":"error","file_error":"loading failed"}`))
	require.True(t, ok)
	require.Equal(t, ports.AudioLoadFailed, ev.Kind)
	require.EqualError(t, ev.Err, "mpv: loading failed")
}

func TestVolumePercent(t *testing.T) {
	assert.Equal(t, 0, volumePercent(0))
	assert.Equal(t, 70, volumePercent(0.7))
	assert.Equal(t, 100, volumePercent(1))
}

func fakeMpvServer(t *testing.T, reply func(cmd MpvCommand) []string) string {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "mpv.sock")

	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var cmd MpvCommand
					if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
						return
					}
					for _, line := range reply(cmd) {
						conn.Write([]byte(line + "\n"))
					}
				}
			}(conn)
		}
	}()

	return socketPath
}

func TestMpvPlayer_SendCommands(t *testing.T) {
	socketPath := fakeMpvServer(t, func(cmd MpvCommand) []string {
		return []string{
			`{"event":"property-change","id":1,"data":3.0}`,
			`{"error":"success","data":42.5,"request_id":3}`,
		}
	})

	p := &MpvPlayer{socketPath: socketPath}
	responses, err := p.sendCommands(MpvCommand{Command: []any{"get_property", "time-pos"}, RequestID: mpvCommandReqIDPos})
	require.NoError(t, err)
	require.Len(t, responses, 1, "events on the command connection should be skipped")
	require.Equal(t, mpvCommandReqIDPos, responses[0].RequestID)
	require.Equal(t, 42.5, responses[0].Data)
}

func TestMpvPlayer_SendCommandsReportsMpvErrors(t *testing.T) {
	socketPath := fakeMpvServer(t, func(cmd MpvCommand) []string {
		return []string{`{"error":"property not found","request_id":0}`}
	})

	p := &MpvPlayer{socketPath: socketPath}
	_, err := p.sendCommands(MpvCommand{Command: []any{"set_property", "nope", 1}})
	require.EqualError(t, err, "mpv: property not found")
}

func TestMpvPlayer_IdleCommandsAreNoOps(t *testing.T) {
	p := NewMpvPlayer(filepath.Join(t.TempDir(), "unused.sock"))

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.SetPosition(10))
	require.NoError(t, p.SetVolume(0.3))
	require.Zero(t, p.Position())
	require.Zero(t, p.Duration())
	_, err := p.Load("")
	require.Error(t, err)
	require.NoError(t, p.Close())
}

func runReader(p *MpvPlayer, conn net.Conn) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		p.readEvents(conn)
		close(finished)
	}()
	return finished
}

func TestMpvPlayer_ReadEventsTagsCurrentSource(t *testing.T) {
	p := NewMpvPlayer(filepath.Join(t.TempDir(), "unused.sock"))
	p.source = 2
	p.awaitingStart = true

	server, client := net.Pipe()
	finished := runReader(p, client)

	for _, line := range []string{
		`{"event":"property-change","id":1,"data":149.0}`,
		`{"event":"end-file","reason":"eof"}`,
		`{"event":"start-file","playlist_entry_id":2}`,
		`{"event":"property-change","id":2,"data":120.0}`,
		`{"event":"end-file","reason":"eof"}`,
	} {
		_, err := server.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	server.Close()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop")
	}

	require.Len(t, p.events, 2, "events of the replaced file are dropped")
	assert.Equal(t, ports.AudioEvent{Kind: ports.AudioDurationKnown, Source: 2, Seconds: 120}, <-p.events)
	assert.Equal(t, ports.AudioEvent{Kind: ports.AudioEnded, Source: 2}, <-p.events)
}

func TestMpvPlayer_ReadEventsStopsAfterClose(t *testing.T) {
	p := NewMpvPlayer(filepath.Join(t.TempDir(), "unused.sock"))
	for i := 0; i < eventBufferSize; i++ {
		p.events <- ports.AudioEvent{Kind: ports.AudioTimeUpdate}
	}
	require.NoError(t, p.Close())

	server, client := net.Pipe()
	finished := runReader(p, client)

	go func() {
		server.Write([]byte(`{"event":"end-file","reason":"eof"}` + "\n"))
		server.Close()
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("reader blocked on a full buffer after close")
	}
}

func TestMpvPlayer_DetectsExitedProcess(t *testing.T) {
	p := NewMpvPlayer(filepath.Join(t.TempDir(), "unused.sock"))

	cmd := exec.Command("sh", "-c", "exit 3")
	require.NoError(t, cmd.Start())
	p.mu.Lock()
	p.source = 4
	p.loaded = true
	p.watch(cmd)
	p.mu.Unlock()

	select {
	case ev := <-p.Events():
		assert.Equal(t, ports.AudioLoadFailed, ev.Kind)
		assert.Equal(t, ports.SourceID(4), ev.Source)
		assert.EqualError(t, ev.Err, "mpv exited unexpectedly")
	case <-time.After(2 * time.Second):
		t.Fatal("expected the exit to be reported")
	}

	p.mu.Lock()
	running := p.isProcessRunning()
	p.mu.Unlock()
	require.False(t, running)
	require.NoError(t, p.Play(), "commands to a dead process are no-ops")
	require.NoError(t, p.Close())
}
