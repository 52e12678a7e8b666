package ui

import (
	"time"

	"spotui/internal/ports"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeTimeout = 4 * time.Second

type clearNoticeMsg struct{ id int }

// waitForAudioEvent delivers the next audio event; the app re-arms it after each one.
func waitForAudioEvent(events <-chan ports.AudioEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ports.AudioEventMsg{Event: ev}
	}
}

func clearNoticeAfter(id int) tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}
