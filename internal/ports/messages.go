package ports

import (
	"spotui/internal/domain"
)

type FocusState int

const (
	SidebarFocus FocusState = iota
	ContentFocus
)

type ChangeFocusMsg struct{ NewFocus FocusState }

type NavigateMsg struct{ Page domain.Page }

type PlayTrackMsg struct{ Track domain.Track }

type AudioEventMsg struct{ Event AudioEvent }

type PlaylistCreatedMsg struct{ Playlist domain.Playlist }

type NoticeMsg struct{ Text string }
