package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.AdaptiveColor{Light: "#1AA34A", Dark: "#1DB954"}
	highlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtleColor    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	textColor      = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF5F87"}
)

// headerPalette colors playlist headers; the index comes from catalog.GradientIndex.
var headerPalette = []lipgloss.Color{"#7C3AED", "#2563EB", "#059669", "#DC2626", "#D97706", "#DB2777"}

type Styles struct {
	App           lipgloss.Style
	Box           lipgloss.Style
	FocusedBox    lipgloss.Style
	Title         lipgloss.Style
	Section       lipgloss.Style
	Subtle        lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	SidebarCursor lipgloss.Style
	ListNormal    lipgloss.Style
	ListSelected  lipgloss.Style
	ListPointer   lipgloss.Style
	Playing       lipgloss.Style
	Card          lipgloss.Style
	PlayerTitle   lipgloss.Style
	PlayerArtist  lipgloss.Style
	Indicator     lipgloss.Style
	IndicatorOn   lipgloss.Style
	Spinner       lipgloss.Style
	Notice        lipgloss.Style
	ErrorText     lipgloss.Style
	Help          lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.App = lipgloss.NewStyle().Padding(0, 1)
	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(subtleColor)
	s.FocusedBox = s.Box.BorderForeground(highlightColor)
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	s.Section = lipgloss.NewStyle().Bold(true).Foreground(textColor).MarginTop(1)
	s.Subtle = lipgloss.NewStyle().Foreground(subtleColor)
	s.SidebarItem = lipgloss.NewStyle().Foreground(subtleColor).PaddingLeft(1)
	s.SidebarActive = lipgloss.NewStyle().Foreground(textColor).Bold(true).PaddingLeft(1)
	s.SidebarCursor = lipgloss.NewStyle().Foreground(highlightColor).SetString("›")
	s.ListNormal = lipgloss.NewStyle().Foreground(textColor)
	s.ListSelected = lipgloss.NewStyle().Foreground(highlightColor).Bold(true)
	s.ListPointer = lipgloss.NewStyle().Foreground(highlightColor).SetString("> ")
	s.Playing = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	s.Card = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true).
		BorderForeground(subtleColor).
		Padding(0, 1)
	s.PlayerTitle = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	s.PlayerArtist = lipgloss.NewStyle().Foreground(subtleColor)
	s.Indicator = lipgloss.NewStyle().Foreground(subtleColor)
	s.IndicatorOn = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	s.Spinner = lipgloss.NewStyle().Foreground(highlightColor)
	s.Notice = lipgloss.NewStyle().Foreground(accentColor)
	s.ErrorText = lipgloss.NewStyle().Foreground(errorColor)
	s.Help = lipgloss.NewStyle().Foreground(subtleColor)
	return s
}

// Header renders a playlist banner in one of the palette colors.
func (s Styles) Header(index int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(headerPalette[index%len(headerPalette)]).
		Padding(0, 1)
}
