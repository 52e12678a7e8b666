package ui

import "github.com/charmbracelet/lipgloss"

func truncate(s string, length int) string {
	if length <= 3 {
		return "..."
	}
	r := []rune(s)
	if lipgloss.Width(s) > length && len(r) > length-3 {
		return string(r[:length-3]) + "..."
	}
	return s
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
