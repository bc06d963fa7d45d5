package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for every kind of console message.
type Styles struct {
	Prompt  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Banner  lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultStyles returns colored styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "6", Dark: "14"}),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Success: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Banner:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"}),
		Dim:     lipgloss.NewStyle().Faint(true),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Prompt:  plain,
		Warning: plain,
		Error:   plain,
		Success: plain,
		Banner:  plain,
		Dim:     plain,
		Bold:    plain,
	}
}

// RenderBanner renders the startup banner art above a dim subtitle line.
func (s Styles) RenderBanner(art, subtitle string) string {
	return s.Banner.Render(art) + "\n" + s.Dim.Render(subtitle) + "\n"
}
