package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	ModelPath lipgloss.Style // file paths
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Code      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles returns colored styles for a terminal writing to w. The color
// profile follows the environment, so NO_COLOR and dumb terminals degrade
// to plain attributes.
func NewStyles(w io.Writer) *Styles {
	lr := lipgloss.NewRenderer(w)
	profile := termenv.EnvColorProfile()
	if termenv.EnvNoColor() {
		profile = termenv.Ascii
	}
	lr.SetColorProfile(profile)

	return &Styles{
		Header1:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:   lr.NewStyle().Bold(true),
		ModelPath: lr.NewStyle().Underline(true).Foreground(lipgloss.Color("14")),
		Muted:     lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:      lr.NewStyle().Bold(true),
		Code:      lr.NewStyle().Foreground(lipgloss.Color("13")),
		Success:   lr.NewStyle().Foreground(lipgloss.Color("2")),
		Error:     lr.NewStyle().Foreground(lipgloss.Color("1")),
		Warning:   lr.NewStyle().Foreground(lipgloss.Color("3")),
		Info:      lr.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1:   plain,
		Header2:   plain,
		ModelPath: plain,
		Muted:     plain,
		Bold:      plain,
		Code:      plain,
		Success:   plain,
		Error:     plain,
		Warning:   plain,
		Info:      plain,
	}
}
