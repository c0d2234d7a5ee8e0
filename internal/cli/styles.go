package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorPath    = lipgloss.Color("#3B82F6")
)

// styles renders command output for one writer, so color is only emitted
// when that writer is a terminal.
type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	path    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(colorSuccess),
		failure: r.NewStyle().Bold(true).Foreground(colorError),
		warning: r.NewStyle().Foreground(colorWarning),
		muted:   r.NewStyle().Foreground(colorMuted),
		path:    r.NewStyle().Foreground(colorPath),
	}
}
