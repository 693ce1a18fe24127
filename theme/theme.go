package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the color roles and glyphs the TUI renders with.
type Theme struct {
	Symbols Symbols
}

type Symbols struct {
	Record  rune // ● recording session active
	Replay  rune // ▶ playback in progress
	Pointer rune // → note feedback line
}

func New() *Theme {
	return &Theme{
		Symbols: Symbols{
			Record:  '●',
			Replay:  '▶',
			Pointer: '→',
		},
	}
}

// Color roles. Fixed palette; the app has no palette assets.

func (t *Theme) FG() lipgloss.Color {
	return lipgloss.Color("#d8d4e8")
}

func (t *Theme) Muted() lipgloss.Color {
	return lipgloss.Color("#5f5a78")
}

func (t *Theme) Accent() lipgloss.Color {
	return lipgloss.Color("#c678dd")
}

// Active highlights the note currently sounding.
func (t *Theme) Active() lipgloss.Color {
	return lipgloss.Color("#e06c75")
}

// Warning marks an active recording session.
func (t *Theme) Warning() lipgloss.Color {
	return lipgloss.Color("#e5c07b")
}

func (t *Theme) Success() lipgloss.Color {
	return lipgloss.Color("#98c379")
}
