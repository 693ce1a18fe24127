package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-piano/debug"
	"go-piano/piano"
	"go-piano/theme"
)

// Model drives the console piano: note keys sound immediately, command
// keys toggle recording, start playback and shift the octave.
type Model struct {
	Seq   *piano.Sequencer
	Theme *theme.Theme

	lastNote  string // e.g. "C4 (523.25Hz)"
	status    string
	replaying bool
	quitting  bool
}

// playbackDoneMsg carries the result of a background replay.
type playbackDoneMsg struct {
	err   error
	names []string
}

func NewModel(seq *piano.Sequencer, th *theme.Theme) Model {
	return Model{
		Seq:   seq,
		Theme: th,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// playbackCmd replays the captured buffer off the update loop so the
// interface stays responsive. The sequencer snapshots the buffer and
// serializes its state, so live keys during a replay stay safe.
func playbackCmd(seq *piano.Sequencer) tea.Cmd {
	return func() tea.Msg {
		var names []string
		err := seq.Playback(func(n piano.Note) {
			names = append(names, n.Name)
		})
		return playbackDoneMsg{err: err, names: names}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "r", "R":
			if m.Seq.ToggleRecording() {
				m.status = "recording..."
			} else {
				m.status = fmt.Sprintf("recording saved: %d notes", m.Seq.NoteCount())
			}
			debug.Log("tui", "recording=%v notes=%d", m.Seq.Recording(), m.Seq.NoteCount())

		case "p", "P":
			if m.replaying {
				break // one replay at a time
			}
			m.replaying = true
			m.status = "replaying..."
			return m, playbackCmd(m.Seq)

		case "+", "=":
			m.Seq.SetOctave(+1)

		case "-", "_":
			m.Seq.SetOctave(-1)

		default:
			if sym, ok := singleRune(msg.String()); ok {
				if n, played := m.Seq.PlayKey(sym); played {
					m.lastNote = fmt.Sprintf("%s%d (%.2fHz)", n.Name, m.Seq.Octave(), n.Frequency)
				}
			}
		}

	case playbackDoneMsg:
		m.replaying = false
		switch {
		case msg.err == piano.ErrEmptyRecording:
			m.status = "no recording found"
		case msg.err != nil:
			m.status = fmt.Sprintf("replay failed: %v", msg.err)
		default:
			m.status = fmt.Sprintf("replayed %d notes: %s", len(msg.names), strings.Join(msg.names, " "))
		}
	}

	return m, nil
}

// singleRune extracts the rune of a plain character key press.
func singleRune(s string) (rune, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

// Keyboard art: one chromatic octave, accidentals on the top row.
var keyboard = []string{
	`| |S| |D| | |G| |H| |J| | |`,
	`| | | | | | | | | | | | | |`,
	`|_| |_| |_| |_| |_| |_| |_|`,
	` Z   X   C   V   B   N   M `,
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	keyStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	noteStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	recStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	savedStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())

	header := headerStyle.Render(fmt.Sprintf("go-piano  octave:%d", m.Seq.Octave()))
	if m.Seq.Recording() {
		header += "  " + recStyle.Render(fmt.Sprintf("%c REC", m.Theme.Symbols.Record))
	}
	if m.replaying {
		header += "  " + savedStyle.Render(fmt.Sprintf("%c REPLAY", m.Theme.Symbols.Replay))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	for _, row := range keyboard {
		out.WriteString("   ")
		out.WriteString(keyStyle.Render(row))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	if m.lastNote != "" {
		out.WriteString(noteStyle.Render(fmt.Sprintf(" %c %s", m.Theme.Symbols.Pointer, m.lastNote)))
	}
	out.WriteString("\n")

	if m.status != "" {
		style := savedStyle
		if m.Seq.Recording() {
			style = recStyle
		}
		out.WriteString(style.Render(" " + m.status))
	}
	out.WriteString("\n\n")

	out.WriteString(dimStyle.Render(" z-m:notes  s d g h j:sharps  r:record  p:replay  +/-:octave  q:quit"))

	return out.String()
}
