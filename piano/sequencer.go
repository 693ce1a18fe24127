package piano

import (
	"errors"
	"math"
	"sync"
	"time"
	"unicode"
)

// DefaultToneDuration is the fixed length of every note, live or replayed.
// Duration is never recorded; only pitch and start offset are.
const DefaultToneDuration = 200 * time.Millisecond

// Octave range. Frequency doubles per octave relative to octave 4.
const (
	MinOctave = 1
	MaxOctave = 8
)

// ErrEmptyRecording is returned by Playback when nothing has been
// captured. It is informational; no state changes.
var ErrEmptyRecording = errors.New("no recording found")

// Note is a single captured note: what sounded and when, relative to the
// start of its recording session.
type Note struct {
	Name      string
	Frequency float64
	Offset    time.Duration
}

// Sequencer owns octave state, recording state and the captured note
// buffer. All methods are safe for concurrent use: the TUI plays live
// keys on its update loop while playback runs in the background.
type Sequencer struct {
	table *PitchTable
	sink  ToneSink
	clock Clock
	sleep Sleeper

	mu        sync.Mutex
	octave    int
	recording bool
	started   time.Time
	notes     []Note

	tone time.Duration
}

// New creates a sequencer at octave 4, not recording, with an empty
// buffer.
func New(table *PitchTable, sink ToneSink, clock Clock, sleep Sleeper, opts ...Option) *Sequencer {
	s := &Sequencer{
		table:  table,
		sink:   sink,
		clock:  clock,
		sleep:  sleep,
		octave: 4,
		tone:   DefaultToneDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frequency scales a base frequency (octave 4 reference) to the given
// octave: base * 2^(octave-4). Computed, not tabled, so any octave in
// range works from the 12 base entries.
func Frequency(base float64, octave int) float64 {
	return base * math.Pow(2, float64(octave-4))
}

func clampOctave(o int) int {
	if o < MinOctave {
		return MinOctave
	}
	if o > MaxOctave {
		return MaxOctave
	}
	return o
}

// Octave returns the current octave.
func (s *Sequencer) Octave() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.octave
}

// SetOctave shifts the octave by delta, clamped to [MinOctave, MaxOctave].
// Out-of-range deltas are absorbed, not rejected. Returns the new octave.
func (s *Sequencer) SetOctave(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.octave = clampOctave(s.octave + delta)
	return s.octave
}

// Recording reports whether a session is active.
func (s *Sequencer) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// NoteCount returns how many notes the current buffer holds.
func (s *Sequencer) NoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Notes returns a copy of the captured buffer in temporal order.
func (s *Sequencer) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot copies the buffer. Callers must hold mu.
func (s *Sequencer) snapshot() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// PlayKey handles one pressed key. The symbol is lowercased before
// lookup; unmapped symbols are silently ignored (command keys come
// through this path too). A mapped key sounds at the current octave and,
// while recording, is appended to the buffer stamped with its offset
// from the session start. This is the only path that grows the buffer.
// Returns the note that sounded and whether the key was mapped.
func (s *Sequencer) PlayKey(sym rune) (Note, bool) {
	s.mu.Lock()
	p, ok := s.table.Lookup(unicode.ToLower(sym))
	if !ok {
		s.mu.Unlock()
		return Note{}, false
	}
	n := Note{Name: p.Name, Frequency: Frequency(p.Base, s.octave)}
	if s.recording {
		n.Offset = s.clock.Now().Sub(s.started)
		s.notes = append(s.notes, n)
	}
	tone := s.tone
	s.mu.Unlock()

	// Emit without the lock held: it blocks for the tone duration.
	s.sink.Emit(n.Frequency, tone)
	return n, true
}

// ToggleRecording starts or stops a recording session. Starting always
// begins fresh: the previous buffer is discarded and the session start
// is stamped now. Stopping keeps the buffer intact for playback. There
// is no pause; a stopped session is unrecoverable once a new one starts.
// Returns true if a session is now active.
func (s *Sequencer) ToggleRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recording {
		s.recording = false
		return false
	}
	s.recording = true
	s.notes = nil
	s.started = s.clock.Now()
	return true
}

// Playback replays the captured buffer in order, reconstructing the gaps
// between note start offsets. The buffer is snapshotted up front so an
// in-progress recording session cannot corrupt the replay, nor the
// replay the session. Gaps are measured between start offsets, never
// from a note's end; notes with non-increasing offsets play
// back-to-back. onNote, if non-nil, is called as each note sounds.
func (s *Sequencer) Playback(onNote func(Note)) error {
	s.mu.Lock()
	if len(s.notes) == 0 {
		s.mu.Unlock()
		return ErrEmptyRecording
	}
	notes := s.snapshot()
	tone := s.tone
	s.mu.Unlock()

	var last time.Duration
	for _, n := range notes {
		if gap := n.Offset - last; gap > 0 {
			s.sleep.Sleep(gap)
		}
		if onNote != nil {
			onNote(n)
		}
		s.sink.Emit(n.Frequency, tone)
		last = n.Offset
	}
	return nil
}
