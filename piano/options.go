package piano

import "time"

// Option configures a Sequencer at construction.
type Option func(*Sequencer)

// WithOctave sets the starting octave, clamped to the playable range.
func WithOctave(o int) Option {
	return func(s *Sequencer) { s.octave = clampOctave(o) }
}

// WithToneDuration overrides the fixed per-note tone length. Non-positive
// values are ignored.
func WithToneDuration(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.tone = d
		}
	}
}
