package piano

// Pitch is one entry of the chromatic reference octave.
type Pitch struct {
	Name string  // display name, e.g. "C#"
	Base float64 // frequency in Hz at octave 4
}

// PitchTable maps an input symbol to its pitch at the reference octave.
// The table stores lowercase keys only; callers normalize before lookup.
type PitchTable struct {
	keys map[rune]Pitch
}

// NewPitchTable returns the fixed 12-entry chromatic table. The layout
// mirrors a piano on the bottom two keyboard rows: naturals on z-m,
// accidentals on the row above them.
func NewPitchTable() *PitchTable {
	return &PitchTable{keys: map[rune]Pitch{
		'z': {"C", 261.63},
		's': {"C#", 277.18},
		'x': {"D", 293.66},
		'd': {"D#", 311.13},
		'c': {"E", 329.63},
		'v': {"F", 349.23},
		'g': {"F#", 369.99},
		'b': {"G", 392.00},
		'h': {"G#", 415.30},
		'n': {"A", 440.00},
		'j': {"A#", 466.16},
		'm': {"B", 493.88},
	}}
}

// Lookup returns the pitch bound to sym. Absence is not an error;
// command keys and unbound letters land here too.
func (t *PitchTable) Lookup(sym rune) (Pitch, bool) {
	p, ok := t.keys[sym]
	return p, ok
}
