package midisink

import "testing"

func TestNoteForFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		note uint8
		ok   bool
	}{
		{440.00, 69, true},  // A4
		{261.63, 60, true},  // C4
		{32.70, 24, true},   // C1, octave 1 on the bottom of the table
		{4185.6, 108, true}, // C8 region, top of the octave range
		{445, 69, true},     // rounds to nearest
		{0, 0, false},
		{-10, 0, false},
		{5, 0, false},     // below MIDI 0
		{14000, 0, false}, // above MIDI 127
	}
	for _, tst := range tests {
		note, ok := NoteForFrequency(tst.freq)
		if ok != tst.ok || (ok && note != tst.note) {
			t.Errorf("NoteForFrequency(%g) = %d %v, expected %d %v", tst.freq, note, ok, tst.note, tst.ok)
		}
	}
}

func TestExcludedPorts(t *testing.T) {
	if !excluded("Midi Through Port-0") {
		t.Error("virtual through port should be excluded")
	}
	if excluded("FluidSynth virtual port") {
		t.Error("synth port should not be excluded")
	}
}
