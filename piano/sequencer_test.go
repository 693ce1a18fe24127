package piano

import (
	"errors"
	"math"
	"testing"
	"time"
)

// fakeClock is advanced by hand so offsets are exact.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) advance(n int64) { c.t = c.t.Add(time.Duration(n) * time.Millisecond) }

// fakeSink records emissions instead of sounding them.
type emitted struct {
	freq float64
	dur  time.Duration
}

type fakeSink struct{ calls []emitted }

func (s *fakeSink) Emit(freq float64, d time.Duration) {
	s.calls = append(s.calls, emitted{freq, d})
}

// fakeSleeper records requested gaps instead of waiting.
type fakeSleeper struct{ slept []time.Duration }

func (s *fakeSleeper) Sleep(d time.Duration) { s.slept = append(s.slept, d) }

func newTestSequencer(opts ...Option) (*Sequencer, *fakeSink, *fakeClock, *fakeSleeper) {
	sink := &fakeSink{}
	clock := &fakeClock{t: time.Unix(0, 0)}
	sleep := &fakeSleeper{}
	return New(NewPitchTable(), sink, clock, sleep, opts...), sink, clock, sleep
}

func ms(n int64) time.Duration { return time.Duration(n) * time.Millisecond }

func TestFrequency(t *testing.T) {
	for o := MinOctave; o <= MaxOctave; o++ {
		want := 440.0 * math.Pow(2, float64(o-4))
		if got := Frequency(440.0, o); got != want {
			t.Errorf("Frequency(440, %d) = %g, expected %g", o, got, want)
		}
	}
	if Frequency(261.63, 4) != 261.63 {
		t.Error("octave 4 must be the identity")
	}
	if diff := math.Abs(Frequency(261.63, 6) - 1046.52); diff > 1e-6 {
		t.Errorf("Frequency(261.63, 6) off by %g", diff)
	}
}

func TestSetOctaveClamp(t *testing.T) {
	s, _, _, _ := newTestSequencer()
	if s.Octave() != 4 {
		t.Fatalf("initial octave = %d, expected 4", s.Octave())
	}
	tests := []struct {
		delta int
		want  int
	}{
		{+2, 6},
		{+5, 8},  // absorbed at the top
		{+1, 8},  // idempotent at the boundary
		{-10, 1}, // absorbed at the bottom
		{-1, 1},
		{+3, 4},
	}
	for _, tst := range tests {
		if got := s.SetOctave(tst.delta); got != tst.want {
			t.Errorf("SetOctave(%+d) = %d, expected %d", tst.delta, got, tst.want)
		}
	}
}

func TestPlayKeyEmitsAtCurrentOctave(t *testing.T) {
	s, sink, _, _ := newTestSequencer()
	s.SetOctave(+2)
	n, ok := s.PlayKey('z')
	if !ok {
		t.Fatal("'z' should be mapped")
	}
	want := 261.63 * 4
	if math.Abs(n.Frequency-want) > 1e-6 {
		t.Errorf("frequency = %g, expected %g", n.Frequency, want)
	}
	if len(sink.calls) != 1 || sink.calls[0].freq != n.Frequency || sink.calls[0].dur != DefaultToneDuration {
		t.Errorf("sink got %+v, expected one %gHz/%v emission", sink.calls, n.Frequency, DefaultToneDuration)
	}
}

func TestPlayKeyUppercaseNormalized(t *testing.T) {
	s, _, _, _ := newTestSequencer()
	lower, _ := s.PlayKey('z')
	upper, ok := s.PlayKey('Z')
	if !ok {
		t.Fatal("'Z' should map to the same entry as 'z'")
	}
	if upper.Name != lower.Name || upper.Frequency != lower.Frequency {
		t.Errorf("'Z' played %+v, 'z' played %+v", upper, lower)
	}
}

func TestPlayKeyUnmappedIgnored(t *testing.T) {
	s, sink, _, _ := newTestSequencer()
	s.ToggleRecording()
	if _, ok := s.PlayKey('q'); ok {
		t.Error("'q' should not be mapped")
	}
	if len(sink.calls) != 0 {
		t.Error("unmapped key must not reach the sink")
	}
	if s.NoteCount() != 0 {
		t.Error("unmapped key must not grow the buffer")
	}
}

func TestRecordingCapturesOffsets(t *testing.T) {
	s, _, clock, _ := newTestSequencer()
	s.ToggleRecording()

	clock.advance(10)
	s.PlayKey('z')
	clock.advance(240)
	s.PlayKey('n')
	clock.advance(10)
	s.PlayKey('m')
	s.ToggleRecording()

	oct := s.Octave()
	want := []Note{
		{"C", Frequency(261.63, oct), ms(10)},
		{"A", Frequency(440.00, oct), ms(250)},
		{"B", Frequency(493.88, oct), ms(260)},
	}
	got := s.Notes()
	if len(got) != len(want) {
		t.Fatalf("captured %d notes, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestPlayKeyOutsideSessionNotCaptured(t *testing.T) {
	s, sink, _, _ := newTestSequencer()
	s.PlayKey('z')
	if s.NoteCount() != 0 {
		t.Error("notes played outside a session must not be captured")
	}
	if len(sink.calls) != 1 {
		t.Error("notes outside a session must still sound")
	}
}

func TestNewSessionDiscardsPrevious(t *testing.T) {
	s, _, clock, _ := newTestSequencer()
	s.ToggleRecording()
	clock.advance(5)
	s.PlayKey('z')
	s.PlayKey('x')
	s.ToggleRecording()
	if s.NoteCount() != 2 {
		t.Fatalf("session 1 captured %d notes, expected 2", s.NoteCount())
	}

	s.ToggleRecording() // session 2 starts empty
	if s.NoteCount() != 0 {
		t.Error("starting a session must discard the previous buffer")
	}
}

func TestPlaybackTiming(t *testing.T) {
	s, sink, clock, sleep := newTestSequencer()
	s.ToggleRecording()
	s.PlayKey('z') // offset 0
	clock.advance(300)
	s.PlayKey('x') // offset 300
	s.PlayKey('c') // offset 300, same instant
	clock.advance(500)
	s.PlayKey('v') // offset 800
	s.ToggleRecording()
	sink.calls = nil

	if err := s.Playback(nil); err != nil {
		t.Fatalf("Playback: %v", err)
	}

	// First note has no lead-in, equal offsets produce no gap, and the
	// gap is offset-to-offset, never end-to-start.
	wantSleeps := []time.Duration{ms(300), ms(500)}
	if len(sleep.slept) != len(wantSleeps) {
		t.Fatalf("slept %v, expected %v", sleep.slept, wantSleeps)
	}
	for i := range wantSleeps {
		if sleep.slept[i] != wantSleeps[i] {
			t.Errorf("sleep %d = %v, expected %v", i, sleep.slept[i], wantSleeps[i])
		}
	}
	if len(sink.calls) != 4 {
		t.Errorf("replayed %d notes, expected 4", len(sink.calls))
	}
	for i, c := range sink.calls {
		if c.dur != DefaultToneDuration {
			t.Errorf("note %d duration %v, expected %v", i, c.dur, DefaultToneDuration)
		}
	}
}

func TestPlaybackEmpty(t *testing.T) {
	s, sink, _, sleep := newTestSequencer()
	err := s.Playback(nil)
	if !errors.Is(err, ErrEmptyRecording) {
		t.Fatalf("Playback on empty buffer = %v, expected ErrEmptyRecording", err)
	}
	if s.Recording() || s.NoteCount() != 0 || len(sink.calls) != 0 || len(sleep.slept) != 0 {
		t.Error("empty playback must not touch state or capabilities")
	}
}

func TestPlaybackLeavesBufferIntact(t *testing.T) {
	s, _, clock, _ := newTestSequencer()
	s.ToggleRecording()
	s.PlayKey('z')
	clock.advance(100)
	s.PlayKey('n')
	s.ToggleRecording()

	before := s.Notes()
	var replayed []Note
	if err := s.Playback(func(n Note) { replayed = append(replayed, n) }); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	after := s.Notes()
	if len(after) != len(before) {
		t.Fatalf("buffer length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("note %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if len(replayed) != len(before) {
		t.Errorf("onNote saw %d notes, expected %d", len(replayed), len(before))
	}
}

func TestPlaybackDuringSession(t *testing.T) {
	s, _, clock, _ := newTestSequencer()
	s.ToggleRecording()
	s.PlayKey('z')
	clock.advance(50)

	// Legal mid-session: replays what is captured so far, capture continues.
	if err := s.Playback(nil); err != nil {
		t.Fatalf("Playback during session: %v", err)
	}
	if !s.Recording() {
		t.Error("playback must not end the session")
	}
	s.PlayKey('n')
	if s.NoteCount() != 2 {
		t.Errorf("buffer holds %d notes after mid-session playback, expected 2", s.NoteCount())
	}
}

func TestWithToneDuration(t *testing.T) {
	s, sink, _, _ := newTestSequencer(WithToneDuration(ms(150)))
	s.PlayKey('z')
	if sink.calls[0].dur != ms(150) {
		t.Errorf("tone duration = %v, expected 150ms", sink.calls[0].dur)
	}
}

func TestWithOctave(t *testing.T) {
	s, _, _, _ := newTestSequencer(WithOctave(12))
	if s.Octave() != MaxOctave {
		t.Errorf("octave = %d, expected clamp to %d", s.Octave(), MaxOctave)
	}
}
