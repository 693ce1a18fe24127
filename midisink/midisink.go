// Package midisink emits notes on a MIDI output port instead of the
// speaker, for use with a hardware or software synth.
package midisink

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-piano/debug"
)

// Ports matching any of these are never auto-picked (virtual/system ports).
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

const (
	channel  = 0
	velocity = 100
)

// Port is a ToneSink that plays notes on one MIDI output. Emit blocks
// for the note duration, matching the speaker backend's contract.
type Port struct {
	out  drivers.Out
	send func(midi.Message) error
}

// Open connects to the first output port whose name contains name
// (case-insensitive), or to the first non-virtual port when name is
// empty.
func Open(name string) (*Port, error) {
	var out drivers.Out
	for _, p := range midi.GetOutPorts() {
		if excluded(p.String()) {
			continue
		}
		if name == "" || containsCI(p.String(), name) {
			out = p
			break
		}
	}
	if out == nil {
		return nil, fmt.Errorf("no MIDI output port matching %q", name)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", out.String(), err)
	}
	debug.Log("midi", "connected to %s", out.String())
	return &Port{out: out, send: send}, nil
}

// Emit sounds the nearest MIDI note for freq: note on, hold, note off.
func (p *Port) Emit(freq float64, d time.Duration) {
	key, ok := NoteForFrequency(freq)
	if !ok {
		debug.Log("midi", "frequency %.2fHz outside MIDI range", freq)
		return
	}
	if err := p.send(midi.NoteOn(channel, key, velocity)); err != nil {
		debug.Log("midi", "note on failed: %v", err)
		return
	}
	time.Sleep(d)
	if err := p.send(midi.NoteOff(channel, key)); err != nil {
		debug.Log("midi", "note off failed: %v", err)
	}
}

// Close releases the output port.
func (p *Port) Close() error {
	return p.out.Close()
}

// NoteForFrequency maps a frequency to the nearest equal-tempered MIDI
// note number (A4 = 440Hz = 69). Frequencies that round outside 0-127
// report false.
func NoteForFrequency(freq float64) (uint8, bool) {
	if freq <= 0 {
		return 0, false
	}
	n := math.Round(69 + 12*math.Log2(freq/440))
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}

func excluded(name string) bool {
	for _, pat := range excludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
