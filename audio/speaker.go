// Package audio synthesizes tones through the default speaker device.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"go-piano/debug"
)

const sampleRate = beep.SampleRate(44100)

// amplitude keeps sine tones comfortably below clipping.
const amplitude = 0.4

// fade softens note edges so tones start and stop without clicks.
const fade = 4 * time.Millisecond

// Speaker is a ToneSink that plays sine tones on the default output
// device. Emit blocks until the tone has finished sounding.
type Speaker struct {
	sr beep.SampleRate
}

// NewSpeaker initializes the output device with a small buffer.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Speaker{sr: sampleRate}, nil
}

// Emit plays a sine tone at freq for d and waits for it to finish.
func (s *Speaker) Emit(freq float64, d time.Duration) {
	if freq <= 0 || d <= 0 {
		return
	}
	total := s.sr.N(d)
	tone := envelope(beep.Take(total, sine(s.sr, freq)), total, s.sr.N(fade))

	done := make(chan struct{})
	speaker.Play(beep.Seq(tone, beep.Callback(func() { close(done) })))
	<-done
	debug.Log("audio", "tone %.2fHz for %v", freq, d)
}

// Close releases the output device.
func (s *Speaker) Close() {
	speaker.Close()
}

// sine returns an endless sine streamer at freq.
func sine(sr beep.SampleRate, freq float64) beep.Streamer {
	step := freq / float64(sr)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := amplitude * math.Sin(2*math.Pi*phase)
			samples[i][0], samples[i][1] = v, v
			phase += step
			if phase >= 1 {
				phase--
			}
		}
		return len(samples), true
	})
}

// envelope ramps gain linearly over the first and last fadeN samples of
// a streamer total samples long.
func envelope(s beep.Streamer, total, fadeN int) beep.Streamer {
	if fadeN*2 > total {
		fadeN = total / 2
	}
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			gain := 1.0
			if fadeN > 0 {
				if pos < fadeN {
					gain = float64(pos) / float64(fadeN)
				} else if rem := total - pos; rem < fadeN {
					gain = float64(rem) / float64(fadeN)
				}
			}
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
}
