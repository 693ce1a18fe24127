package piano

import "time"

// ToneSink produces an audible tone. Emit blocks for the duration of the
// tone; the sequencer relies on that for one-note-at-a-time playback.
type ToneSink interface {
	Emit(freq float64, d time.Duration)
}

// Clock supplies the timestamps recorded notes are stamped with. It must
// be monotonically non-decreasing.
type Clock interface {
	Now() time.Time
}

// Sleeper suspends the calling goroutine for at least d. Used only for
// inter-note gaps during playback.
type Sleeper interface {
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type systemSleeper struct{}

func (systemSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// SystemSleeper returns a Sleeper backed by time.Sleep.
func SystemSleeper() Sleeper { return systemSleeper{} }
