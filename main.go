package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-piano/audio"
	"go-piano/config"
	"go-piano/debug"
	"go-piano/midisink"
	"go-piano/piano"
	"go-piano/theme"
	"go-piano/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	output := flag.String("output", "", "tone backend: speaker or midi (overrides config)")
	flag.Parse()

	if *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output = *output
	}

	sink, cleanup, err := openSink(cfg)
	if err != nil {
		fmt.Printf("tone backend: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	seq := piano.New(
		piano.NewPitchTable(),
		sink,
		piano.SystemClock(),
		piano.SystemSleeper(),
		piano.WithOctave(cfg.Octave),
		piano.WithToneDuration(cfg.ToneDuration()),
	)

	m := tui.NewModel(seq, theme.New())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// openSink builds the configured ToneSink and its cleanup.
func openSink(cfg *config.Config) (piano.ToneSink, func(), error) {
	switch cfg.Output {
	case config.OutputMIDI:
		port, err := midisink.Open(cfg.MIDIPort)
		if err != nil {
			return nil, nil, err
		}
		return port, func() { port.Close() }, nil
	case config.OutputSpeaker, "":
		spk, err := audio.NewSpeaker()
		if err != nil {
			return nil, nil, err
		}
		return spk, spk.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown output %q", cfg.Output)
}
