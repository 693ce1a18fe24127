package main

import (
	"fmt"
	"os"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-piano/audio"
	"go-piano/midisink"
	"go-piano/piano"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "scale":
		playScale(speakerSink())
	case "midiscale":
		name := ""
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		playScale(midiSink(name))
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Tone Backend Test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List MIDI output ports")
	fmt.Println("  scale             - Play a chromatic scale on the speaker")
	fmt.Println("  midiscale [port]  - Play a chromatic scale on a MIDI port")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	for i, p := range midi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func speakerSink() piano.ToneSink {
	spk, err := audio.NewSpeaker()
	if err != nil {
		fmt.Printf("speaker: %v\n", err)
		os.Exit(1)
	}
	return spk
}

func midiSink(name string) piano.ToneSink {
	port, err := midisink.Open(name)
	if err != nil {
		fmt.Printf("midi: %v\n", err)
		os.Exit(1)
	}
	return port
}

// playScale walks the full key layout in semitone order at octave 4.
func playScale(sink piano.ToneSink) {
	table := piano.NewPitchTable()
	order := []rune{'z', 's', 'x', 'd', 'c', 'v', 'g', 'b', 'h', 'n', 'j', 'm'}
	for _, sym := range order {
		p, ok := table.Lookup(sym)
		if !ok {
			continue
		}
		fmt.Printf("  %-2s %.2fHz\n", p.Name, p.Base)
		sink.Emit(p.Base, piano.DefaultToneDuration)
		time.Sleep(50 * time.Millisecond)
	}
	fmt.Println("Done!")
}
