package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashish358/QwertyPiano/oto"
	"github.com/ashish358/QwertyPiano/piano"
	"github.com/ashish358/QwertyPiano/piano/gomidi"
	"github.com/ashish358/QwertyPiano/piano/tui"
	"github.com/ashish358/QwertyPiano/synth"
)

var (
	midiInput    = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
	settingsPath = flag.String("settings", "", "path to the settings file (default: user config dir)")
	listMIDI     = flag.Bool("list-midi", false, "list MIDI input devices and exit")
)

func main() {
	flag.Parse()

	path := *settingsPath
	if path == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(configDir, "QwertyPiano", "settings.yml")
		}
	}
	settings, err := piano.LoadSettings(path)
	if err != nil {
		log.Printf("using default settings: %v", err)
	}
	if *midiInput != "" {
		settings.MIDIInput = *midiInput
	}

	broker := piano.NewBroker()
	midiContext := gomidi.NewContext(broker)
	defer midiContext.Close()
	if *listMIDI {
		for _, name := range midiContext.InputNames() {
			fmt.Println(name)
		}
		return
	}
	if settings.MIDIInput != "" {
		if err := midiContext.OpenByPrefix(settings.MIDIInput); err != nil {
			log.Printf("MIDI input unavailable: %v", err)
		}
	}

	audioContext, err := oto.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not acquire audio context: %v\n", err)
		os.Exit(1)
	}

	keys := settings.KeyMap()
	engine := piano.NewEngine(broker, synth.New(), keys, settings)
	audioCloser := audioContext.Play(engine.Process)

	model := tui.NewModel(broker, keys, settings, audioContext.Ready)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Printf("ui error: %v", err)
	}

	// Teardown order: silence every voice, let the stream drain the release
	// tails, then stop the player before suspending the context.
	piano.TrySend(broker.ToEngine, any(piano.PanicMsg{}))
	time.Sleep(100 * time.Millisecond)
	audioCloser.Close()
	audioContext.Close()
}
