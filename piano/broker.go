package piano

import (
	qwertypiano "github.com/ashish358/QwertyPiano"
)

type (
	// Broker is the centralized message hub between the engine, the
	// presentation layer and the input adapters. Communication is
	// many-to-one, one buffered channel per recipient, and every send is
	// non-blocking: the audio goroutine can never dead-lock on a slow UI
	// and the UI can never dead-lock on a busy engine.
	Broker struct {
		ToEngine chan any
		ToUI     chan any
	}

	// Messages to the engine. All musical-state mutation happens by sending
	// one of these; the engine drains them serially at the start of every
	// Process call.

	// NoteOnMsg and NoteOffMsg carry abstract key transitions, from the
	// computer keyboard or from playback dispatch.
	NoteOnMsg  struct{ Key qwertypiano.Key }
	NoteOffMsg struct{ Key qwertypiano.Key }

	// MIDINoteMsg is a note transition from a hardware MIDI device. The
	// semitone index is absolute (C0 = 0), so MIDI input ignores the octave
	// setting, like the keys of a real piano do.
	MIDINoteMsg struct {
		Semitone int
		On       bool
	}

	SustainMsg  struct{ On bool }
	OctaveMsg   struct{ Delta int }
	WaveformMsg struct{ Waveform qwertypiano.Waveform }
	VolumeMsg   struct{ Delta float32 }
	PanicMsg    struct{}

	// RecordMsg starts (On) or stops and seals (not On) a recording take.
	RecordMsg struct{ On bool }
	// PlayMsg replays the last sealed take. Ignored while a playback is
	// already dispatching.
	PlayMsg struct{}

	// Messages to the UI.

	// KeyStateMsg tells the presentation layer to highlight or clear a key.
	KeyStateMsg struct {
		Key  qwertypiano.Key
		Down bool
	}

	// StatusMsg is the full control-state snapshot for the status line. Sent
	// whenever any of the fields changes.
	StatusMsg struct {
		Octave       int
		Waveform     qwertypiano.Waveform
		Volume       float32
		Sustain      bool
		Recording    bool
		Playing      bool
		HasRecording bool
		NoteName     string
	}

	// LevelMsg carries the output level for the meter, in dBFS.
	LevelMsg struct {
		Peak    float64
		Average float64
	}

	AlertMsg struct{ Message string }
)

func NewBroker() *Broker {
	return &Broker{
		ToEngine: make(chan any, 1024),
		ToUI:     make(chan any, 1024),
	}
}

// TrySend sends a value to a channel if it is not full. It is guaranteed to
// be non-blocking. Returns true if the value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
