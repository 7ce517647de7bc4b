// Package piano is the control layer of the instrument: the Engine owns all
// musical state (active voices, sustain, octave, recording and playback) and
// mutates it only on the audio goroutine, driven by messages from a Broker.
package piano

import (
	"fmt"
	"strconv"
	"strings"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

// releaseFrames is the release ramp length of a normal note-off, 300 ms.
const releaseFrames = qwertypiano.SampleRate * 3 / 10

// Engine tracks the set of sounding voices keyed by logical key identity and
// drives a Synth from abstract key transitions. It is run from the audio
// callback: Process first drains the control queue, then dispatches due
// playback events, then renders. Nothing outside Process may touch its state,
// which is what serializes every musical-state transition.
type Engine struct {
	broker *Broker
	synth  qwertypiano.Synth
	keys   qwertypiano.KeyMap

	octave   int
	waveform qwertypiano.Waveform
	volume   float32
	sustain  bool

	active      map[qwertypiano.Key]int  // key -> voice id; absence means silent
	deferred    map[qwertypiano.Key]bool // logically off but held by sustain
	nextVoiceID int
	lastNote    string

	rec         recorder
	playback    player
	analyzer    VolumeAnalyzer
	levelFrames int
}

// levelInterval is how often the smoothed level is published to the UI, in
// frames. Once per audio block would flood the UI for no visible benefit.
const levelInterval = qwertypiano.SampleRate / 20

func NewEngine(broker *Broker, synth qwertypiano.Synth, keys qwertypiano.KeyMap, settings Settings) *Engine {
	e := &Engine{
		broker:   broker,
		synth:    synth,
		keys:     keys,
		octave:   qwertypiano.ClampOctave(settings.Octave),
		waveform: settings.WaveformValue(),
		volume:   clampVolume(settings.Volume),
		active:   make(map[qwertypiano.Key]int),
		deferred: make(map[qwertypiano.Key]bool),
		analyzer: VolumeAnalyzer{Attack: 0.0015, Release: 0.5, Min: -60, Max: 0},
	}
	return e
}

// Process renders one audio block. It is the single point where musical state
// changes: queued control messages first, then playback dispatch, then the
// synth render. It never blocks.
func (e *Engine) Process(buffer qwertypiano.AudioBuffer) error {
	e.processMessages()
	if e.playback.step(len(buffer), e.dispatch) {
		e.sendStatus()
	}
	e.synth.Render(buffer)
	e.rec.advance(len(buffer))
	if err := e.analyzer.Update(buffer); err != nil {
		TrySend(e.broker.ToUI, any(AlertMsg{Message: fmt.Sprintf("analyzer: %v", err)}))
	}
	e.levelFrames += len(buffer)
	if e.levelFrames >= levelInterval {
		e.levelFrames = 0
		TrySend(e.broker.ToUI, any(LevelMsg{Peak: e.analyzer.Peak, Average: e.analyzer.Level}))
	}
	return nil
}

func (e *Engine) processMessages() {
loop:
	for {
		select {
		case msg := <-e.broker.ToEngine:
			switch m := msg.(type) {
			case NoteOnMsg:
				e.noteOn(m.Key)
			case NoteOffMsg:
				e.noteOff(m.Key)
			case MIDINoteMsg:
				if m.On {
					e.noteOn(midiKey(m.Semitone))
				} else {
					e.noteOff(midiKey(m.Semitone))
				}
			case SustainMsg:
				e.setSustain(m.On)
			case OctaveMsg:
				e.octave = qwertypiano.ClampOctave(e.octave + m.Delta)
				e.sendStatus()
			case WaveformMsg:
				e.waveform = m.Waveform
				e.sendStatus()
			case VolumeMsg:
				e.volume = clampVolume(e.volume + m.Delta)
				e.sendStatus()
			case PanicMsg:
				e.allNotesOff()
			case RecordMsg:
				if m.On {
					e.rec.start()
				} else {
					e.rec.stop()
				}
				e.sendStatus()
			case PlayMsg:
				e.play()
			default:
				// ignore unknown messages
			}
		default:
			break loop
		}
	}
}

// noteOn starts a voice for the key unless one is already sounding for it.
// The no-op on an already active key is what keeps keyboard auto-repeat from
// retriggering the envelope. Unmapped keys are ignored.
func (e *Engine) noteOn(key qwertypiano.Key) {
	if _, ok := e.active[key]; ok {
		return
	}
	semitone, ok := e.semitone(key)
	if !ok {
		return
	}
	e.rec.capture(key, true)
	id := e.nextVoiceID
	e.nextVoiceID++
	e.synth.Trigger(id, qwertypiano.Frequency(semitone), e.waveform, e.volume)
	e.active[key] = id
	e.lastNote = qwertypiano.NoteName(semitone)
	TrySend(e.broker.ToUI, any(KeyStateMsg{Key: key, Down: true}))
	e.sendStatus()
}

// noteOff releases the key's voice, or defers the release while sustain is
// engaged. A note-off for a silent key is a no-op.
func (e *Engine) noteOff(key qwertypiano.Key) {
	if _, ok := e.active[key]; !ok {
		return
	}
	e.rec.capture(key, false)
	if e.sustain {
		e.deferred[key] = true
		return
	}
	e.releaseKey(key)
}

func (e *Engine) releaseKey(key qwertypiano.Key) {
	e.synth.Release(e.active[key], releaseFrames)
	delete(e.active, key)
	delete(e.deferred, key)
	TrySend(e.broker.ToUI, any(KeyStateMsg{Key: key, Down: false}))
}

// setSustain updates the sustain flag. Clearing it releases every key that
// went logically off while sustain was held; keys still physically down keep
// sounding.
func (e *Engine) setSustain(on bool) {
	if e.sustain == on {
		return
	}
	e.sustain = on
	if !on {
		for key := range e.deferred {
			e.releaseKey(key)
		}
	}
	e.sendStatus()
}

// allNotesOff releases every voice regardless of sustain, clears the active
// set and cancels any playback in progress. Safe to call at any time.
func (e *Engine) allNotesOff() {
	e.playback.stop()
	for key := range e.active {
		e.synth.Release(e.active[key], releaseFrames)
		TrySend(e.broker.ToUI, any(KeyStateMsg{Key: key, Down: false}))
	}
	clear(e.active)
	clear(e.deferred)
	e.sendStatus()
}

// play starts replaying the last sealed take. A play command while a playback
// is still dispatching, or while recording, is rejected; playing an empty or
// missing take is a no-op.
func (e *Engine) play() {
	if e.rec.recording() || !e.rec.hasRecording() {
		return
	}
	if !e.playback.play(e.rec.take) {
		TrySend(e.broker.ToUI, any(AlertMsg{Message: "playback already running"}))
		return
	}
	e.sendStatus()
}

func (e *Engine) dispatch(ev Event) {
	if ev.On {
		e.noteOn(ev.Key)
	} else {
		e.noteOff(ev.Key)
	}
}

// semitone resolves a key to an absolute semitone index. Mapped keys follow
// the key map at the current octave; MIDI keys carry their absolute pitch in
// the key identity itself.
func (e *Engine) semitone(key qwertypiano.Key) (int, bool) {
	if st, ok := e.keys.Semitone(key, e.octave); ok {
		return st, true
	}
	if s, ok := strings.CutPrefix(string(key), "midi:"); ok {
		if st, err := strconv.Atoi(s); err == nil {
			return st, true
		}
	}
	return 0, false
}

func (e *Engine) sendStatus() {
	TrySend(e.broker.ToUI, any(StatusMsg{
		Octave:       e.octave,
		Waveform:     e.waveform,
		Volume:       e.volume,
		Sustain:      e.sustain,
		Recording:    e.rec.recording(),
		Playing:      e.playback.playing,
		HasRecording: e.rec.hasRecording(),
		NoteName:     e.lastNote,
	}))
}

// midiKey derives a stable key identity for a hardware MIDI note, so MIDI
// transitions flow through the same active-set and recorder paths as
// keyboard ones.
func midiKey(semitone int) qwertypiano.Key {
	return qwertypiano.Key("midi:" + strconv.Itoa(semitone))
}

func clampVolume(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
