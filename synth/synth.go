// Package synth is a small pure-Go polyphonic synthesizer. Each voice is a
// detuned oscillator pair shaped by an attack/decay/sustain/release
// envelope; all sounding voices are mixed additively into a shared stereo
// buffer.
package synth

import qwertypiano "github.com/ashish358/QwertyPiano"

const MaxVoices = 32

// detuneRatio is the fixed relative detune between the two oscillators of a
// voice, roughly 2 cents, fattening the tone without audible beating.
const detuneRatio = 0.0012

type (
	Synth struct {
		voices [MaxVoices]voice
	}

	voice struct {
		id       int
		active   bool
		waveform qwertypiano.Waveform
		env      envelope
		osc      [2]oscillator
	}
)

var _ qwertypiano.Synth = (*Synth)(nil)

func New() *Synth {
	return &Synth{}
}

// Trigger starts a new voice for the given id. Waveform and detune are fixed
// for the lifetime of the voice. If every slot is busy the trigger is dropped
// silently; the caller sees no sound but nothing breaks.
func (s *Synth) Trigger(id int, pitch float64, waveform qwertypiano.Waveform, peakVolume float32) {
	for i := range s.voices {
		if s.voices[i].active {
			continue
		}
		v := &s.voices[i]
		*v = voice{id: id, active: true, waveform: waveform}
		v.osc[0].setFrequency(pitch)
		v.osc[1].setFrequency(pitch * (1 + detuneRatio))
		v.env.trigger(peakVolume)
		return
	}
}

func (s *Synth) Release(id int, releaseFrames int) {
	for i := range s.voices {
		if s.voices[i].active && s.voices[i].id == id {
			s.voices[i].env.release(releaseFrames)
			return
		}
	}
}

func (s *Synth) Stop(id int) {
	for i := range s.voices {
		if s.voices[i].active && s.voices[i].id == id {
			s.voices[i].env.stop()
			s.voices[i].active = false
			return
		}
	}
}

// StopAll silences and reclaims every voice immediately.
func (s *Synth) StopAll() {
	for i := range s.voices {
		s.voices[i].env.stop()
		s.voices[i].active = false
	}
}

// NumActive returns the number of slots currently occupied by a voice,
// including voices still ringing out their release.
func (s *Synth) NumActive() int {
	n := 0
	for i := range s.voices {
		if s.voices[i].active {
			n++
		}
	}
	return n
}

// Render overwrites buffer with the additive mix of all sounding voices.
// Voices whose release has run to silence are reclaimed during the render.
func (s *Synth) Render(buffer qwertypiano.AudioBuffer) {
	for i := range buffer {
		buffer[i] = [2]float32{}
	}
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active {
			continue
		}
		for j := range buffer {
			amp := v.env.next()
			if v.env.finished() {
				v.active = false
				break
			}
			sample := amp * 0.5 * (v.osc[0].next(v.waveform) + v.osc[1].next(v.waveform))
			buffer[j][0] += sample
			buffer[j][1] += sample
		}
	}
}
