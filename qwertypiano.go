package qwertypiano

import "io"

// SampleRate is the fixed sample rate of the whole system, in frames per
// second. All durations in the engine and the recorder are expressed in
// sample frames at this rate.
const SampleRate = 44100

type (
	// AudioBuffer is a buffer of stereo audio samples of [left, right] pairs.
	AudioBuffer [][2]float32

	// Waveform selects the oscillator shape of a voice. It is fixed at the
	// moment a voice is triggered and never changes while the voice sounds.
	Waveform int

	// Synth is a polyphonic signal generator. Voices are identified by
	// caller-chosen ids; the synth mixes all sounding voices additively into
	// the buffer given to Render. All methods must be called from a single
	// goroutine.
	Synth interface {
		// Trigger starts a new voice. The voice ramps from silence to
		// peakVolume, decays to its sustain level and holds there until
		// released or stopped. If all voice slots are busy the trigger is
		// dropped silently.
		Trigger(id int, pitch float64, waveform Waveform, peakVolume float32)
		// Release ramps the voice from its current level to silence over
		// releaseFrames frames, after which the voice slot is reclaimed.
		// Releasing an unknown, already releasing or finished voice is a
		// no-op.
		Release(id int, releaseFrames int)
		// Stop silences and reclaims the voice immediately. Stopping an
		// unknown or finished voice is a no-op.
		Stop(id int)
		// Render adds all sounding voices into buffer, overwriting its
		// previous contents.
		Render(buffer AudioBuffer)
	}

	// AudioContext provides audio playback for a stream of AudioBuffers.
	AudioContext interface {
		// Play starts pulling buffers from the callback in a background
		// goroutine. Closing the returned closer stops the stream.
		Play(callback func(buffer AudioBuffer) error) io.Closer
		// Ready reports whether the underlying audio device has been
		// acquired. Buffers written before that are queued, not lost, so
		// callers only need this for informing the user.
		Ready() bool
		Close() error
	}
)

const (
	Sine Waveform = iota
	Triangle
	Square
	Sawtooth
	NumWaveforms
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	}
	return "unknown"
}

// ParseWaveform returns the Waveform with the given name, defaulting to Sine
// for unknown names.
func ParseWaveform(name string) Waveform {
	for w := Sine; w < NumWaveforms; w++ {
		if w.String() == name {
			return w
		}
	}
	return Sine
}
