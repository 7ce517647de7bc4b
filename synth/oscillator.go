package synth

import (
	"math"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

// oscillator is a single phase accumulator producing one of the four
// waveforms. The phase runs in [0, 1).
type oscillator struct {
	phase float64
	delta float64
}

func (o *oscillator) setFrequency(hz float64) {
	o.delta = hz / qwertypiano.SampleRate
}

func (o *oscillator) next(w qwertypiano.Waveform) float32 {
	phase := o.phase
	o.phase += o.delta
	o.phase -= math.Floor(o.phase)
	switch w {
	case qwertypiano.Sine:
		return float32(math.Sin(2 * math.Pi * phase))
	case qwertypiano.Triangle:
		return float32(4*math.Abs(phase-0.5) - 1)
	case qwertypiano.Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case qwertypiano.Sawtooth:
		return float32(2*phase - 1)
	}
	return 0
}
