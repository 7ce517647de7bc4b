package synth

import qwertypiano "github.com/ashish358/QwertyPiano"

type envState int

const (
	envStateAttack envState = iota
	envStateDecay
	envStateSustain
	envStateRelease
	envStateFinished
)

// Fixed envelope shape of a piano key hit: a short linear attack to the peak,
// a decay to the sustain plateau and an indefinite hold there. Only the
// release length varies, chosen by the voice manager per release.
const (
	attackFrames = qwertypiano.SampleRate / 50  // 20 ms
	decayFrames  = qwertypiano.SampleRate / 10  // 100 ms
	sustainRatio = 0.7
)

// envelope is the amplitude state machine of one voice. It advances one frame
// per call to next. No transition leaves envStateFinished.
type envelope struct {
	state       envState
	level       float32
	peak        float32
	attackRate  float32
	decayRate   float32
	releaseRate float32
}

func (e *envelope) trigger(peak float32) {
	e.state = envStateAttack
	e.level = 0
	e.peak = peak
	e.attackRate = peak / attackFrames
	e.decayRate = peak * (1 - sustainRatio) / decayFrames
}

// release starts the ramp from the current level to silence over
// releaseFrames frames. Calling it on an already releasing or finished
// envelope does nothing.
func (e *envelope) release(releaseFrames int) {
	if e.state == envStateRelease || e.state == envStateFinished {
		return
	}
	if releaseFrames < 1 {
		releaseFrames = 1
	}
	e.state = envStateRelease
	e.releaseRate = e.level / float32(releaseFrames)
}

func (e *envelope) stop() {
	e.state = envStateFinished
	e.level = 0
}

func (e *envelope) finished() bool { return e.state == envStateFinished }

// next advances the envelope one frame and returns the amplitude for it.
func (e *envelope) next() float32 {
	switch e.state {
	case envStateAttack:
		e.level += e.attackRate
		if e.level >= e.peak {
			e.level = e.peak
			e.state = envStateDecay
		}
	case envStateDecay:
		sustain := e.peak * sustainRatio
		e.level -= e.decayRate
		if e.level <= sustain {
			e.level = sustain
			e.state = envStateSustain
		}
	case envStateSustain:
		// hold until released
	case envStateRelease:
		e.level -= e.releaseRate
		if e.level <= 0 {
			e.level = 0
			e.state = envStateFinished
		}
	case envStateFinished:
		e.level = 0
	}
	return e.level
}
