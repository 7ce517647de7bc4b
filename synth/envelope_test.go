package synth

import "testing"

func advance(e *envelope, frames int) float32 {
	var level float32
	for i := 0; i < frames; i++ {
		level = e.next()
	}
	return level
}

func TestEnvelopeAttackDecaySustain(t *testing.T) {
	var e envelope
	e.trigger(0.8)
	if e.state != envStateAttack {
		t.Fatalf("state after trigger = %v, want attack", e.state)
	}
	// a few frames of slack for float32 rate rounding
	peak := advance(&e, attackFrames+8)
	if peak != 0.8 {
		t.Errorf("level after attack = %v, want 0.8", peak)
	}
	if e.state != envStateDecay {
		t.Errorf("state after attack = %v, want decay", e.state)
	}
	sustain := advance(&e, decayFrames+8)
	want := float32(0.8) * sustainRatio
	if sustain != want {
		t.Errorf("level after decay = %v, want %v", sustain, want)
	}
	if e.state != envStateSustain {
		t.Errorf("state after decay = %v, want sustain", e.state)
	}
	// holds indefinitely
	if level := advance(&e, 10*decayFrames); level != want {
		t.Errorf("sustain level drifted to %v, want %v", level, want)
	}
}

func TestEnvelopeRelease(t *testing.T) {
	var e envelope
	e.trigger(1)
	advance(&e, attackFrames+decayFrames)
	e.release(1000)
	if e.state != envStateRelease {
		t.Fatalf("state after release = %v, want release", e.state)
	}
	if level := advance(&e, 1008); level != 0 {
		t.Errorf("level after release ramp = %v, want 0", level)
	}
	if !e.finished() {
		t.Error("envelope not finished after release ramp")
	}
}

func TestEnvelopeReleaseIdempotent(t *testing.T) {
	var e envelope
	e.trigger(1)
	advance(&e, attackFrames+decayFrames)
	e.release(1000)
	advance(&e, 500)
	mid := e.level
	e.release(10) // second release must not restart or steepen the ramp
	advance(&e, 1)
	if e.level >= mid {
		t.Errorf("level did not keep falling: %v >= %v", e.level, mid)
	}
	if e.level < mid-2*e.releaseRate {
		t.Errorf("second release changed the ramp: level fell from %v to %v", mid, e.level)
	}
}

func TestEnvelopeStop(t *testing.T) {
	states := []struct {
		name    string
		prepare func(e *envelope)
	}{
		{"attack", func(e *envelope) { e.trigger(1) }},
		{"sustain", func(e *envelope) { e.trigger(1); advance(e, attackFrames+decayFrames) }},
		{"release", func(e *envelope) { e.trigger(1); advance(e, attackFrames+decayFrames); e.release(100) }},
	}
	for _, test := range states {
		var e envelope
		test.prepare(&e)
		e.stop()
		if !e.finished() {
			t.Errorf("%s: not finished after stop", test.name)
		}
		if level := advance(&e, 10); level != 0 {
			t.Errorf("%s: level after stop = %v, want 0", test.name, level)
		}
	}
}

func TestEnvelopeFinishedIsTerminal(t *testing.T) {
	var e envelope
	e.trigger(1)
	e.stop()
	e.release(100)
	if e.state != envStateFinished {
		t.Errorf("release revived a finished envelope, state = %v", e.state)
	}
	advance(&e, 100)
	if !e.finished() {
		t.Error("finished envelope became unfinished")
	}
}
