package piano

import (
	"reflect"
	"testing"
)

func TestRecorderFirstEventAtZero(t *testing.T) {
	var r recorder
	r.start()
	if !r.recording() {
		t.Fatal("not recording after start")
	}
	// time must not run before the first event
	r.advance(10000)
	r.capture("a", true)
	r.advance(441)
	r.capture("a", false)
	r.stop()
	want := []Event{
		{Key: "a", On: true, Frame: 0},
		{Key: "a", On: false, Frame: 441},
	}
	if !reflect.DeepEqual(r.take.Events, want) {
		t.Errorf("take = %v, want %v", r.take.Events, want)
	}
	if !r.hasRecording() {
		t.Error("take not sealed after stop")
	}
	if r.recording() {
		t.Error("still recording after stop")
	}
}

func TestRecorderFramesNonDecreasing(t *testing.T) {
	var r recorder
	r.start()
	r.capture("a", true)
	r.advance(100)
	r.capture("s", true)
	r.capture("a", false)
	r.advance(50)
	r.capture("s", false)
	r.stop()
	prev := -1
	for _, ev := range r.take.Events {
		if ev.Frame < prev {
			t.Fatalf("frames decreased: %v", r.take.Events)
		}
		prev = ev.Frame
	}
}

func TestRecorderStopWithoutEvents(t *testing.T) {
	var r recorder
	r.start()
	r.advance(441)
	r.stop()
	if r.hasRecording() {
		t.Error("empty take was sealed")
	}
}

func TestRecorderStartDiscardsPreviousTake(t *testing.T) {
	var r recorder
	r.start()
	r.capture("a", true)
	r.capture("a", false)
	r.stop()
	if !r.hasRecording() {
		t.Fatal("first take not sealed")
	}
	r.start()
	if r.hasRecording() {
		t.Error("starting a new take kept the old one playable")
	}
	if len(r.take.Events) != 0 {
		t.Errorf("take not cleared: %v", r.take.Events)
	}
}

func TestRecorderCaptureWhenIdle(t *testing.T) {
	var r recorder
	r.capture("a", true)
	if len(r.take.Events) != 0 {
		t.Errorf("captured while idle: %v", r.take.Events)
	}
}

func TestPlayerRejectsEmptyRecording(t *testing.T) {
	var p player
	if p.play(Recording{}) {
		t.Error("playing an empty recording was accepted")
	}
}

func TestPlayerRejectsWhilePlaying(t *testing.T) {
	rec := Recording{Events: []Event{{Key: "a", On: true, Frame: 0}, {Key: "a", On: false, Frame: 1000}}}
	var p player
	if !p.play(rec) {
		t.Fatal("play rejected")
	}
	p.step(441, func(Event) {})
	if p.play(rec) {
		t.Error("second play accepted while the first is still dispatching")
	}
}

func TestPlayerStepNeverDispatchesEarly(t *testing.T) {
	rec := Recording{Events: []Event{
		{Key: "a", On: true, Frame: 0},
		{Key: "s", On: true, Frame: 100},
		{Key: "a", On: false, Frame: 441},
		{Key: "s", On: false, Frame: 882},
	}}
	var p player
	if !p.play(rec) {
		t.Fatal("play rejected")
	}
	type dispatched struct {
		ev Event
		at int // playback position at dispatch, in frames
	}
	var got []dispatched
	pos, steps := 0, 0
	for {
		finished := p.step(441, func(ev Event) {
			got = append(got, dispatched{ev, pos})
		})
		pos += 441
		steps++
		if finished {
			break
		}
		if steps > 10 {
			t.Fatal("player never finished")
		}
	}
	if len(got) != len(rec.Events) {
		t.Fatalf("dispatched %d events, want %d", len(got), len(rec.Events))
	}
	for i, d := range got {
		if d.ev != rec.Events[i] {
			t.Errorf("event %d dispatched out of order: got %v, want %v", i, d.ev, rec.Events[i])
		}
		if d.at < d.ev.Frame {
			t.Errorf("event %v dispatched at position %d, before its offset", d.ev, d.at)
		}
		if d.at-d.ev.Frame >= 441 {
			t.Errorf("event %v dispatched at position %d, more than one block late", d.ev, d.at)
		}
	}
	if p.playing {
		t.Error("player still playing after the final event")
	}
}
