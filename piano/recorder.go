package piano

import qwertypiano "github.com/ashish358/QwertyPiano"

type (
	// Event is one recorded key transition. Frame is the offset from the
	// start of the recording, in sample frames; the first captured event of
	// a take is always at frame 0. Events are appended in capture order, so
	// frames are non-decreasing.
	Event struct {
		Key   qwertypiano.Key
		On    bool
		Frame int
	}

	// Recording is an ordered sequence of key transitions. It is mutable
	// only while a take is in progress and frozen once the take stops.
	Recording struct {
		Events      []Event
		TotalFrames int
	}

	recState int

	// recorder captures key transitions into a Recording. Starting a new
	// take discards the previous one; the take becomes playable only after
	// it has been stopped with at least one event captured.
	recorder struct {
		state  recState
		take   Recording
		sealed bool
	}

	// player replays a sealed Recording by cooperative polling: step is
	// called once per audio block and dispatches, in recorded order, every
	// event whose frame has been reached. An event is never dispatched
	// before its recorded offset; the jitter is bounded by one audio block.
	player struct {
		events  []Event
		index   int
		frame   int
		playing bool
	}
)

const (
	recStateNone recState = iota
	recStateWaitingForNote
	recStateRecording
)

func (r *recorder) start() {
	r.state = recStateWaitingForNote
	r.take = Recording{}
	r.sealed = false
}

func (r *recorder) stop() {
	if r.state == recStateNone {
		return
	}
	r.state = recStateNone
	r.sealed = len(r.take.Events) > 0
}

// capture appends a key transition to the take in progress. The first event
// establishes the zero offset of the take.
func (r *recorder) capture(key qwertypiano.Key, on bool) {
	switch r.state {
	case recStateWaitingForNote:
		r.state = recStateRecording
		r.take.TotalFrames = 0
		r.take.Events = append(r.take.Events, Event{Key: key, On: on, Frame: 0})
	case recStateRecording:
		r.take.Events = append(r.take.Events, Event{Key: key, On: on, Frame: r.take.TotalFrames})
	}
}

// advance accounts for one rendered audio block. Time only runs once the
// first event has been captured.
func (r *recorder) advance(frames int) {
	if r.state == recStateRecording {
		r.take.TotalFrames += frames
	}
}

func (r *recorder) recording() bool    { return r.state != recStateNone }
func (r *recorder) hasRecording() bool { return r.sealed }

func (p *player) play(rec Recording) bool {
	if p.playing || len(rec.Events) == 0 {
		return false
	}
	p.events = rec.Events
	p.index = 0
	p.frame = 0
	p.playing = true
	return true
}

func (p *player) stop() {
	p.playing = false
	p.events = nil
}

// step dispatches every not-yet-dispatched event with an offset at or before
// the current playback position, then advances the position by one block.
// Returns true on the step that dispatches the final event.
func (p *player) step(blockFrames int, dispatch func(Event)) (finished bool) {
	if !p.playing {
		return false
	}
	for p.index < len(p.events) && p.events[p.index].Frame <= p.frame {
		dispatch(p.events[p.index])
		p.index++
	}
	p.frame += blockFrames
	if p.index >= len(p.events) {
		p.stop()
		return true
	}
	return false
}
