// Package gomidi feeds hardware MIDI note events into the engine using the
// rtmidi driver. A MIDI keyboard plays alongside the computer keyboard: its
// transitions flow through the same serialized engine queue and the same
// recorder.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashish358/QwertyPiano/piano"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// MIDI note 12 is C0, which is semitone 0 in the engine's indexing.
const midiC0 = 12

type Context struct {
	driver    *rtmididrv.Driver
	currentIn drivers.In
	broker    *piano.Broker
}

// NewContext opens the rtmidi driver. A missing driver is not an error; the
// context just has no devices then.
func NewContext(broker *piano.Broker) *Context {
	c := &Context{broker: broker}
	// there's not much we can do if this fails, so just use c.driver = nil to
	// indicate no driver available
	c.driver, _ = rtmididrv.New()
	return c
}

// InputNames lists the available MIDI input device names.
func (c *Context) InputNames() []string {
	if c.driver == nil {
		return nil
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// OpenByPrefix opens the first input device whose name starts with the given
// prefix, closing a previously open one if necessary.
func (c *Context) OpenByPrefix(prefix string) error {
	if c.driver == nil {
		return errors.New("no MIDI driver available")
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return fmt.Errorf("listing MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if strings.HasPrefix(in.String(), prefix) {
			return c.open(in)
		}
	}
	return fmt.Errorf("no MIDI input found with prefix %q", prefix)
}

func (c *Context) open(in drivers.In) error {
	if c.currentIn == in {
		return nil
	}
	if c.currentIn != nil && c.currentIn.IsOpen() {
		c.currentIn.Close()
	}
	c.currentIn = in
	if err := in.Open(); err != nil {
		c.currentIn = nil
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	if _, err := midi.ListenTo(in, c.handleMessage); err != nil {
		in.Close()
		c.currentIn = nil
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	return nil
}

func (c *Context) handleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		piano.TrySend(c.broker.ToEngine, any(piano.MIDINoteMsg{Semitone: int(key) - midiC0, On: true}))
	case msg.GetNoteOff(&channel, &key, &velocity):
		piano.TrySend(c.broker.ToEngine, any(piano.MIDINoteMsg{Semitone: int(key) - midiC0, On: false}))
	}
}

func (c *Context) Close() {
	if c.driver == nil {
		return
	}
	if c.currentIn != nil && c.currentIn.IsOpen() {
		c.currentIn.Close()
	}
	c.driver.Close()
}
