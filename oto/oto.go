// Package oto plays the engine's audio stream through the ebitengine/oto
// library.
package oto

import (
	"fmt"
	"io"

	qwertypiano "github.com/ashish358/QwertyPiano"
	"github.com/ebitengine/oto/v3"
)

type (
	// Context implements qwertypiano.AudioContext on top of an oto context.
	// The underlying device may need an asynchronous warm-up (or, on some
	// platforms, a user gesture); until Ready reports true, written audio is
	// queued by oto rather than played, so callers never have to wait.
	Context struct {
		context *oto.Context
		ready   chan struct{}
	}

	playCloser struct {
		player *oto.Player
	}
)

var _ qwertypiano.AudioContext = (*Context)(nil)

func NewContext() (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   qwertypiano.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	return &Context{context: context, ready: ready}, nil
}

// Ready reports whether the audio device has been acquired.
func (c *Context) Ready() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Play starts pulling buffers from the callback in oto's playback goroutine.
func (c *Context) Play(callback func(buffer qwertypiano.AudioBuffer) error) io.Closer {
	player := c.context.NewPlayer(&callbackReader{callback: callback})
	player.Play()
	return playCloser{player: player}
}

// Close suspends the context; oto contexts cannot be destroyed, so suspending
// is the closest equivalent.
func (c *Context) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (p playCloser) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
