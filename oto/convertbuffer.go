package oto

import (
	"encoding/binary"
	"math"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

// bytesPerFrame is one stereo frame in oto's FormatFloat32LE: two channels of
// four bytes each.
const bytesPerFrame = 8

// callbackReader adapts the engine's pull callback to the io.Reader that oto
// players consume, converting rendered stereo frames to little-endian float32
// bytes. The scratch buffer is reused between reads to avoid allocating on
// the audio path.
type callbackReader struct {
	callback func(buffer qwertypiano.AudioBuffer) error
	scratch  qwertypiano.AudioBuffer
}

func (r *callbackReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.scratch) < frames {
		r.scratch = make(qwertypiano.AudioBuffer, frames)
	}
	r.scratch = r.scratch[:frames]
	if err := r.callback(r.scratch); err != nil {
		return 0, err
	}
	for i, s := range r.scratch {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(s[0]))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(s[1]))
	}
	return frames * bytesPerFrame, nil
}
