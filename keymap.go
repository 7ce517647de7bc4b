package qwertypiano

import (
	"fmt"
	"math"
)

// Key identifies one playable key position on the instrument, by the caption
// of the physical key bound to it ("a", "w", ...). Key identities are stable
// across octave changes; only the resolved pitch moves.
type Key string

// KeyBinding assigns a Key a fixed semitone offset within the octave window.
// Offset 0 is the C of the current octave.
type KeyBinding struct {
	Key    Key
	Offset int
}

// KeyMap resolves Keys to semitone offsets. Offsets are fixed at
// configuration time; there is exactly one offset per mapped key.
type KeyMap map[Key]int

const (
	OctaveMin = 1
	OctaveMax = 8

	// Equal temperament anchor: A4 = 440 Hz. Semitone indices count from
	// C0 = 0, so A4 is semitone 57.
	referenceFrequency = 440.0
	referenceSemitone  = 57
)

// DefaultLayout is the standard binding: naturals on the home row, the
// accidentals on the row above, mimicking piano fingering. It spans one and a
// half octaves starting from the C of the current octave.
func DefaultLayout() []KeyBinding {
	return []KeyBinding{
		{"a", 0}, {"w", 1}, {"s", 2}, {"e", 3}, {"d", 4}, {"f", 5},
		{"t", 6}, {"g", 7}, {"y", 8}, {"h", 9}, {"u", 10}, {"j", 11},
		{"k", 12}, {"o", 13}, {"l", 14}, {"p", 15}, {";", 16}, {"'", 17},
	}
}

// DefaultKeyMap returns the KeyMap of DefaultLayout.
func DefaultKeyMap() KeyMap {
	m := make(KeyMap)
	for _, b := range DefaultLayout() {
		m[b.Key] = b.Offset
	}
	return m
}

// Semitone resolves a key at the given octave to an absolute semitone index
// (C0 = 0). ok is false for keys with no configured offset. The octave is not
// clamped here; clamping the octave to OctaveMin..OctaveMax is the caller's
// responsibility.
func (m KeyMap) Semitone(key Key, octave int) (semitone int, ok bool) {
	offset, ok := m[key]
	if !ok {
		return 0, false
	}
	return octave*12 + offset, true
}

// Pitch resolves a key at the given octave to a frequency in Hz, in equal
// temperament anchored to A4 = 440 Hz. ok is false for unmapped keys.
func (m KeyMap) Pitch(key Key, octave int) (frequency float64, ok bool) {
	semitone, ok := m.Semitone(key, octave)
	if !ok {
		return 0, false
	}
	return Frequency(semitone), true
}

// Frequency converts an absolute semitone index to Hz.
func Frequency(semitone int) float64 {
	return referenceFrequency * math.Exp2(float64(semitone-referenceSemitone)/12)
}

// ClampOctave clamps an octave to the playable range.
func ClampOctave(octave int) int {
	if octave < OctaveMin {
		return OctaveMin
	}
	if octave > OctaveMax {
		return OctaveMax
	}
	return octave
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the textual name of an absolute semitone index, e.g. "C4"
// or "A#3".
func NoteName(semitone int) string {
	n := semitone % 12
	if n < 0 {
		n += 12
	}
	return fmt.Sprintf("%s%d", noteNames[n], (semitone-n)/12)
}

// IsAccidental reports whether a semitone offset lands on a black key.
func IsAccidental(offset int) bool {
	switch ((offset % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
