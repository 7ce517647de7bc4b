package qwertypiano_test

import (
	"math"
	"testing"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

func TestPitchOctaveDoubling(t *testing.T) {
	m := qwertypiano.DefaultKeyMap()
	for key := range m {
		for octave := qwertypiano.OctaveMin; octave < qwertypiano.OctaveMax; octave++ {
			lo, ok := m.Pitch(key, octave)
			if !ok {
				t.Fatalf("key %q unexpectedly unmapped", key)
			}
			hi, _ := m.Pitch(key, octave+1)
			if hi <= lo {
				t.Errorf("pitch(%q, %d) = %v not greater than pitch(%q, %d) = %v", key, octave+1, hi, key, octave, lo)
			}
			if ratio := hi / lo; math.Abs(ratio-2) > 1e-9 {
				t.Errorf("octave ratio for %q at octave %d: got %v, want 2", key, octave, ratio)
			}
		}
	}
}

func TestPitchMonotonicInOffset(t *testing.T) {
	m := qwertypiano.DefaultKeyMap()
	layout := qwertypiano.DefaultLayout()
	for i := 1; i < len(layout); i++ {
		prev, _ := m.Pitch(layout[i-1].Key, 4)
		cur, _ := m.Pitch(layout[i].Key, 4)
		if cur <= prev {
			t.Errorf("pitch of %q (%v) not above pitch of %q (%v)", layout[i].Key, cur, layout[i-1].Key, prev)
		}
	}
}

func TestPitchReference(t *testing.T) {
	// semitone 57 is A4 = 440 Hz
	if got := qwertypiano.Frequency(57); math.Abs(got-440) > 1e-9 {
		t.Errorf("Frequency(57) = %v, want 440", got)
	}
	// middle C
	if got := qwertypiano.Frequency(48); math.Abs(got-261.6255653) > 1e-4 {
		t.Errorf("Frequency(48) = %v, want ~261.63", got)
	}
}

func TestUnmappedKey(t *testing.T) {
	m := qwertypiano.DefaultKeyMap()
	if _, ok := m.Pitch("no-such-key", 4); ok {
		t.Error("expected no pitch for an unmapped key")
	}
	if _, ok := m.Semitone("no-such-key", 4); ok {
		t.Error("expected no semitone for an unmapped key")
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		semitone int
		want     string
	}{
		{48, "C4"},
		{57, "A4"},
		{49, "C#4"},
		{59, "B4"},
		{60, "C5"},
		{0, "C0"},
	}
	for _, test := range tests {
		if got := qwertypiano.NoteName(test.semitone); got != test.want {
			t.Errorf("NoteName(%d) = %q, want %q", test.semitone, got, test.want)
		}
	}
}

func TestClampOctave(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {4, 4}, {8, 8}, {9, 8}, {-3, 1},
	}
	for _, test := range tests {
		if got := qwertypiano.ClampOctave(test.in); got != test.want {
			t.Errorf("ClampOctave(%d) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestDefaultLayoutOffsets(t *testing.T) {
	layout := qwertypiano.DefaultLayout()
	seen := map[int]qwertypiano.Key{}
	for i, b := range layout {
		if b.Offset != i {
			t.Errorf("layout[%d] (%q) has offset %d, want %d", i, b.Key, b.Offset, i)
		}
		if prev, ok := seen[b.Offset]; ok {
			t.Errorf("offset %d bound to both %q and %q", b.Offset, prev, b.Key)
		}
		seen[b.Offset] = b.Key
	}
}
