package piano

import (
	"math"
	"testing"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

// fastAnalyzer has time constants much shorter than one block, so a single
// Update lands nearly on the target value.
func fastAnalyzer() VolumeAnalyzer {
	return VolumeAnalyzer{Attack: 1e-6, Release: 1e-6, Min: -60, Max: 0}
}

func constantBuffer(frames int, value float32) qwertypiano.AudioBuffer {
	buffer := make(qwertypiano.AudioBuffer, frames)
	for i := range buffer {
		buffer[i] = [2]float32{value, -value}
	}
	return buffer
}

func TestVolumeAnalyzerFullScale(t *testing.T) {
	v := fastAnalyzer()
	if err := v.Update(constantBuffer(441, 1)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if math.Abs(v.Peak) > 1e-6 {
		t.Errorf("Peak = %v dB, want 0", v.Peak)
	}
	if math.Abs(v.Level) > 1e-6 {
		t.Errorf("Level = %v dB, want 0", v.Level)
	}
}

func TestVolumeAnalyzerSilenceClampsToMin(t *testing.T) {
	v := fastAnalyzer()
	if err := v.Update(constantBuffer(441, 0)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if math.Abs(v.Peak-v.Min) > 1e-6 {
		t.Errorf("Peak = %v dB, want %v", v.Peak, v.Min)
	}
	if math.Abs(v.Level-v.Min) > 1e-6 {
		t.Errorf("Level = %v dB, want %v", v.Level, v.Min)
	}
}

func TestVolumeAnalyzerSmoothing(t *testing.T) {
	// slow release: the level must fall gradually, not jump to the floor
	v := VolumeAnalyzer{Attack: 0.001, Release: 10, Min: -60, Max: 0}
	if err := v.Update(constantBuffer(441, 1)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	loud := v.Peak
	if err := v.Update(constantBuffer(441, 0)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.Peak >= loud {
		t.Errorf("Peak did not fall on silence: %v -> %v", loud, v.Peak)
	}
	if v.Peak < loud-1 {
		t.Errorf("Peak fell %v dB in one block despite the slow release", loud-v.Peak)
	}
}

func TestVolumeAnalyzerNaN(t *testing.T) {
	v := fastAnalyzer()
	buffer := constantBuffer(16, 0.5)
	buffer[3][0] = float32(math.NaN())
	if err := v.Update(buffer); err == nil {
		t.Error("expected an error for NaN samples")
	}
}

func TestVolumeAnalyzerEmptyBlock(t *testing.T) {
	v := fastAnalyzer()
	if err := v.Update(nil); err != nil {
		t.Errorf("Update(nil) = %v, want nil", err)
	}
}
