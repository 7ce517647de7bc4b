package piano

import (
	"errors"
	"math"

	qwertypiano "github.com/ashish358/QwertyPiano"
	"github.com/viterin/vek/vek32"
)

// VolumeAnalyzer measures the output level of rendered audio blocks, in
// decibels relative to full scale (0 dB = signal level of +-1). Level is the
// mean-power average and Peak the absolute peak, both smoothed with an
// exponentially decaying average: time constant Attack (seconds) when the
// block is louder than the current value, Release when quieter. Min and Max
// are hard limits in decibels to prevent negative infinities on silence.
type VolumeAnalyzer struct {
	Level   float64
	Peak    float64
	Attack  float64
	Release float64
	Min     float64
	Max     float64

	flat []float32
	tmp  []float32
}

var errNaN = errors.New("NaN detected in master output")

// Update analyzes one audio block and updates Level and Peak.
func (v *VolumeAnalyzer) Update(buffer qwertypiano.AudioBuffer) error {
	n := len(buffer)
	if n == 0 {
		return nil
	}
	if cap(v.flat) < 2*n {
		v.flat = make([]float32, 2*n)
		v.tmp = make([]float32, 2*n)
	}
	v.flat = v.flat[:2*n]
	v.tmp = v.tmp[:2*n]
	for i, s := range buffer {
		v.flat[2*i] = s[0]
		v.flat[2*i+1] = s[1]
	}
	peak := float64(vek32.Max(vek32.Abs_Into(v.tmp, v.flat)))
	power := float64(vek32.Mean(vek32.Mul_Into(v.tmp, v.flat, v.flat)))
	if math.IsNaN(peak) || math.IsNaN(power) {
		return errNaN
	}
	// one smoothing step per block, so the alphas depend on the block length
	blockSecs := float64(n) / qwertypiano.SampleRate
	v.Level = v.smooth(v.Level, v.clampDB(10*math.Log10(power)), blockSecs)
	v.Peak = v.smooth(v.Peak, v.clampDB(20*math.Log10(peak)), blockSecs)
	return nil
}

func (v *VolumeAnalyzer) smooth(cur, target, blockSecs float64) float64 {
	tc := v.Attack
	if target < cur {
		tc = v.Release
	}
	alpha := 1 - math.Exp(-blockSecs/tc)
	return cur + (target-cur)*alpha
}

func (v *VolumeAnalyzer) clampDB(dB float64) float64 {
	if dB < v.Min || math.IsNaN(dB) {
		return v.Min
	}
	if dB > v.Max {
		return v.Max
	}
	return dB
}
