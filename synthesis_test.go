package mpa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subbandBlock fills a 32-sample subband block with a deterministic waveform
// in the -1..1 range.
func subbandBlock(step int) []float32 {
	block := make([]float32, 32)
	for i := range block {
		block[i] = float32(math.Sin(float64(step*32+i) * 0.1))
	}

	return block
}

func TestSynthesisSilence(t *testing.T) {
	f := NewSynthesisFilter(0)
	out := NewSampleBuffer(1)

	for step := 0; step < 36; step++ {
		f.InputSamples(make([]float32, 32))
		f.CalculatePCM(out)
	}

	samples := out.Samples()
	require.Len(t, samples, 36*32)
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0", i, s)
		}
	}
}

func TestSynthesisDeterministic(t *testing.T) {
	run := func() []int16 {
		f := NewSynthesisFilter(0)
		out := NewSampleBuffer(1)
		for step := 0; step < 36; step++ {
			f.InputSamples(subbandBlock(step))
			f.CalculatePCM(out)
		}

		return append([]int16{}, out.Samples()...)
	}

	assert.Equal(t, run(), run())
}

func TestSynthesisProducesSignal(t *testing.T) {
	f := NewSynthesisFilter(0)
	out := NewSampleBuffer(1)

	for step := 0; step < 36; step++ {
		f.InputSamples(subbandBlock(step))
		f.CalculatePCM(out)
	}

	var peak int16
	for _, s := range out.Samples() {
		if s > peak {
			peak = s
		}
	}
	assert.Positive(t, peak)
}

func TestSynthesisEQMutes(t *testing.T) {
	f := NewSynthesisFilter(0)
	f.SetEQ(make([]float32, 32))
	out := NewSampleBuffer(1)

	for step := 0; step < 8; step++ {
		f.InputSamples(subbandBlock(step))
		f.CalculatePCM(out)
	}

	for i, s := range out.Samples() {
		if s != 0 {
			t.Fatalf("sample %d = %d, want muted output", i, s)
		}
	}
}

func TestSynthesisReset(t *testing.T) {
	f := NewSynthesisFilter(0)
	out := NewSampleBuffer(1)

	f.InputSamples(subbandBlock(0))
	f.CalculatePCM(out)
	f.Reset()

	out.Clear()
	f.InputSamples(make([]float32, 32))
	f.CalculatePCM(out)

	for i, s := range out.Samples() {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0 after reset", i, s)
		}
	}
}

func BenchmarkSynthesis(b *testing.B) {
	f := NewSynthesisFilter(0)
	out := NewSampleBuffer(1)
	block := subbandBlock(0)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%36 == 0 {
			out.Clear()
		}
		f.InputSamples(block)
		f.CalculatePCM(out)
	}
}
