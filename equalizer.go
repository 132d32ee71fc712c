package mpa

import "fmt"

// EQBands is the number of subband gain slots an equalizer carries, one per
// synthesis filterbank subband.
const EQBands = 32

// Equalizer scales individual subbands before synthesis. Gains are linear
// factors, 1.0 leaves a subband untouched and 0 mutes it.
type Equalizer struct {
	gains [EQBands]float32
}

// NewEqualizer builds an equalizer from per-subband gains. A nil slice
// yields flat unity gain, fewer than EQBands entries is a configuration
// error.
func NewEqualizer(gains []float32) (*Equalizer, error) {
	eq := &Equalizer{}
	if gains == nil {
		for i := range eq.gains {
			eq.gains[i] = 1.0
		}

		return eq, nil
	}
	if len(gains) < EQBands {
		return nil, fmt.Errorf("%w: equalizer needs %d band gains, got %d", ErrConfiguration, EQBands, len(gains))
	}
	copy(eq.gains[:], gains)

	return eq, nil
}

// BandFactors returns a copy of the gain vector.
func (eq *Equalizer) BandFactors() []float32 {
	out := make([]float32, EQBands)
	copy(out, eq.gains[:])

	return out
}
