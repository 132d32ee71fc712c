package mpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEqualizerFlat(t *testing.T) {
	eq, err := NewEqualizer(nil)
	require.NoError(t, err)

	factors := eq.BandFactors()
	require.Len(t, factors, EQBands)
	for _, f := range factors {
		assert.Equal(t, float32(1), f)
	}
}

func TestNewEqualizerShortGains(t *testing.T) {
	_, err := NewEqualizer(make([]float32, 16))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestEqualizerBandFactorsCopy(t *testing.T) {
	gains := make([]float32, EQBands)
	for i := range gains {
		gains[i] = float32(i)
	}

	eq, err := NewEqualizer(gains)
	require.NoError(t, err)

	factors := eq.BandFactors()
	factors[0] = 99
	assert.Equal(t, float32(0), eq.BandFactors()[0])
}
