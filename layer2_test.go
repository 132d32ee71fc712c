package mpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayer2AllocationInfoHighRate(t *testing.T) {
	// MPEG-1 mono 128 kbps at 44.1 kHz selects table 3-B.2b.
	var h Header
	h.parse(0xFFFD80C0)

	nbal, row := layer2AllocationInfo(&h, 0)
	assert.Equal(t, 4, nbal)
	assert.Equal(t, quantLutStep4[3], row)

	nbal, row = layer2AllocationInfo(&h, 12)
	assert.Equal(t, 3, nbal)
	assert.Equal(t, quantLutStep4[1], row)

	nbal, row = layer2AllocationInfo(&h, 25)
	assert.Equal(t, 2, nbal)
	assert.Equal(t, quantLutStep4[0], row)
}

func TestLayer2AllocationInfoLowRate(t *testing.T) {
	// MPEG-1 mono 48 kbps at 44.1 kHz selects table 3-B.2c.
	var h Header
	h.parse(0xFFFD20C0)

	nbal, row := layer2AllocationInfo(&h, 0)
	assert.Equal(t, 4, nbal)
	assert.Equal(t, quantLutStep4[4], row)

	nbal, row = layer2AllocationInfo(&h, 4)
	assert.Equal(t, 3, nbal)
	assert.Equal(t, quantLutStep4[4], row)
}

func TestLayer2AllocationInfoLSF(t *testing.T) {
	// MPEG-2 shares one allocation table across all rates.
	var h Header
	h.parse(0xFFF58000)

	nbal, row := layer2AllocationInfo(&h, 0)
	assert.Equal(t, 4, nbal)
	assert.Equal(t, quantLutStep4[5], row)

	nbal, row = layer2AllocationInfo(&h, 15)
	assert.Equal(t, 2, nbal)
	assert.Equal(t, quantLutStep4[4], row)
}

func TestDegroupTable(t *testing.T) {
	table := degroupTable(3)
	require.Len(t, table, 3*3*3*3)

	// Code 0 groups three smallest codes, each reconstructing to -2/3.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, -2.0/3.0, table[i], 1e-6)
	}

	// Code 13 = (1,1,1) in base 3, the zero fraction.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, table[13*3+i], 1e-6)
	}

	// Code 26 = (2,2,2), the largest fraction 2/3.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 2.0/3.0, table[26*3+i], 1e-6)
	}
}

func TestLayer2SubbandCount(t *testing.T) {
	var h Header

	h.parse(0xFFFD80C0) // mono 128k 44.1
	assert.Equal(t, 30, h.numberOfSubbands())

	h.parse(0xFFFD84C0) // mono 128k 48k
	assert.Equal(t, 27, h.numberOfSubbands())

	h.parse(0xFFFD20C0) // mono 48k 44.1
	assert.Equal(t, 8, h.numberOfSubbands())

	h.parse(0xFFF58000) // MPEG-2, always 30
	assert.Equal(t, 30, h.numberOfSubbands())
}
