package mpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitReserveReadBits(t *testing.T) {
	var br bitReserve
	br.putByte(0xA5)
	br.putByte(0x3C)

	assert.Equal(t, 0xA, br.readBits(4))
	assert.Equal(t, 0x53, br.readBits(8))
	assert.Equal(t, 0xC, br.readBits(4))
	assert.Equal(t, 16, br.bitsRead())
}

func TestBitReserveReadBit(t *testing.T) {
	var br bitReserve
	br.putByte(0xB0) // 1011....

	assert.Equal(t, 1, br.readBit())
	assert.Equal(t, 0, br.readBit())
	assert.Equal(t, 1, br.readBit())
	assert.Equal(t, 1, br.readBit())
}

func TestBitReserveRewindIdempotence(t *testing.T) {
	data := []int{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x23, 0x45, 0x67}

	for _, n := range []int{1, 3, 7, 8, 13, 24, 32} {
		var br bitReserve
		for _, b := range data {
			br.putByte(b)
		}

		first := br.readBits(n)
		br.rewindBits(n)
		second := br.readBits(n)

		require.Equal(t, first, second, "n=%d", n)
	}
}

func TestBitReserveRewindBytes(t *testing.T) {
	var br bitReserve
	br.putByte(0x12)
	br.putByte(0x34)
	br.putByte(0x56)

	first := br.readBits(24)
	br.rewindBytes(3)

	assert.Equal(t, first, br.readBits(24))
	assert.Equal(t, 24, br.bitsRead())
}
