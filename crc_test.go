package mpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16Check(t *testing.T) {
	// CRC-16/CMS check value: poly 0x8005, init 0xFFFF, over "123456789".
	crc := NewCRC16()
	for _, b := range []byte("123456789") {
		crc.AddBits(uint32(b), 8)
	}

	assert.Equal(t, uint16(0xAEE7), crc.Checksum())
}

func TestCRC16ChecksumResets(t *testing.T) {
	crc := NewCRC16()

	crc.AddBits(0x80C0, 16)
	first := crc.Checksum()

	crc.AddBits(0x80C0, 16)
	assert.Equal(t, first, crc.Checksum())
}

func TestCRC16BitGranular(t *testing.T) {
	// Feeding a value bit by bit must match feeding it at once.
	whole := NewCRC16()
	whole.AddBits(0x5A3, 11)

	split := NewCRC16()
	for i := 10; i >= 0; i-- {
		split.AddBits(uint32(0x5A3)>>i&1, 1)
	}

	assert.Equal(t, whole.Checksum(), split.Checksum())
}
