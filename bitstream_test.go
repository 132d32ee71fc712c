package mpa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedBitstream(t *testing.T, data []byte) *Bitstream {
	t.Helper()

	bs := NewBitstream(bytes.NewReader(data))
	require.NoError(t, bs.readFrameData(len(data)))
	bs.parseFrame()

	return bs
}

func TestGetBitsRoundTrip(t *testing.T) {
	data := []byte{
		0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x23, 0x45, 0x67,
		0x89, 0xAB, 0xCD, 0xEF, 0xFE, 0xDC, 0xBA, 0x98,
	}
	bs := bufferedBitstream(t, data)

	// Read the buffer back through varying span widths and reassemble.
	widths := []int{3, 11, 1, 32, 7, 16, 25, 5, 13, 2, 9, 4}
	total := len(data) * 8

	var out []byte
	var acc uint64
	accBits := 0
	read := 0
	for i := 0; read < total; i++ {
		n := widths[i%len(widths)]
		if n > total-read {
			n = total - read
		}

		acc = acc<<n | uint64(bs.getBits(n))
		accBits += n
		read += n
		for accBits >= 8 {
			out = append(out, byte(acc>>(accBits-8)))
			accBits -= 8
		}
	}

	assert.Equal(t, data, out)
}

func TestGetBitsWordStraddle(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	bs := bufferedBitstream(t, data)

	// A span across the 32-bit word boundary must equal the direct
	// shift/mask over the two words as a 64-bit value.
	w := uint64(0x12345678)<<32 | uint64(0x9ABCDEF0)

	assert.Equal(t, uint32(w>>44)&bitmask[20], bs.getBits(20))
	assert.Equal(t, uint32(w>>20)&bitmask[24], bs.getBits(24)) // straddles
	assert.Equal(t, uint32(w)&bitmask[20], bs.getBits(20))
}

func TestGetBitsFullWordUnaligned(t *testing.T) {
	data := []byte{0xFF, 0x00, 0xAA, 0x55, 0x0F, 0xF0, 0x3C, 0xC3}
	bs := bufferedBitstream(t, data)

	w := uint64(0xFF00AA55)<<32 | uint64(0x0FF03CC3)

	assert.Equal(t, uint32(w>>63&1), bs.getBits(1))
	assert.Equal(t, uint32(w>>31), bs.getBits(32)) // full width, unaligned
}

func TestSyncHeaderSkipsGarbage(t *testing.T) {
	frame := makeLayer2MonoFrame()
	stream := append([]byte{0x00, 0x12, 0xFF, 0x34, 0x56}, frame...)

	bs := NewBitstream(bytes.NewReader(stream))
	var h Header
	require.NoError(t, h.readHeader(bs))

	assert.Equal(t, layerII, h.Layer())
	assert.Positive(t, bs.SyncSkips())
}

func TestSkipID3(t *testing.T) {
	content := bytes.Repeat([]byte{0x11}, 70)
	tag := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 70}, content...)
	stream := append(tag, makeLayer2MonoFrame()...)

	bs := NewBitstream(bytes.NewReader(stream))
	var h Header
	require.NoError(t, h.readHeader(bs))

	assert.Equal(t, layerII, h.Layer())
	assert.Equal(t, 44100, h.SampleRate())
	assert.Zero(t, bs.SyncSkips())
}
