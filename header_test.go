package mpa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameOf builds a stream holding one frame: the four header bytes followed
// by payload zero bytes.
func frameOf(header []byte, payload int) []byte {
	return append(append([]byte{}, header...), make([]byte, payload)...)
}

func TestHeaderFrameGeometry(t *testing.T) {
	tests := []struct {
		name       string
		header     []byte
		frameSize  int
		nSlots     int
		layer      int
		sampleRate int
		bitrate    int
		channels   int
	}{
		{
			// 144*128000/44100 = 417, minus 4 header bytes
			name:       "mpeg1 layer3 mono 128k 44100",
			header:     []byte{0xFF, 0xFB, 0x90, 0xC0},
			frameSize:  413,
			nSlots:     413 - 17,
			layer:      layerIII,
			sampleRate: 44100,
			bitrate:    128000,
			channels:   1,
		},
		{
			name:       "mpeg1 layer3 stereo 128k 44100 padded",
			header:     []byte{0xFF, 0xFB, 0x92, 0x00},
			frameSize:  414,
			nSlots:     414 - 32,
			layer:      layerIII,
			sampleRate: 44100,
			bitrate:    128000,
			channels:   2,
		},
		{
			// 144*192000/48000 = 576, minus 4
			name:       "mpeg1 layer2 mono 192k 48000",
			header:     []byte{0xFF, 0xFD, 0xA4, 0xC0},
			frameSize:  572,
			layer:      layerII,
			sampleRate: 48000,
			bitrate:    192000,
			channels:   1,
		},
		{
			// (12*32000/44100)<<2 = 32, minus 4
			name:       "mpeg1 layer1 mono 32k 44100",
			header:     []byte{0xFF, 0xFF, 0x10, 0xC0},
			frameSize:  28,
			layer:      layerI,
			sampleRate: 44100,
			bitrate:    32000,
			channels:   1,
		},
		{
			// LSF: (144*64000/22050)>>1 = 208, minus 4
			name:       "mpeg2 layer3 mono 64k 22050",
			header:     []byte{0xFF, 0xF3, 0x80, 0xC0},
			frameSize:  204,
			nSlots:     204 - 9,
			layer:      layerIII,
			sampleRate: 22050,
			bitrate:    64000,
			channels:   1,
		},
		{
			// MPEG2.5: (144*32000/8000)>>1 = 288, minus 4
			name:       "mpeg2.5 layer3 mono 32k 8000",
			header:     []byte{0xFF, 0xE3, 0x48, 0xC0},
			frameSize:  284,
			nSlots:     284 - 9,
			layer:      layerIII,
			sampleRate: 8000,
			bitrate:    32000,
			channels:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := NewBitstream(bytes.NewReader(frameOf(tt.header, tt.frameSize)))

			var h Header
			require.NoError(t, h.readHeader(bs))

			assert.Equal(t, tt.frameSize, h.frameSize)
			assert.Equal(t, tt.layer, h.Layer())
			assert.Equal(t, tt.sampleRate, h.SampleRate())
			assert.Equal(t, tt.bitrate, h.Bitrate())
			assert.Equal(t, tt.channels, h.Channels())
			if tt.layer == layerIII {
				assert.Equal(t, tt.nSlots, h.nSlots)
			}
		})
	}
}

func TestHeaderWordReservedFields(t *testing.T) {
	// The sync bits of all four words match; the reserved fields make the
	// first three invalid as headers.
	assert.ErrorIs(t, checkHeaderWord(0xFFFD8CC0), ErrUnknownFormat) // sample rate index 3
	assert.ErrorIs(t, checkHeaderWord(0xFFED80C0), ErrUnknownFormat) // version ID 01
	assert.ErrorIs(t, checkHeaderWord(0xFFF980C0), ErrUnknownFormat) // layer 00

	assert.NoError(t, checkHeaderWord(0xFFFD80C0))
}

func TestHeaderScanSkipsReservedWords(t *testing.T) {
	// Garbage words with matching sync bits but reserved sample rate,
	// version and layer fields are scanned past, not delivered as headers.
	var stream []byte
	stream = append(stream, 0xFF, 0xFD, 0x8C, 0xC0)
	stream = append(stream, 0xFF, 0xED, 0x80, 0xC0)
	stream = append(stream, 0xFF, 0xF9, 0x80, 0xC0)
	stream = append(stream, makeLayer2MonoFrame()...)

	bs := NewBitstream(bytes.NewReader(stream))

	var h Header
	require.NoError(t, h.readHeader(bs))
	assert.Equal(t, layerII, h.Layer())
	assert.Equal(t, 44100, h.SampleRate())
	assert.Positive(t, bs.SyncSkips())
}

func TestHeaderFreeFormatSkipped(t *testing.T) {
	// A free format word (bitrate index 0) is not a decodable header; the
	// scan resumes inside it and locks onto the following frame.
	stream := append([]byte{0xFF, 0xFD, 0x00, 0xC0}, makeLayer2MonoFrame()...)

	bs := NewBitstream(bytes.NewReader(stream))

	var h Header
	require.NoError(t, h.readHeader(bs))
	assert.Equal(t, layerII, h.Layer())
	assert.Equal(t, 128000, h.Bitrate())
	assert.Positive(t, bs.SyncSkips())
}

func TestHeaderFreeFormatOnly(t *testing.T) {
	// A stream holding nothing but a free format candidate runs out
	// without ever producing a frame.
	bs := NewBitstream(bytes.NewReader(frameOf([]byte{0xFF, 0xFD, 0x00, 0xC0}, 64)))

	var h Header
	assert.ErrorIs(t, h.readHeader(bs), ErrEndOfStream)
	assert.Positive(t, bs.SyncSkips())
}

func TestHeaderForbiddenBitrateResync(t *testing.T) {
	// Bitrate index 15 is not a real header; the scan resumes inside the
	// bogus word and runs off the end of the stream.
	bs := NewBitstream(bytes.NewReader(frameOf([]byte{0xFF, 0xFD, 0xF0, 0xC0}, 16)))

	var h Header
	assert.ErrorIs(t, h.readHeader(bs), ErrEndOfStream)
	assert.Positive(t, bs.SyncSkips())
}

func TestHeaderSamplesPerFrame(t *testing.T) {
	h := &Header{version: mpeg1, layer: layerI}
	assert.Equal(t, 384, h.SamplesPerFrame())

	h.layer = layerII
	assert.Equal(t, 1152, h.SamplesPerFrame())

	h.layer = layerIII
	assert.Equal(t, 1152, h.SamplesPerFrame())

	h.version = mpeg2LSF
	assert.Equal(t, 576, h.SamplesPerFrame())
}

func TestHeaderStickyBits(t *testing.T) {
	var h Header
	h.parse(0xFFFD80C8) // copyright set
	assert.True(t, h.Copyright())

	h.parse(0xFFFD80C0) // cleared in the wire bits, sticky in the header
	assert.True(t, h.Copyright())
	assert.False(t, h.Original())
}
