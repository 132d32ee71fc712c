package mpa

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeLayer2MonoFrame returns one valid MPEG-1 Layer II frame: mono, 44100 Hz,
// 128 kbps, no CRC. The all-zero payload allocates no subbands, so the frame
// decodes to 1152 samples of silence.
func makeLayer2MonoFrame() []byte {
	return append([]byte{0xFF, 0xFD, 0x80, 0xC0}, make([]byte, 413)...)
}

// makeLayer1MonoFrame returns one MPEG-1 Layer I frame: mono, 44100 Hz,
// 32 kbps, decoding to 384 samples of silence.
func makeLayer1MonoFrame() []byte {
	return append([]byte{0xFF, 0xFF, 0x10, 0xC0}, make([]byte, 28)...)
}

// makeProtectedLayer2Frame returns the CRC-protected variant of the silent
// Layer II frame with the given checksum word. The checksum matching the
// frame's header and allocation bits is 0x1D70.
func makeProtectedLayer2Frame(checksum uint16) []byte {
	frame := append([]byte{0xFF, 0xFC, 0x80, 0xC0}, byte(checksum>>8), byte(checksum))

	return append(frame, make([]byte, 411)...)
}

func TestDecodeLayer2Silence(t *testing.T) {
	var stream []byte
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	for frame := 0; frame < 2; frame++ {
		samples, err := dec.DecodeFrame()
		require.NoError(t, err)
		require.Len(t, samples, 1152)

		for i, s := range samples {
			if s != 0 {
				t.Fatalf("frame %d sample %d = %d, want silence", frame, i, s)
			}
		}
	}

	assert.Equal(t, 1, dec.Channels())
	assert.Equal(t, 44100, dec.SampleRate())
	assert.Equal(t, 2, dec.Layer())
	assert.Equal(t, 128000, dec.Bitrate())
	assert.Equal(t, 0, dec.CRCErrors())

	_, err := dec.DecodeFrame()
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestDecodeLayer1Silence(t *testing.T) {
	dec := NewDecoder(bytes.NewReader(makeLayer1MonoFrame()))

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 384)
	assert.Equal(t, 1, dec.Layer())
	assert.Equal(t, 32000, dec.Bitrate())
}

// makeLayer3MonoFrame returns one MPEG-1 Layer III frame: mono, 44100 Hz,
// 128 kbps. All-zero side information codes an empty spectrum, so the frame
// decodes to 1152 samples of silence.
func makeLayer3MonoFrame() []byte {
	return append([]byte{0xFF, 0xFB, 0x90, 0xC0}, make([]byte, 413)...)
}

func TestDecodeLayer3Silence(t *testing.T) {
	var stream []byte
	stream = append(stream, makeLayer3MonoFrame()...)
	stream = append(stream, makeLayer3MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	for frame := 0; frame < 2; frame++ {
		samples, err := dec.DecodeFrame()
		require.NoError(t, err)
		require.Len(t, samples, 1152)

		for i, s := range samples {
			if s != 0 {
				t.Fatalf("frame %d sample %d = %d, want silence", frame, i, s)
			}
		}
	}

	assert.Equal(t, 3, dec.Layer())
	assert.Equal(t, 44100, dec.SampleRate())
}

func TestDecodeTruncatedFrame(t *testing.T) {
	var stream []byte
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()[:200]...)

	dec := NewDecoder(bytes.NewReader(stream))

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)

	_, err = dec.DecodeFrame()
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestDecodeID3Prefixed(t *testing.T) {
	tag := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 70}, bytes.Repeat([]byte{0x11}, 70)...)

	var stream []byte
	stream = append(stream, tag...)
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)

	// The tag is consumed whole, not scanned through.
	assert.Equal(t, 0, dec.SyncSkips())
}

func TestDecodeJunkPrefixed(t *testing.T) {
	// A run of 0xFF bytes forms candidate words whose sync bits match but
	// whose sample rate field is reserved; the decoder scans past them.
	var stream []byte
	stream = append(stream, bytes.Repeat([]byte{0xFF}, 16)...)
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)
	assert.Positive(t, dec.SyncSkips())
}

func TestDecodeCRCValid(t *testing.T) {
	var stream []byte
	stream = append(stream, makeProtectedLayer2Frame(0x1D70)...)
	stream = append(stream, makeProtectedLayer2Frame(0x1D70)...)

	dec := NewDecoder(bytes.NewReader(stream))

	for frame := 0; frame < 2; frame++ {
		samples, err := dec.DecodeFrame()
		require.NoError(t, err)
		assert.Len(t, samples, 1152)
	}

	assert.Equal(t, 0, dec.CRCErrors())
}

func TestDecodeCRCMismatchSkipsFrame(t *testing.T) {
	var stream []byte
	stream = append(stream, makeProtectedLayer2Frame(0xBEEF)...)
	stream = append(stream, makeProtectedLayer2Frame(0x1D70)...)

	dec := NewDecoder(bytes.NewReader(stream))

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)
	assert.Equal(t, 1, dec.CRCErrors())
}

func TestDecoderReader(t *testing.T) {
	var stream []byte
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	pcm, err := io.ReadAll(dec.Reader())
	require.NoError(t, err)
	assert.Len(t, pcm, 2*1152*2)
	assert.Equal(t, make([]byte, 2*1152*2), pcm)
}

func TestDecoderMetadataBeforeFirstFrame(t *testing.T) {
	dec := NewDecoder(bytes.NewReader(nil))

	assert.Equal(t, 0, dec.SampleRate())
	assert.Equal(t, 0, dec.Channels())
	assert.Equal(t, 0, dec.Layer())
	assert.Equal(t, 0, dec.Bitrate())
}

func TestDecoderClose(t *testing.T) {
	dec := NewDecoder(bytes.NewReader(makeLayer2MonoFrame()))

	require.NoError(t, dec.Close())
	require.NoError(t, dec.Close())

	_, err := dec.DecodeFrame()
	assert.ErrorIs(t, err, ErrStream)
}

func TestDecoderSetEqualizer(t *testing.T) {
	var stream []byte
	stream = append(stream, makeLayer2MonoFrame()...)
	stream = append(stream, makeLayer2MonoFrame()...)

	dec := NewDecoder(bytes.NewReader(stream))

	eq, err := NewEqualizer(make([]float32, EQBands))
	require.NoError(t, err)
	dec.SetEqualizer(eq)

	samples, err := dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)

	// Applying after initialization reconfigures the live filters.
	dec.SetEqualizer(nil)
	samples, err = dec.DecodeFrame()
	require.NoError(t, err)
	assert.Len(t, samples, 1152)
}

// loopReader replays the same frame forever.
type loopReader struct {
	frame []byte
	pos   int
}

func (r *loopReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.frame[r.pos:])
		n += c
		r.pos = (r.pos + c) % len(r.frame)
	}

	return n, nil
}

func BenchmarkDecodeFrame(b *testing.B) {
	dec := NewDecoder(&loopReader{frame: makeLayer2MonoFrame()})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := dec.DecodeFrame(); err != nil {
			b.Fatal(err)
		}
	}
}
