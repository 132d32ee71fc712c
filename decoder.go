package mpa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// frameDecoder decodes the payload of one buffered frame into the output
// buffer. The header has already been parsed when decodeFrame runs.
type frameDecoder interface {
	decodeFrame() error
}

// Decoder decodes an MPEG-1/2/2.5 audio stream (Layers I, II and III) one
// frame at a time. It is not safe for concurrent use, create one Decoder per
// stream.
type Decoder struct {
	stream *Bitstream
	header Header
	buffer *SampleBuffer

	filter1 *SynthesisFilter
	filter2 *SynthesisFilter
	eq      *Equalizer

	l1 *layer1Decoder
	l2 *layer2Decoder
	l3 *layer3Decoder

	initialized bool
	closed      bool
	crcErrors   int
}

// NewDecoder creates a decoder reading frames from r. Stream parameters
// (sample rate, channel count) are known after the first decoded frame.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		stream: NewBitstream(r),
	}
}

// SetEqualizer applies per-subband gains to all following frames. A nil
// equalizer restores flat gain.
func (d *Decoder) SetEqualizer(eq *Equalizer) {
	d.eq = eq
	if !d.initialized {
		return
	}
	d.applyEqualizer()
}

func (d *Decoder) applyEqualizer() {
	var gains []float32
	if d.eq != nil {
		gains = d.eq.BandFactors()
	}
	d.filter1.SetEQ(gains)
	if d.filter2 != nil {
		d.filter2.SetEQ(gains)
	}
}

func (d *Decoder) initialize() {
	channels := d.header.Channels()
	d.buffer = NewSampleBuffer(channels)
	d.filter1 = NewSynthesisFilter(0)
	if channels == 2 {
		d.filter2 = NewSynthesisFilter(1)
	}
	d.applyEqualizer()
	d.initialized = true
}

// frameDecoder returns the layer decoder for the current header, creating it
// on first use. The Layer III decoder persists across frames because its bit
// reservoir carries main data between them.
func (d *Decoder) frameDecoder() (frameDecoder, error) {
	switch d.header.Layer() {
	case layerI:
		if d.l1 == nil {
			d.l1 = newLayer1Decoder(d.stream, &d.header, d.filter1, d.filter2, d.buffer)
		}

		return d.l1, nil
	case layerII:
		if d.l2 == nil {
			d.l2 = newLayer2Decoder(d.stream, &d.header, d.filter1, d.filter2, d.buffer)
		}

		return d.l2, nil
	case layerIII:
		if d.l3 == nil {
			d.l3 = newLayer3Decoder(d.stream, &d.header, d.filter1, d.filter2, d.buffer)
		}

		return d.l3, nil
	}

	return nil, fmt.Errorf("%w: unsupported layer %d", ErrUnknownFormat, d.header.Layer())
}

// DecodeFrame decodes the next frame and returns its interleaved 16-bit PCM
// samples. The returned slice is reused by the following call. Frames with a
// CRC mismatch are counted and skipped. ErrEndOfStream reports normal
// termination of the stream.
func (d *Decoder) DecodeFrame() ([]int16, error) {
	if d.closed {
		return nil, fmt.Errorf("%w: decoder is closed", ErrStream)
	}

	for {
		if err := d.header.readHeader(d.stream); err != nil {
			return nil, err
		}
		if !d.initialized {
			d.initialize()
		}

		fd, err := d.frameDecoder()
		if err != nil {
			return nil, err
		}

		d.buffer.Clear()
		err = fd.decodeFrame()
		d.stream.closeFrame()
		if err != nil {
			if errors.Is(err, errCRCMismatch) {
				d.crcErrors++
				continue
			}

			return nil, err
		}

		samples := d.buffer.Samples()
		if len(samples) == 0 {
			// Layer III may withhold output while the bit reservoir
			// fills at the start of a stream.
			continue
		}

		return samples, nil
	}
}

// Reader returns an io.Reader that yields the decoded stream as interleaved
// signed 16-bit little-endian PCM.
func (d *Decoder) Reader() io.Reader {
	return &pcmReader{d: d}
}

type pcmReader struct {
	d   *Decoder
	buf []byte
}

func (r *pcmReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		samples, err := r.d.DecodeFrame()
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				return 0, io.EOF
			}

			return 0, err
		}

		if cap(r.buf) < 2*len(samples) {
			r.buf = make([]byte, 0, 2*len(samples))
		}
		r.buf = r.buf[:0]
		for _, s := range samples {
			r.buf = binary.LittleEndian.AppendUint16(r.buf, uint16(s))
		}
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]

	return n, nil
}

// SampleRate reports the stream sample rate in Hz, 0 before the first frame.
func (d *Decoder) SampleRate() int {
	if !d.initialized {
		return 0
	}

	return d.header.SampleRate()
}

// Channels reports the channel count, 0 before the first frame.
func (d *Decoder) Channels() int {
	if !d.initialized {
		return 0
	}

	return d.header.Channels()
}

// Layer reports the layer of the last decoded frame, 0 before the first.
func (d *Decoder) Layer() int {
	if !d.initialized {
		return 0
	}

	return d.header.Layer()
}

// Bitrate reports the bitrate of the last decoded frame in bits per second.
func (d *Decoder) Bitrate() int {
	if !d.initialized {
		return 0
	}

	return d.header.Bitrate()
}

// CRCErrors reports how many frames were skipped due to CRC mismatches.
func (d *Decoder) CRCErrors() int {
	return d.crcErrors
}

// SyncSkips reports how many bytes the synchronizer discarded while hunting
// for frame sync.
func (d *Decoder) SyncSkips() int {
	return d.stream.SyncSkips()
}

// Close terminates the decoder. If the underlying reader is an io.Closer it
// is closed as well.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if c, ok := d.stream.Source().Reader().(io.Closer); ok {
		return c.Close()
	}

	return nil
}
