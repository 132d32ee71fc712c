package mpa

import (
	"fmt"
)

// MPEG version IDs, in header bit order.
const (
	mpeg2LSF  = 0
	mpeg1     = 1
	mpeg25LSF = 2
)

// Layers.
const (
	layerI = iota + 1
	layerII
	layerIII
)

// Channel modes.
const (
	modeStereo = iota
	modeJointStereo
	modeDualChannel
	modeSingleChannel
)

// Sample frequency indices, per version.
const (
	freq44100 = iota
	freq48000
	freq32000
)

// frequencies[version][index], in Hz. Index 3 is reserved and rejected during
// sync search.
var frequencies = [3][3]int{
	{22050, 24000, 16000},
	{44100, 48000, 32000},
	{11025, 12000, 8000},
}

// bitrates[version][layer-1][index], in bits per second. Index 0 is the free
// format, index 15 is forbidden. MPEG 2.5 shares the LSF tables.
var bitrates = [3][3][16]int{
	{
		{0, 32000, 48000, 56000, 64000, 80000, 96000, 112000,
			128000, 144000, 160000, 176000, 192000, 224000, 256000, 0},
		{0, 8000, 16000, 24000, 32000, 40000, 48000, 56000,
			64000, 80000, 96000, 112000, 128000, 144000, 160000, 0},
		{0, 8000, 16000, 24000, 32000, 40000, 48000, 56000,
			64000, 80000, 96000, 112000, 128000, 144000, 160000, 0},
	},
	{
		{0, 32000, 64000, 96000, 128000, 160000, 192000, 224000,
			256000, 288000, 320000, 352000, 384000, 416000, 448000, 0},
		{0, 32000, 48000, 56000, 64000, 80000, 96000, 112000,
			128000, 160000, 192000, 224000, 256000, 320000, 384000, 0},
		{0, 32000, 40000, 48000, 56000, 64000, 80000, 96000,
			112000, 128000, 160000, 192000, 224000, 256000, 320000, 0},
	},
	{
		{0, 32000, 48000, 56000, 64000, 80000, 96000, 112000,
			128000, 144000, 160000, 176000, 192000, 224000, 256000, 0},
		{0, 8000, 16000, 24000, 32000, 40000, 48000, 56000,
			64000, 80000, 96000, 112000, 128000, 144000, 160000, 0},
		{0, 8000, 16000, 24000, 32000, 40000, 48000, 56000,
			64000, 80000, 96000, 112000, 128000, 144000, 160000, 0},
	},
}

// Header holds the parsed fields of one frame header plus the derived frame
// geometry. A single Header is reused across frames; copyright and original
// stick once seen so metadata survives frames that clear them.
type Header struct {
	version         int
	layer           int
	protected       bool
	bitrateIndex    int
	sampleFrequency int
	padding         bool
	mode            int
	modeExtension   int
	copyright       bool
	original        bool

	frameSize int
	nSlots    int

	crc      CRC16
	checksum uint16

	strict      bool
	initialized bool
}

// checkHeaderWord rejects the reserved field combinations a frame header can
// never carry. The sync scanner uses it to scan past garbage words whose sync
// bits happen to match; the parser keeps it as a guard for directly
// synthesized words.
func checkHeaderWord(word uint32) error {
	if word>>17&3 == 0 {
		return fmt.Errorf("%w: reserved layer", ErrUnknownFormat)
	}
	if word>>19&3 == 1 {
		return fmt.Errorf("%w: reserved version ID", ErrUnknownFormat)
	}
	if word>>10&3 == 3 {
		return fmt.Errorf("%w: reserved sample rate index", ErrUnknownFormat)
	}

	return nil
}

// readHeader scans bs for the next frame header, buffers the frame payload
// and verifies that another sync word (or the end of the stream) follows it.
// Frames whose payload is not followed by sync are discarded and the scan
// resumes inside them. After the first verified frame the sync comparison
// locks to the stream's version, layer, sample rate and channel count.
func (h *Header) readHeader(bs *Bitstream) error {
	var word uint32

	for {
		var err error
		word, err = bs.syncHeader(h.strict)
		if err != nil {
			return err
		}

		if err = checkHeaderWord(word); err != nil {
			return err
		}

		h.parse(word)

		if h.bitrateIndex == 0 || h.bitrateIndex == 15 {
			// Free format is unsupported and index 15 is forbidden;
			// neither starts a real frame. Resume the scan one byte
			// into the bogus word.
			if err = bs.source.Unread(3); err != nil {
				return err
			}
			bs.syncSkips++

			continue
		}

		h.calculateFrameSize()

		if err = bs.readFrameData(h.frameSize); err != nil {
			return err
		}

		ok, err := bs.isSyncCurrentPosition(h.strict)
		if err != nil {
			return err
		}
		if ok {
			break
		}

		// Spurious sync word. Push the payload back and keep scanning.
		if err = bs.unreadFrame(); err != nil {
			return err
		}
		bs.syncSkips++
	}

	if !h.strict {
		bs.setSyncWord(word)
		h.strict = true
	}

	bs.parseFrame()

	if h.protected {
		h.checksum = uint16(bs.getBits(16))
		h.crc = *NewCRC16()
		h.crc.AddBits(word, 16)
	}

	h.initialized = true

	return nil
}

// parse unpacks the header fields from the 32-bit header word. The sync
// scanner has already rejected reserved version, layer and sample rate
// values.
func (h *Header) parse(word uint32) {
	h.version = int(word >> 19 & 1)
	if word>>20&1 == 0 {
		h.version = mpeg25LSF
	}

	h.layer = 4 - int(word>>17&3)
	h.protected = word>>16&1 == 0
	h.bitrateIndex = int(word >> 12 & 15)
	h.sampleFrequency = int(word >> 10 & 3)
	h.padding = word>>9&1 != 0
	h.mode = int(word >> 6 & 3)
	h.modeExtension = int(word >> 4 & 3)

	// Sticky: once a frame claims copyright or original, the stream does.
	if word>>3&1 != 0 {
		h.copyright = true
	}
	if word>>2&1 != 0 {
		h.original = true
	}
}

// calculateFrameSize derives the payload size in bytes (header excluded) and,
// for Layer III, the number of main data slots feeding the bit reservoir.
func (h *Header) calculateFrameSize() {
	br := bitrates[h.version][h.layer-1][h.bitrateIndex]
	sr := frequencies[h.version][h.sampleFrequency]

	if h.layer == layerI {
		h.frameSize = 12 * br / sr
		if h.padding {
			h.frameSize++
		}
		h.frameSize <<= 2
	} else {
		h.frameSize = 144 * br / sr
		if h.version == mpeg2LSF || h.version == mpeg25LSF {
			h.frameSize >>= 1
		}
		if h.padding {
			h.frameSize++
		}
	}
	h.frameSize -= 4

	h.nSlots = 0
	if h.layer == layerIII {
		sideInfo := 32
		if h.version == mpeg1 {
			if h.mode == modeSingleChannel {
				sideInfo = 17
			}
		} else {
			sideInfo = 17
			if h.mode == modeSingleChannel {
				sideInfo = 9
			}
		}

		h.nSlots = h.frameSize - sideInfo
		if h.protected {
			h.nSlots -= 2
		}
	}
}

// checksumOK reports whether the CRC accumulated over the protected header
// and side information bits matches the checksum carried by the frame.
func (h *Header) checksumOK() bool {
	return h.checksum == h.crc.Checksum()
}

// Version returns the MPEG version ID (mpeg1, mpeg2LSF or mpeg25LSF).
func (h *Header) Version() int {
	return h.version
}

// Layer returns the layer number, 1 through 3.
func (h *Header) Layer() int {
	return h.layer
}

// Mode returns the channel mode.
func (h *Header) Mode() int {
	return h.mode
}

// ModeExtension returns the joint stereo mode extension bits.
func (h *Header) ModeExtension() int {
	return h.modeExtension
}

// Channels returns 1 for single channel streams and 2 otherwise.
func (h *Header) Channels() int {
	if h.mode == modeSingleChannel {
		return 1
	}

	return 2
}

// SampleRate returns the sample rate in Hz.
func (h *Header) SampleRate() int {
	return frequencies[h.version][h.sampleFrequency]
}

// Bitrate returns the frame bitrate in bits per second.
func (h *Header) Bitrate() int {
	return bitrates[h.version][h.layer-1][h.bitrateIndex]
}

// Copyright reports whether any frame so far carried the copyright bit.
func (h *Header) Copyright() bool {
	return h.copyright
}

// Original reports whether any frame so far carried the original bit.
func (h *Header) Original() bool {
	return h.original
}

// Protected reports whether frames carry a CRC checksum.
func (h *Header) Protected() bool {
	return h.protected
}

// SamplesPerFrame returns the PCM sample count per channel one frame decodes
// to.
func (h *Header) SamplesPerFrame() int {
	switch h.layer {
	case layerI:
		return 384
	case layerII:
		return 1152
	default:
		if h.version == mpeg1 {
			return 1152
		}

		return 576
	}
}

// FrameDuration returns one frame's duration in milliseconds.
func (h *Header) FrameDuration() float32 {
	return float32(h.SamplesPerFrame()) * 1000 / float32(h.SampleRate())
}

// numberOfSubbands returns how many subbands the frame codes. Layer I always
// codes all 32; Layer II limits the count by bitrate and sample rate class.
func (h *Header) numberOfSubbands() int {
	if h.layer == layerI {
		return 32
	}
	if h.version != mpeg1 {
		return 30 // the LSF allocation table codes 30 subbands at all rates
	}

	chbr := h.bitrateIndex
	if h.mode != modeSingleChannel {
		if chbr == 4 {
			chbr = 1
		} else {
			chbr -= 4
		}
	}

	if chbr == 1 || chbr == 2 {
		if h.SampleRate() == 32000 {
			return 12
		}

		return 8
	}

	if h.SampleRate() == 48000 || (chbr >= 3 && chbr <= 5) {
		return 27
	}

	return 30
}

// intensityStereoBound returns the first subband carried in intensity stereo,
// clamped to the number of coded subbands. Without joint stereo coding every
// subband is discrete.
func (h *Header) intensityStereoBound() int {
	if h.mode != modeJointStereo {
		return h.numberOfSubbands()
	}

	bound := (h.modeExtension << 2) + 4
	if sb := h.numberOfSubbands(); bound > sb {
		bound = sb
	}

	return bound
}
