package mpa

import (
	"io"
)

const (
	// maxFrameSize is the maximum compressed frame payload in bytes:
	// MPEG 2.5, Layer II, 8 kHz at 160 kbps, padded.
	maxFrameSize = 1732

	// syncPattern matches the 11 set bits that start every frame header.
	// The two version bits below it are left free so that MPEG 1, 2 and
	// 2.5 headers all match in loose mode.
	syncPattern = 0xFFE00000

	// strictSyncMask pins sync, version and sample rate once the first
	// verified frame has locked the stream parameters.
	strictSyncMask = 0xFFF80C00
)

var bitmask = [33]uint32{
	0x00000000,
	0x00000001, 0x00000003, 0x00000007, 0x0000000F,
	0x0000001F, 0x0000003F, 0x0000007F, 0x000000FF,
	0x000001FF, 0x000003FF, 0x000007FF, 0x00000FFF,
	0x00001FFF, 0x00003FFF, 0x00007FFF, 0x0000FFFF,
	0x0001FFFF, 0x0003FFFF, 0x0007FFFF, 0x000FFFFF,
	0x001FFFFF, 0x003FFFFF, 0x007FFFFF, 0x00FFFFFF,
	0x01FFFFFF, 0x03FFFFFF, 0x07FFFFFF, 0x0FFFFFFF,
	0x1FFFFFFF, 0x3FFFFFFF, 0x7FFFFFFF, 0xFFFFFFFF,
}

// Bitstream locates frame sync words in a byte stream, buffers one
// compressed frame at a time and serves bit-level extraction over it. ID3v2
// tags interleaved before audio data are skipped during sync search.
type Bitstream struct {
	source *SourceReader

	frameBytes [maxFrameSize + 4]byte
	frameWords [maxFrameSize/4 + 2]uint32
	frameSize  int

	wordPtr int
	bitIdx  int

	syncWord     uint32
	singleChMode bool

	syncSkips int
}

// NewBitstream creates a bitstream reading from r through a pushback source.
func NewBitstream(r io.Reader) *Bitstream {
	return &Bitstream{source: NewSourceReader(r)}
}

// Source returns the underlying pushback source.
func (bs *Bitstream) Source() *SourceReader {
	return bs.source
}

// SyncSkips returns the number of bytes discarded while scanning for frame
// sync, including frames dropped by the speculative re-sync verification.
func (bs *Bitstream) SyncSkips() int {
	return bs.syncSkips
}

// syncHeader scans the source for the next 32-bit word that looks like a
// frame header. In strict mode the locked sync word must match; in loose
// mode any plausible header is accepted and ID3v2 tags are skipped first.
func (bs *Bitstream) syncHeader(strict bool) (uint32, error) {
	if !strict {
		if err := bs.skipID3(); err != nil {
			return 0, err
		}
	}

	var buf [4]byte
	n, err := bs.source.ReadFull(buf[:3])
	if err != nil {
		return 0, err
	}
	if n < 3 {
		return 0, ErrEndOfStream
	}

	header := uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
	for first := true; ; first = false {
		header <<= 8

		n, err = bs.source.ReadFull(buf[3:4])
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, ErrEndOfStream
		}

		header |= uint32(buf[3])
		if bs.isSyncMark(header, strict) {
			return header, nil
		}

		if !first {
			bs.syncSkips++
		}
	}
}

// isSyncMark reports whether word looks like a frame header. Words carrying
// reserved layer, version or sample rate values are rejected even when the
// sync bits match, so the scan moves past garbage instead of delivering it
// to the parser.
func (bs *Bitstream) isSyncMark(word uint32, strict bool) bool {
	var sync bool
	if strict {
		sync = word&strictSyncMask == bs.syncWord&strictSyncMask &&
			(word&0xC0 == 0xC0) == bs.singleChMode
	} else {
		sync = word&syncPattern == syncPattern
	}

	if sync {
		sync = checkHeaderWord(word) == nil
	}

	return sync
}

// setSyncWord locks the sync word for strict mode comparisons.
func (bs *Bitstream) setSyncWord(word uint32) {
	bs.syncWord = word & 0xFFF80CC0
	bs.singleChMode = word&0xC0 == 0xC0
}

// skipID3 consumes an ID3v2 tag if one starts at the current position. The
// 28-bit tag size is stored as four 7-bit big-endian groups (a synch-safe
// integer, so no frame-sync byte sequence can occur inside it).
func (bs *Bitstream) skipID3() error {
	var tag [4]byte
	n, err := bs.source.ReadFull(tag[:])
	if err != nil {
		return err
	}
	if n < 4 {
		return bs.source.Unread(n)
	}

	if tag[0] != 'I' || tag[1] != 'D' || tag[2] != '3' {
		return bs.source.Unread(4)
	}

	var sub [6]byte
	n, err = bs.source.ReadFull(sub[:])
	if err != nil {
		return err
	}
	if n < 6 {
		return ErrEndOfStream
	}

	size := int(sub[2]&0x7F)<<21 | int(sub[3]&0x7F)<<14 | int(sub[4]&0x7F)<<7 | int(sub[5]&0x7F)

	var skip [512]byte
	for size > 0 {
		chunk := size
		if chunk > len(skip) {
			chunk = len(skip)
		}

		n, err = bs.source.ReadFull(skip[:chunk])
		if err != nil {
			return err
		}
		if n < chunk {
			return ErrEndOfStream
		}

		size -= chunk
	}

	return nil
}

// readFrameData buffers the next size bytes of compressed frame data. A
// short read means the stream ended mid-frame.
func (bs *Bitstream) readFrameData(size int) error {
	n, err := bs.source.ReadFull(bs.frameBytes[:size])
	if err != nil {
		return err
	}

	bs.frameSize = n
	if n < size {
		return ErrEndOfStream
	}

	return nil
}

// isSyncCurrentPosition peeks the next four bytes and reports whether they
// look like another frame header. Fewer than four bytes remaining counts as
// a match, so the last frame of a stream is accepted.
func (bs *Bitstream) isSyncCurrentPosition(strict bool) (bool, error) {
	var buf [4]byte
	n, err := bs.source.ReadFull(buf[:])
	if err != nil {
		return false, err
	}
	if err := bs.source.Unread(n); err != nil {
		return false, err
	}
	if n < 4 {
		return true, nil
	}

	word := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])

	return bs.isSyncMark(word, strict), nil
}

// unreadFrame pushes the buffered frame payload back into the source so the
// sync scan can resume past the rejected header.
func (bs *Bitstream) unreadFrame() error {
	return bs.source.Unread(bs.frameSize)
}

// parseFrame packs the buffered frame bytes into the 32-bit word view and
// resets the bit cursor.
func (bs *Bitstream) parseFrame() {
	words := (bs.frameSize + 3) >> 2
	for i := bs.frameSize; i < words*4; i++ {
		bs.frameBytes[i] = 0
	}

	b := 0
	for w := 0; w < words; w++ {
		bs.frameWords[w] = uint32(bs.frameBytes[b])<<24 | uint32(bs.frameBytes[b+1])<<16 |
			uint32(bs.frameBytes[b+2])<<8 | uint32(bs.frameBytes[b+3])
		b += 4
	}
	bs.frameWords[words] = 0 // straddle reads past the last word see zeros

	bs.wordPtr = 0
	bs.bitIdx = 0
}

// closeFrame invalidates the buffered frame.
func (bs *Bitstream) closeFrame() {
	bs.frameSize = 0
	bs.wordPtr = 0
	bs.bitIdx = 0
}

// getBits extracts the next n bits (1 <= n <= 32), big-endian, advancing the
// cursor. Spans that straddle a word boundary are read as if the two words
// were one 64-bit value.
func (bs *Bitstream) getBits(n int) uint32 {
	sum := bs.bitIdx + n
	if sum <= 32 {
		v := bs.frameWords[bs.wordPtr] >> (32 - sum) & bitmask[n]

		bs.bitIdx += n
		if bs.bitIdx == 32 {
			bs.bitIdx = 0
			bs.wordPtr++
		}

		return v
	}

	w := uint64(bs.frameWords[bs.wordPtr])<<32 | uint64(bs.frameWords[bs.wordPtr+1])
	v := uint32(w>>(64-sum)) & bitmask[n]

	bs.wordPtr++
	bs.bitIdx = sum - 32

	return v
}
