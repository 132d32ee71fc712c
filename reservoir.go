package mpa

// reserveSize is the bit reservoir capacity in bits. It must be a power of
// two so that the cursors can wrap with a mask.
const reserveSize = 8192 * 8

// bitReserve is a circular buffer of single bits used by the Layer III
// decoder to borrow main data across frame boundaries. Reads and writes are
// not bounds checked; the format guarantees legal offsets.
type bitReserve struct {
	buf     [reserveSize]uint8
	offset  int
	readPos int
	totBits int
}

// readBits pops n bits, MSB first.
func (b *bitReserve) readBits(n int) int {
	b.totBits += n

	val := 0
	pos := b.readPos
	if pos+n < reserveSize {
		for n > 0 {
			val <<= 1
			val |= int(b.buf[pos])
			pos++
			n--
		}
	} else {
		for n > 0 {
			val <<= 1
			val |= int(b.buf[pos])
			pos = (pos + 1) & (reserveSize - 1)
			n--
		}
	}
	b.readPos = pos

	return val
}

// readBit pops a single bit.
func (b *bitReserve) readBit() int {
	b.totBits++

	val := int(b.buf[b.readPos])
	b.readPos = (b.readPos + 1) & (reserveSize - 1)

	return val
}

// putByte unpacks one byte into 8 consecutive bit entries.
func (b *bitReserve) putByte(v int) {
	ofs := b.offset
	for mask := 0x80; mask != 0; mask >>= 1 {
		if v&mask != 0 {
			b.buf[ofs] = 1
		} else {
			b.buf[ofs] = 0
		}

		ofs = (ofs + 1) & (reserveSize - 1)
	}
	b.offset = ofs
}

// bitsRead returns the total number of bits consumed so far.
func (b *bitReserve) bitsRead() int {
	return b.totBits
}

// rewindBits moves the read cursor back n bits.
func (b *bitReserve) rewindBits(n int) {
	b.totBits -= n
	b.readPos -= n
	if b.readPos < 0 {
		b.readPos += reserveSize
	}
}

// rewindBytes moves the read cursor back n bytes.
func (b *bitReserve) rewindBytes(n int) {
	b.rewindBits(n << 3)
}
