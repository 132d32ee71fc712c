package mpa

const crc16Polynomial = 0x8005

// CRC16 accumulates a running 16-bit checksum over header and subband fields,
// bit by bit, most significant bit first.
type CRC16 struct {
	crc uint16
}

// NewCRC16 creates a checksum accumulator in its initial state.
func NewCRC16() *CRC16 {
	return &CRC16{crc: 0xFFFF}
}

// AddBits feeds the low length bits of value into the checksum, MSB first.
func (c *CRC16) AddBits(value uint32, length int) {
	mask := uint32(1) << (length - 1)

	for mask != 0 {
		if ((c.crc&0x8000 == 0) && (value&mask != 0)) || ((c.crc&0x8000 != 0) && (value&mask == 0)) {
			c.crc = (c.crc << 1) ^ crc16Polynomial
		} else {
			c.crc <<= 1
		}

		mask >>= 1
	}
}

// Checksum returns the accumulated value and resets the accumulator.
func (c *CRC16) Checksum() uint16 {
	sum := c.crc
	c.crc = 0xFFFF

	return sum
}
