package mpa

import (
	"fmt"
	"sync"
)

// huffTable describes one Layer III Huffman code table: an xlen*ylen matrix
// of code lengths and code words, plus the escape field width for the
// big-value tables whose top entry extends with linbits extra bits. Pair
// tables decode (x, y); the two quadruple tables decode (v, w, x, y) packed
// into a 4-bit index.
type huffTable struct {
	xlen    int
	ylen    int
	linbits int
	quad    bool
	hlen    [][]uint8
	hcod    [][]uint32

	once   sync.Once
	maxLen int
	lookup map[uint32]uint16
}

// build creates the (length, code) keyed lookup. The key embeds the code
// length as a leading one bit so codes of different lengths never collide.
func (t *huffTable) build() {
	t.lookup = make(map[uint32]uint16, t.xlen*t.ylen)

	for x := 0; x < t.xlen; x++ {
		for y := 0; y < t.ylen; y++ {
			l := int(t.hlen[x][y])
			if l > t.maxLen {
				t.maxLen = l
			}

			key := uint32(1)<<l | t.hcod[x][y]
			t.lookup[key] = uint16(x)<<8 | uint16(y)
		}
	}
}

// decode reads one Huffman code from the reservoir and returns the
// reconstructed pair or quadruple, sign and escape bits included.
func (t *huffTable) decode(br *bitReserve) (x, y, v, w int, err error) {
	if t.hlen == nil {
		return 0, 0, 0, 0, nil
	}

	t.once.Do(t.build)

	code := uint32(1)
	length := 0
	for {
		code = code<<1 | uint32(br.readBit())
		length++

		if pair, ok := t.lookup[code]; ok {
			x, y = int(pair>>8), int(pair&0xFF)
			break
		}
		if length >= t.maxLen {
			return 0, 0, 0, 0, fmt.Errorf("%w: undecodable huffman code", ErrUnknownFormat)
		}
	}

	if t.quad {
		// Quad tables store the packed (v,w,x,y) index in the y column.
		v = y >> 3 & 1
		w = y >> 2 & 1
		x = y >> 1 & 1
		y = y & 1

		if v != 0 && br.readBit() != 0 {
			v = -v
		}
		if w != 0 && br.readBit() != 0 {
			w = -w
		}
		if x != 0 && br.readBit() != 0 {
			x = -x
		}
		if y != 0 && br.readBit() != 0 {
			y = -y
		}

		return x, y, v, w, nil
	}

	if x == 15 && t.linbits > 0 {
		x += br.readBits(t.linbits)
	}
	if x != 0 && br.readBit() != 0 {
		x = -x
	}

	if y == 15 && t.linbits > 0 {
		y += br.readBits(t.linbits)
	}
	if y != 0 && br.readBit() != 0 {
		y = -y
	}

	return x, y, 0, 0, nil
}

// The shared code matrices. Tables 16-23 reuse the table 16 codes and tables
// 24-31 the table 24 codes, with per-table linbits widths.
var (
	huffLen1 = [][]uint8{{1, 3}, {2, 3}}
	huffCod1 = [][]uint32{{1, 1}, {1, 0}}

	huffLen2 = [][]uint8{{1, 3, 6}, {3, 3, 5}, {5, 5, 6}}
	huffCod2 = [][]uint32{{1, 2, 1}, {3, 1, 1}, {3, 2, 0}}

	huffLen3 = [][]uint8{{2, 2, 6}, {3, 2, 5}, {5, 5, 6}}
	huffCod3 = [][]uint32{{3, 2, 1}, {1, 1, 1}, {3, 2, 0}}

	huffLen5 = [][]uint8{{1, 3, 6, 7}, {3, 3, 6, 7}, {6, 6, 7, 8}, {7, 6, 7, 8}}
	huffCod5 = [][]uint32{{1, 2, 6, 5}, {3, 1, 4, 4}, {7, 5, 7, 1}, {6, 1, 1, 0}}

	huffLen6 = [][]uint8{{3, 3, 5, 7}, {3, 2, 4, 5}, {4, 4, 5, 6}, {6, 5, 6, 7}}
	huffCod6 = [][]uint32{{7, 3, 5, 1}, {6, 2, 3, 2}, {5, 4, 4, 1}, {3, 3, 2, 0}}

	huffLen7 = [][]uint8{
		{1, 3, 6, 8, 8, 9}, {3, 4, 6, 7, 7, 8}, {6, 5, 7, 8, 8, 9},
		{7, 7, 8, 9, 9, 9}, {7, 7, 8, 9, 9, 10}, {8, 8, 9, 10, 10, 10},
	}
	huffCod7 = [][]uint32{
		{1, 2, 10, 19, 16, 10}, {3, 3, 7, 10, 5, 3}, {11, 4, 13, 17, 8, 4},
		{12, 11, 18, 15, 11, 2}, {7, 6, 9, 14, 3, 1}, {6, 4, 5, 3, 2, 0},
	}

	huffLen8 = [][]uint8{
		{2, 3, 6, 8, 8, 9}, {3, 2, 4, 8, 8, 8}, {6, 4, 6, 8, 8, 9},
		{8, 8, 8, 9, 9, 10}, {8, 7, 8, 9, 10, 10}, {9, 8, 9, 9, 11, 11},
	}
	huffCod8 = [][]uint32{
		{3, 4, 6, 18, 12, 5}, {5, 1, 2, 16, 9, 3}, {7, 3, 5, 14, 7, 3},
		{19, 17, 15, 13, 10, 4}, {13, 5, 8, 11, 5, 1}, {12, 4, 4, 1, 1, 0},
	}

	huffLen9 = [][]uint8{
		{3, 3, 5, 6, 8, 9}, {3, 3, 4, 5, 6, 8}, {4, 4, 5, 6, 7, 8},
		{6, 5, 6, 7, 7, 8}, {7, 6, 7, 7, 8, 9}, {8, 7, 8, 8, 9, 9},
	}
	huffCod9 = [][]uint32{
		{7, 5, 9, 14, 15, 7}, {6, 4, 5, 5, 6, 7}, {7, 6, 8, 8, 8, 5},
		{15, 6, 9, 10, 5, 1}, {11, 7, 9, 6, 4, 1}, {14, 4, 6, 2, 6, 0},
	}

	huffLen10 = [][]uint8{
		{1, 3, 6, 8, 9, 9, 9, 10}, {3, 4, 6, 7, 8, 9, 8, 8},
		{6, 6, 7, 8, 9, 10, 9, 9}, {7, 7, 8, 9, 10, 10, 9, 10},
		{8, 8, 9, 10, 10, 10, 10, 10}, {9, 9, 10, 10, 11, 11, 10, 11},
		{8, 8, 9, 10, 10, 10, 11, 11}, {9, 8, 9, 10, 10, 11, 11, 11},
	}
	huffCod10 = [][]uint32{
		{1, 2, 10, 23, 35, 30, 12, 17}, {3, 3, 8, 12, 18, 21, 12, 7},
		{11, 9, 15, 21, 32, 40, 19, 6}, {14, 13, 22, 34, 46, 23, 18, 7},
		{20, 19, 33, 47, 27, 22, 26, 19}, {31, 22, 41, 18, 9, 18, 15, 19},
		{14, 13, 10, 16, 14, 5, 8, 6}, {5, 8, 0, 8, 6, 7, 5, 4},
	}

	huffLen11 = [][]uint8{
		{2, 3, 5, 7, 8, 9, 8, 9}, {3, 3, 4, 6, 8, 8, 7, 8},
		{5, 5, 6, 7, 8, 9, 8, 8}, {7, 6, 7, 9, 8, 10, 8, 9},
		{8, 8, 8, 9, 10, 10, 9, 10}, {8, 9, 10, 10, 10, 10, 10, 10},
		{8, 7, 7, 8, 9, 10, 10, 10}, {8, 7, 8, 9, 10, 9, 9, 9},
	}
	huffCod11 = [][]uint32{
		{3, 4, 10, 24, 34, 33, 21, 15}, {5, 3, 4, 10, 32, 17, 11, 10},
		{11, 7, 13, 18, 30, 31, 20, 5}, {25, 11, 19, 59, 27, 18, 12, 5},
		{35, 33, 31, 58, 19, 16, 7, 5}, {28, 26, 17, 9, 8, 7, 6, 4},
		{26, 12, 9, 14, 32, 3, 2, 1}, {11, 4, 6, 30, 0, 27, 14, 6},
	}

	huffLen12 = [][]uint8{
		{4, 3, 5, 7, 8, 9, 9, 9}, {3, 3, 4, 5, 7, 7, 8, 8},
		{5, 4, 5, 6, 7, 8, 7, 8}, {6, 5, 6, 6, 7, 8, 8, 8},
		{7, 6, 7, 7, 8, 8, 8, 9}, {8, 7, 8, 8, 8, 9, 8, 9},
		{8, 7, 7, 8, 8, 9, 9, 10}, {9, 8, 8, 9, 9, 9, 9, 10},
	}
	huffCod12 = [][]uint32{
		{9, 6, 16, 33, 41, 39, 38, 26}, {7, 5, 6, 9, 23, 16, 26, 11},
		{17, 7, 11, 14, 21, 30, 10, 7}, {17, 10, 15, 12, 18, 28, 14, 5},
		{32, 13, 22, 19, 18, 16, 9, 5}, {40, 17, 31, 29, 17, 13, 4, 2},
		{27, 12, 11, 15, 10, 7, 4, 1}, {27, 12, 8, 12, 6, 3, 1, 0},
	}

	huffLen13 = [][]uint8{
		{1, 4, 6, 7, 8, 9, 9, 10, 9, 10, 11, 11, 12, 12, 13, 13},
		{3, 4, 6, 7, 8, 8, 9, 9, 9, 9, 10, 10, 11, 12, 12, 12},
		{6, 6, 7, 8, 9, 9, 10, 10, 9, 10, 10, 11, 11, 12, 13, 13},
		{7, 7, 8, 9, 9, 10, 10, 10, 10, 11, 11, 11, 11, 12, 13, 13},
		{8, 7, 9, 9, 10, 10, 11, 11, 10, 11, 11, 12, 12, 13, 13, 14},
		{9, 8, 9, 10, 10, 10, 11, 11, 11, 11, 12, 11, 13, 13, 14, 14},
		{9, 9, 10, 10, 11, 11, 11, 11, 11, 12, 12, 12, 13, 13, 14, 14},
		{10, 9, 10, 11, 11, 11, 12, 12, 12, 12, 13, 13, 13, 14, 16, 16},
		{9, 8, 9, 10, 10, 11, 11, 12, 12, 12, 12, 13, 13, 14, 15, 15},
		{10, 9, 10, 10, 11, 11, 11, 13, 12, 13, 13, 14, 14, 14, 16, 15},
		{10, 10, 10, 11, 11, 12, 12, 13, 12, 13, 14, 13, 14, 15, 16, 16},
		{11, 10, 10, 11, 12, 12, 12, 12, 13, 13, 13, 14, 15, 15, 15, 16},
		{11, 11, 11, 12, 12, 13, 12, 13, 14, 14, 15, 15, 15, 16, 16, 16},
		{12, 11, 12, 13, 13, 13, 14, 14, 14, 14, 14, 15, 16, 15, 16, 16},
		{13, 12, 12, 13, 13, 14, 15, 14, 14, 16, 15, 15, 15, 16, 16, 16},
		{12, 12, 13, 14, 14, 14, 15, 14, 15, 15, 16, 16, 16, 16, 16, 16},
	}
	huffCod13 = [][]uint32{
		{1, 5, 15, 23, 35, 55, 54, 67, 53, 66, 71, 70, 65, 64, 55, 54},
		{3, 4, 14, 22, 34, 33, 52, 51, 50, 49, 65, 64, 69, 63, 62, 61},
		{13, 12, 21, 32, 48, 47, 63, 62, 46, 61, 60, 68, 67, 60, 53, 52},
		{20, 19, 31, 45, 44, 59, 58, 57, 56, 66, 65, 64, 63, 59, 51, 50},
		{30, 18, 43, 42, 55, 54, 62, 61, 53, 60, 59, 58, 57, 49, 48, 41},
		{41, 29, 40, 52, 51, 50, 58, 57, 56, 55, 56, 54, 47, 46, 40, 39},
		{39, 38, 49, 48, 53, 52, 51, 50, 49, 55, 54, 53, 45, 44, 38, 37},
		{47, 37, 46, 48, 47, 46, 52, 51, 50, 49, 43, 42, 41, 36, 21, 20},
		{36, 28, 35, 45, 44, 45, 44, 48, 47, 46, 45, 40, 39, 35, 29, 28},
		{43, 34, 42, 41, 43, 42, 41, 38, 44, 37, 36, 34, 33, 32, 19, 27},
		{40, 39, 38, 40, 39, 43, 42, 35, 41, 34, 31, 33, 30, 26, 18, 17},
		{38, 37, 36, 37, 40, 39, 38, 37, 32, 31, 30, 29, 25, 24, 23, 16},
		{36, 35, 34, 36, 35, 29, 34, 28, 28, 27, 22, 21, 20, 15, 14, 13},
		{33, 33, 32, 27, 26, 25, 26, 25, 24, 23, 22, 19, 12, 18, 11, 10},
		{24, 31, 30, 23, 22, 21, 17, 20, 19, 9, 16, 15, 14, 8, 7, 6},
		{29, 28, 21, 18, 17, 16, 13, 15, 12, 11, 5, 4, 3, 2, 1, 0},
	}

	huffLen15 = [][]uint8{
		{3, 4, 5, 7, 7, 8, 9, 9, 9, 9, 11, 10, 11, 11, 11, 13},
		{4, 3, 5, 6, 7, 7, 8, 8, 8, 9, 9, 10, 10, 10, 11, 11},
		{5, 5, 5, 6, 7, 7, 8, 8, 8, 9, 9, 10, 10, 11, 11, 11},
		{6, 6, 6, 7, 7, 8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 11},
		{7, 6, 7, 7, 8, 8, 9, 9, 9, 9, 10, 10, 10, 11, 11, 11},
		{8, 7, 7, 8, 8, 8, 9, 9, 9, 9, 10, 10, 11, 11, 11, 12},
		{9, 7, 8, 8, 8, 9, 9, 9, 9, 10, 10, 10, 11, 11, 12, 12},
		{9, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 10, 11, 11, 11, 12},
		{9, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 11, 11, 12, 12, 12},
		{9, 8, 9, 9, 9, 9, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12},
		{10, 9, 9, 9, 10, 10, 10, 10, 10, 11, 11, 12, 12, 12, 13, 13},
		{10, 9, 9, 9, 10, 10, 10, 10, 11, 11, 11, 11, 12, 12, 13, 13},
		{11, 10, 9, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12, 12, 12, 13},
		{11, 10, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12, 12, 13, 13, 13},
		{12, 11, 11, 11, 11, 11, 11, 11, 12, 12, 12, 12, 13, 13, 12, 13},
		{12, 11, 11, 11, 11, 11, 11, 12, 12, 12, 12, 12, 13, 13, 13, 13},
	}
	huffCod15 = [][]uint32{
		{7, 11, 19, 47, 46, 67, 89, 88, 87, 86, 79, 87, 78, 77, 76, 15},
		{10, 6, 18, 29, 45, 44, 66, 65, 64, 85, 84, 86, 85, 84, 75, 74},
		{17, 16, 15, 28, 43, 42, 63, 62, 61, 83, 82, 83, 82, 73, 72, 71},
		{27, 26, 25, 41, 40, 60, 59, 81, 80, 79, 81, 80, 79, 70, 69, 68},
		{39, 24, 38, 37, 58, 57, 78, 77, 76, 75, 78, 77, 76, 67, 66, 65},
		{56, 36, 35, 55, 54, 53, 74, 73, 72, 71, 75, 74, 64, 63, 62, 43},
		{70, 34, 52, 51, 50, 69, 68, 67, 66, 73, 72, 71, 61, 60, 42, 41},
		{65, 49, 48, 64, 63, 62, 61, 70, 69, 68, 67, 66, 59, 58, 57, 40},
		{60, 47, 46, 59, 58, 57, 56, 65, 64, 63, 62, 56, 55, 39, 38, 37},
		{55, 45, 54, 53, 52, 51, 61, 60, 59, 54, 53, 52, 51, 36, 35, 34},
		{58, 50, 49, 48, 57, 56, 55, 54, 53, 50, 49, 33, 32, 31, 14, 13},
		{52, 47, 46, 45, 51, 50, 49, 48, 48, 47, 46, 45, 30, 29, 12, 11},
		{44, 47, 44, 46, 45, 44, 43, 42, 41, 40, 28, 27, 26, 25, 24, 10},
		{39, 43, 42, 41, 40, 38, 37, 36, 35, 23, 22, 21, 20, 9, 8, 7},
		{19, 34, 33, 32, 31, 30, 29, 28, 18, 17, 16, 15, 6, 5, 14, 4},
		{13, 27, 26, 25, 24, 23, 22, 12, 11, 10, 9, 8, 3, 2, 1, 0},
	}

	huffLen16 = [][]uint8{
		{1, 4, 6, 8, 9, 9, 10, 10, 11, 11, 11, 12, 12, 12, 12, 9},
		{3, 4, 6, 7, 8, 9, 9, 9, 10, 10, 10, 11, 12, 11, 12, 8},
		{6, 6, 7, 8, 9, 9, 10, 10, 11, 11, 11, 11, 12, 12, 12, 9},
		{8, 7, 8, 9, 9, 10, 10, 10, 11, 11, 12, 12, 12, 12, 12, 10},
		{9, 8, 9, 9, 10, 10, 11, 11, 11, 12, 12, 12, 12, 12, 12, 10},
		{9, 9, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12, 12, 12, 12, 10},
		{10, 9, 10, 10, 11, 11, 11, 12, 12, 12, 12, 12, 12, 12, 12, 11},
		{10, 10, 11, 11, 11, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 11},
		{11, 10, 11, 11, 11, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 11},
		{11, 11, 11, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
		{12, 11, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
		{12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
		{12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
		{12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12},
		{12, 12, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11},
		{9, 8, 8, 9, 9, 10, 10, 10, 11, 11, 11, 11, 11, 11, 11, 8},
	}
	huffCod16 = [][]uint32{
		{1, 5, 15, 41, 63, 62, 87, 86, 121, 120, 119, 131, 130, 129, 128, 61},
		{3, 4, 14, 23, 40, 60, 59, 58, 85, 84, 83, 118, 127, 117, 126, 39},
		{13, 12, 22, 38, 57, 56, 82, 81, 116, 115, 114, 113, 125, 124, 123, 55},
		{37, 21, 36, 54, 53, 80, 79, 78, 112, 111, 122, 121, 120, 119, 118, 77},
		{52, 35, 51, 50, 76, 75, 110, 109, 108, 117, 116, 115, 114, 113, 112, 74},
		{49, 48, 73, 72, 71, 107, 106, 105, 104, 111, 110, 109, 108, 107, 106, 70},
		{69, 47, 68, 67, 103, 102, 101, 105, 104, 103, 102, 101, 100, 99, 98, 100},
		{66, 65, 99, 98, 97, 97, 96, 95, 94, 93, 92, 91, 90, 89, 88, 96},
		{95, 64, 94, 93, 92, 87, 86, 85, 84, 83, 82, 81, 80, 79, 78, 91},
		{90, 89, 88, 77, 76, 75, 74, 73, 72, 71, 70, 69, 68, 67, 66, 65},
		{64, 87, 63, 62, 61, 60, 59, 58, 57, 56, 55, 54, 53, 52, 51, 50},
		{49, 48, 47, 46, 45, 44, 43, 42, 41, 40, 39, 38, 37, 36, 35, 34},
		{33, 32, 31, 30, 29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18},
		{17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2},
		{1, 0, 86, 85, 84, 83, 82, 81, 80, 79, 78, 77, 76, 75, 74, 73},
		{46, 34, 33, 45, 44, 63, 62, 61, 72, 71, 70, 69, 68, 67, 66, 32},
	}

	huffLen24 = [][]uint8{
		{4, 4, 6, 7, 8, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 9},
		{4, 4, 5, 6, 7, 8, 8, 9, 9, 9, 10, 10, 10, 10, 10, 8},
		{6, 5, 6, 7, 7, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 7},
		{7, 6, 7, 7, 8, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 7},
		{8, 7, 7, 8, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 10, 7},
		{9, 7, 8, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 10, 10, 8},
		{9, 8, 8, 9, 9, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 8, 9, 9, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 9, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 9, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 8},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 9, 8},
		{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8},
		{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8},
		{8, 7, 7, 7, 7, 7, 7, 8, 8, 8, 8, 8, 8, 8, 8, 4},
	}
	huffCod24 = [][]uint32{
		{15, 14, 39, 69, 101, 127, 126, 117, 116, 115, 114, 113, 112, 111, 110, 125},
		{13, 12, 21, 38, 68, 100, 99, 124, 123, 122, 109, 108, 107, 106, 105, 98},
		{37, 20, 36, 67, 66, 97, 96, 121, 120, 119, 118, 104, 103, 102, 101, 65},
		{64, 35, 63, 62, 95, 94, 93, 117, 116, 115, 114, 100, 99, 98, 97, 61},
		{92, 60, 59, 91, 90, 89, 113, 112, 111, 110, 96, 95, 94, 93, 92, 58},
		{109, 57, 88, 87, 86, 108, 107, 106, 105, 91, 90, 89, 88, 87, 86, 85},
		{104, 84, 83, 103, 102, 101, 100, 85, 84, 83, 82, 81, 80, 79, 78, 82},
		{77, 81, 99, 98, 97, 96, 76, 75, 74, 73, 72, 71, 70, 69, 68, 80},
		{67, 95, 94, 93, 66, 65, 64, 63, 62, 61, 60, 59, 58, 57, 56, 79},
		{55, 92, 91, 54, 53, 52, 51, 50, 49, 48, 47, 46, 45, 44, 43, 78},
		{42, 90, 41, 40, 39, 38, 37, 36, 35, 34, 33, 32, 31, 30, 29, 77},
		{28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 76},
		{13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 89, 75},
		{88, 87, 86, 85, 84, 83, 82, 81, 80, 79, 78, 77, 76, 75, 74, 74},
		{73, 72, 71, 70, 69, 68, 67, 66, 65, 64, 63, 62, 61, 60, 59, 73},
		{72, 56, 55, 54, 53, 52, 51, 71, 70, 69, 68, 67, 66, 65, 64, 11},
	}

	// Quadruple tables: 16 entries of packed (v,w,x,y) bits.
	huffLenA = [][]uint8{{1, 4, 4, 5, 4, 6, 5, 6, 4, 5, 5, 6, 5, 6, 6, 6}}
	huffCodA = [][]uint32{{1, 5, 4, 5, 6, 5, 4, 4, 7, 3, 6, 0, 7, 2, 3, 1}}

	huffLenB = [][]uint8{{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}}
	huffCodB = [][]uint32{{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}}
)

// huffTables indexes all 34 table slots of the format. Slots 0, 4 and 14
// carry no codes; slots 16-23 and 24-31 share codes and differ in linbits.
var huffTables = [34]huffTable{
	{},
	{xlen: 2, ylen: 2, hlen: huffLen1, hcod: huffCod1},
	{xlen: 3, ylen: 3, hlen: huffLen2, hcod: huffCod2},
	{xlen: 3, ylen: 3, hlen: huffLen3, hcod: huffCod3},
	{},
	{xlen: 4, ylen: 4, hlen: huffLen5, hcod: huffCod5},
	{xlen: 4, ylen: 4, hlen: huffLen6, hcod: huffCod6},
	{xlen: 6, ylen: 6, hlen: huffLen7, hcod: huffCod7},
	{xlen: 6, ylen: 6, hlen: huffLen8, hcod: huffCod8},
	{xlen: 6, ylen: 6, hlen: huffLen9, hcod: huffCod9},
	{xlen: 8, ylen: 8, hlen: huffLen10, hcod: huffCod10},
	{xlen: 8, ylen: 8, hlen: huffLen11, hcod: huffCod11},
	{xlen: 8, ylen: 8, hlen: huffLen12, hcod: huffCod12},
	{xlen: 16, ylen: 16, hlen: huffLen13, hcod: huffCod13},
	{},
	{xlen: 16, ylen: 16, hlen: huffLen15, hcod: huffCod15},
	{xlen: 16, ylen: 16, linbits: 1, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 2, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 3, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 4, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 6, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 8, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 10, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 13, hlen: huffLen16, hcod: huffCod16},
	{xlen: 16, ylen: 16, linbits: 4, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 5, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 6, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 7, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 8, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 9, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 11, hlen: huffLen24, hcod: huffCod24},
	{xlen: 16, ylen: 16, linbits: 13, hlen: huffLen24, hcod: huffCod24},
	{xlen: 1, ylen: 16, quad: true, hlen: huffLenA, hcod: huffCodA},
	{xlen: 1, ylen: 16, quad: true, hlen: huffLenB, hcod: huffCodB},
}
