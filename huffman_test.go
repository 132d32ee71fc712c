package mpa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reserveOf fills a bit reservoir with the given bytes.
func reserveOf(data ...byte) *bitReserve {
	var br bitReserve
	for _, b := range data {
		br.putByte(int(b))
	}

	return &br
}

// TestHuffmanTablesWellFormed checks every populated table slot: matrix
// dimensions, codes that fit their lengths, and that the code set forms a
// complete prefix code (Kraft sum exactly one).
func TestHuffmanTablesWellFormed(t *testing.T) {
	for i := range huffTables {
		tbl := &huffTables[i]
		if tbl.hlen == nil {
			continue
		}

		t.Run(fmt.Sprintf("table%d", i), func(t *testing.T) {
			require.Len(t, tbl.hlen, tbl.xlen)
			require.Len(t, tbl.hcod, tbl.xlen)

			var kraft uint64
			seen := make(map[uint64]bool)
			for x := 0; x < tbl.xlen; x++ {
				require.Len(t, tbl.hlen[x], tbl.ylen)
				require.Len(t, tbl.hcod[x], tbl.ylen)

				for y := 0; y < tbl.ylen; y++ {
					l := int(tbl.hlen[x][y])
					code := tbl.hcod[x][y]
					require.Greater(t, l, 0)
					require.LessOrEqual(t, l, 19)
					require.Less(t, uint64(code), uint64(1)<<l,
						"code (%d,%d) wider than its length", x, y)

					key := uint64(1)<<l | uint64(code)
					require.False(t, seen[key], "duplicate code (%d,%d)", x, y)
					seen[key] = true

					kraft += 1 << (32 - l)
				}
			}

			// A complete prefix code sums to exactly 2^32; prefix
			// collisions would overshoot given the duplicate check.
			assert.Equal(t, uint64(1)<<32, kraft)

			// No code may be a proper prefix of another.
			for key := range seen {
				for k := key >> 1; k > 1; k >>= 1 {
					assert.False(t, seen[k], "prefix collision in table %d", i)
				}
			}
		})
	}
}

func TestHuffmanDecodePairs(t *testing.T) {
	// Table 1 codes: 1 -> (0,0), 01 -> (1,0), 001 -> (0,1), 000 -> (1,1).
	// Bits 0x85 0x80: 1 | 000 0 1 | 01 1 | padding.
	br := reserveOf(0x85, 0x80)
	tbl := &huffTables[1]

	x, y, _, _, err := tbl.decode(br)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

	x, y, _, _, err = tbl.decode(br)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, -1}, [2]int{x, y})

	x, y, _, _, err = tbl.decode(br)
	require.NoError(t, err)
	assert.Equal(t, [2]int{-1, 0}, [2]int{x, y})
}

func TestHuffmanDecodeQuad(t *testing.T) {
	// Table B codes are all 4 bits wide with code = 15 - index. 1001 selects
	// index 6 = (v,w,x,y) bits 0110; the two sign bits 1,0 negate w only.
	br := reserveOf(0x99, 0x00)
	tbl := &huffTables[33]

	x, y, v, w, err := tbl.decode(br)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, -1, w)
	assert.Equal(t, 1, x)
	assert.Equal(t, 0, y)
}

func TestHuffmanDecodeLinbitsEscape(t *testing.T) {
	// Table 16 entry (15,0) is 9 bits: 000101110. One linbit extends x to 16,
	// then a zero sign bit keeps it positive.
	br := reserveOf(0x17, 0x40, 0x00)
	tbl := &huffTables[16]
	require.Equal(t, 1, tbl.linbits)

	x, y, _, _, err := tbl.decode(br)
	require.NoError(t, err)
	assert.Equal(t, 16, x)
	assert.Equal(t, 0, y)
}

func TestHuffmanEmptyTable(t *testing.T) {
	br := reserveOf(0xFF)

	x, y, v, w, err := huffTables[0].decode(br)
	require.NoError(t, err)
	assert.Zero(t, x+y+v+w)
	assert.Equal(t, 0, br.bitsRead())
}
