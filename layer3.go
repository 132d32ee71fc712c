package mpa

import (
	"fmt"
	"math"
)

const (
	granuleSamples = 576
	ssLimit        = 18
	sbLimit        = 32
)

// grInfo holds the side information of one granule of one channel.
type grInfo struct {
	part23Length      int
	bigValues         int
	globalGain        int
	scalefacCompress  int
	windowSwitching   int
	blockType         int
	mixedBlock        int
	tableSelect       [3]int
	subblockGain      [3]int
	region0Count      int
	region1Count      int
	preflag           int
	scalefacScale     int
	count1TableSelect int
}

// sideInfo is the Layer III side information of one frame, granule major.
type sideInfo struct {
	mainDataBegin int
	privateBits   int
	scfsi         [2][4]int
	granules      [2][2]grInfo
}

// scaleFactors keeps the decoded scale factors of one channel. Long blocks
// use l, short blocks use s indexed [window][band].
type scaleFactors struct {
	l [23]int
	s [3][13]int
}

// sfBand lists the scale factor band boundaries for one sample rate.
type sfBand struct {
	l [23]int
	s [14]int
}

// Indexed by sample frequency: MPEG-2.5 first, then MPEG-2, then MPEG-1.
var sfBandIndex = [9]sfBand{
	{
		l: [23]int{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		s: [14]int{0, 4, 8, 12, 18, 24, 32, 42, 56, 74, 100, 132, 174, 192},
	},
	{
		l: [23]int{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		s: [14]int{0, 4, 8, 12, 18, 24, 32, 42, 56, 74, 100, 132, 174, 192},
	},
	{
		l: [23]int{0, 12, 24, 36, 48, 60, 72, 88, 108, 132, 160, 192, 232, 280, 336, 400, 476, 566, 568, 570, 572, 574, 576},
		s: [14]int{0, 8, 16, 24, 36, 52, 72, 96, 124, 160, 162, 164, 166, 192},
	},
	{
		l: [23]int{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		s: [14]int{0, 4, 8, 12, 18, 24, 32, 42, 56, 74, 100, 132, 174, 192},
	},
	{
		l: [23]int{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 114, 136, 162, 194, 232, 278, 332, 394, 464, 540, 576},
		s: [14]int{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 136, 180, 192},
	},
	{
		l: [23]int{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		s: [14]int{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 134, 174, 192},
	},
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	},
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	},
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	},
}

var scalefacSizes = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

var pretab = [22]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0}

// Band counts per scale factor group for the LSF scale factor layouts,
// indexed [blocknumber][blocktypenumber][group].
var lsfSfbBlock = [6][3][4]int{
	{{6, 5, 5, 5}, {9, 9, 9, 9}, {6, 9, 9, 9}},
	{{6, 5, 7, 3}, {9, 9, 12, 6}, {6, 9, 12, 6}},
	{{11, 10, 0, 0}, {18, 18, 0, 0}, {15, 18, 0, 0}},
	{{7, 7, 7, 0}, {12, 12, 12, 0}, {6, 15, 12, 0}},
	{{6, 6, 6, 3}, {12, 9, 9, 6}, {6, 12, 9, 6}},
	{{8, 8, 5, 0}, {15, 12, 9, 0}, {6, 18, 9, 0}},
}

var (
	pow43      [8207]float32
	cosN12     [6][12]float32
	cosN36     [18][36]float32
	imdctWins  [4][36]float32
	antiCS     [8]float32
	antiCA     [8]float32
	isRatios   [7]float32
	lsfISTable [2][32]float32

	invSqrt2 = float32(1.0 / math.Sqrt2)
)

func init() {
	for i := range pow43 {
		pow43[i] = float32(math.Pow(float64(i), 4.0/3.0))
	}

	for m := 0; m < 6; m++ {
		for p := 0; p < 12; p++ {
			cosN12[m][p] = float32(math.Cos(math.Pi / 24 * float64((2*p+7)*(2*m+1))))
		}
	}
	for m := 0; m < 18; m++ {
		for p := 0; p < 36; p++ {
			cosN36[m][p] = float32(math.Cos(math.Pi / 72 * float64((2*p+19)*(2*m+1))))
		}
	}

	for i := 0; i < 36; i++ {
		imdctWins[0][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 0; i < 18; i++ {
		imdctWins[1][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 18; i < 24; i++ {
		imdctWins[1][i] = 1.0
	}
	for i := 24; i < 30; i++ {
		imdctWins[1][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 18)))
	}
	for i := 0; i < 12; i++ {
		imdctWins[2][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5)))
	}
	for i := 6; i < 12; i++ {
		imdctWins[3][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 6)))
	}
	for i := 12; i < 18; i++ {
		imdctWins[3][i] = 1.0
	}
	for i := 18; i < 36; i++ {
		imdctWins[3][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}

	ci := [8]float64{-0.6, -0.535, -0.33, -0.185, -0.095, -0.041, -0.0142, -0.0037}
	for i, c := range ci {
		sq := math.Sqrt(1.0 + c*c)
		antiCS[i] = float32(1.0 / sq)
		antiCA[i] = float32(c / sq)
	}

	for i := 0; i < 7; i++ {
		isRatios[i] = float32(math.Tan(float64(i) * math.Pi / 12))
	}
	for i := 0; i < 32; i++ {
		lsfISTable[0][i] = float32(math.Pow(2, -0.25*float64(i)))
		lsfISTable[1][i] = float32(math.Pow(2, -0.5*float64(i)))
	}
}

// layer3Decoder decodes Layer III frames. Main data is carried across frame
// boundaries through the bit reservoir, so one decoder instance must see
// every frame of the stream in order.
type layer3Decoder struct {
	stream  *Bitstream
	header  *Header
	filter1 *SynthesisFilter
	filter2 *SynthesisFilter
	buffer  Output

	br       bitReserve
	si       sideInfo
	scalefac [2]scaleFactors

	is      [2][granuleSamples]float32
	out     [granuleSamples]float32
	prev    [2][granuleSamples]float32
	samples [sbLimit]float32

	scalefacBuffer [54]int
	newSlen        [4]int

	frameStart int
	channels   int
	sfreq      int
	maxGr      int
	nonzero    [2]int
}

func newLayer3Decoder(stream *Bitstream, header *Header, filter1, filter2 *SynthesisFilter, buffer Output) *layer3Decoder {
	return &layer3Decoder{
		stream:  stream,
		header:  header,
		filter1: filter1,
		filter2: filter2,
		buffer:  buffer,
	}
}

// bits reads side information bits, feeding the frame CRC when present.
func (d *layer3Decoder) bits(n int) int {
	v := d.stream.getBits(n)
	if d.header.Protected() {
		d.header.crc.AddBits(v, n)
	}
	return int(v)
}

func (d *layer3Decoder) decodeFrame() error {
	h := d.header
	d.channels = h.Channels()
	d.maxGr = 1
	if h.Version() == mpeg1 {
		d.maxGr = 2
	}
	switch h.Version() {
	case mpeg25LSF:
		d.sfreq = h.sampleFrequency
	case mpeg2LSF:
		d.sfreq = h.sampleFrequency + 3
	default:
		d.sfreq = h.sampleFrequency + 6
	}

	if err := d.readSideInfo(); err != nil {
		return err
	}

	nSlots := h.nSlots
	for i := 0; i < nSlots; i++ {
		d.br.putByte(int(d.stream.getBits(8)))
	}

	mainDataEnd := d.br.bitsRead() >> 3
	if flush := d.br.bitsRead() & 7; flush != 0 {
		d.br.readBits(8 - flush)
		mainDataEnd++
	}
	bytesToDiscard := d.frameStart - mainDataEnd - d.si.mainDataBegin
	d.frameStart += nSlots
	if bytesToDiscard < 0 {
		// The reservoir does not yet hold the main data of this frame.
		return nil
	}
	if mainDataEnd > 4096 {
		d.frameStart -= 4096
		d.br.rewindBytes(4096)
	}
	for ; bytesToDiscard > 0; bytesToDiscard-- {
		d.br.readBits(8)
	}

	if h.Protected() && !h.checksumOK() {
		return errCRCMismatch
	}

	for gr := 0; gr < d.maxGr; gr++ {
		for ch := 0; ch < d.channels; ch++ {
			part2Start := d.br.bitsRead()
			if h.Version() == mpeg1 {
				d.readScaleFactors(gr, ch)
			} else {
				d.readLSFScaleFactors(gr, ch)
			}
			if err := d.readHuffman(gr, ch, part2Start); err != nil {
				return err
			}
			d.requantize(gr, ch)
		}

		d.stereo(gr)

		for ch := 0; ch < d.channels; ch++ {
			d.reorder(gr, ch)
			d.antialias(gr, ch)
			d.hybrid(gr, ch)

			// Frequency inversion of every odd sample in odd subbands.
			for sb18 := 18; sb18 < granuleSamples; sb18 += 36 {
				for ss := 1; ss < ssLimit; ss += 2 {
					d.out[sb18+ss] = -d.out[sb18+ss]
				}
			}

			filter := d.filter1
			if ch == 1 {
				filter = d.filter2
			}
			for ss := 0; ss < ssLimit; ss++ {
				for sb := 0; sb < sbLimit; sb++ {
					d.samples[sb] = d.out[sb*ssLimit+ss]
				}
				filter.InputSamples(d.samples[:])
				filter.CalculatePCM(d.buffer)
			}
		}
	}

	return nil
}

func (d *layer3Decoder) readSideInfo() error {
	h := d.header
	d.si = sideInfo{}

	if h.Version() == mpeg1 {
		d.si.mainDataBegin = d.bits(9)
		if d.channels == 1 {
			d.si.privateBits = d.bits(5)
		} else {
			d.si.privateBits = d.bits(3)
		}
		for ch := 0; ch < d.channels; ch++ {
			for band := 0; band < 4; band++ {
				d.si.scfsi[ch][band] = d.bits(1)
			}
		}
	} else {
		d.si.mainDataBegin = d.bits(8)
		if d.channels == 1 {
			d.si.privateBits = d.bits(1)
		} else {
			d.si.privateBits = d.bits(2)
		}
	}

	for gr := 0; gr < d.maxGr; gr++ {
		for ch := 0; ch < d.channels; ch++ {
			g := &d.si.granules[gr][ch]
			g.part23Length = d.bits(12)
			g.bigValues = d.bits(9)
			if g.bigValues > granuleSamples/2 {
				return fmt.Errorf("%w: big_values exceeds granule size", ErrUnknownFormat)
			}
			g.globalGain = d.bits(8)
			if h.Version() == mpeg1 {
				g.scalefacCompress = d.bits(4)
			} else {
				g.scalefacCompress = d.bits(9)
			}
			g.windowSwitching = d.bits(1)
			if g.windowSwitching != 0 {
				g.blockType = d.bits(2)
				g.mixedBlock = d.bits(1)
				g.tableSelect[0] = d.bits(5)
				g.tableSelect[1] = d.bits(5)
				for w := 0; w < 3; w++ {
					g.subblockGain[w] = d.bits(3)
				}
				if g.blockType == 0 {
					return fmt.Errorf("%w: reserved block type with window switching", ErrUnknownFormat)
				}
				if g.blockType == 2 && g.mixedBlock == 0 {
					g.region0Count = 8
				} else {
					g.region0Count = 7
				}
				g.region1Count = 20 - g.region0Count
			} else {
				for r := 0; r < 3; r++ {
					g.tableSelect[r] = d.bits(5)
				}
				g.region0Count = d.bits(4)
				g.region1Count = d.bits(3)
				g.blockType = 0
			}
			if h.Version() == mpeg1 {
				g.preflag = d.bits(1)
			}
			g.scalefacScale = d.bits(1)
			g.count1TableSelect = d.bits(1)
		}
	}

	return nil
}

func (d *layer3Decoder) readScaleFactors(gr, ch int) {
	g := &d.si.granules[gr][ch]
	sf := &d.scalefac[ch]
	slen1 := scalefacSizes[g.scalefacCompress][0]
	slen2 := scalefacSizes[g.scalefacCompress][1]

	if g.windowSwitching != 0 && g.blockType == 2 {
		if g.mixedBlock != 0 {
			for sfb := 0; sfb < 8; sfb++ {
				sf.l[sfb] = d.br.readBits(slen1)
			}
			for sfb := 3; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					sf.s[win][sfb] = d.br.readBits(nbits)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					sf.s[win][sfb] = d.br.readBits(nbits)
				}
			}
		}
		for win := 0; win < 3; win++ {
			sf.s[win][12] = 0
		}
		return
	}

	// Long blocks share scale factors between granules when scfsi allows.
	if d.si.scfsi[ch][0] == 0 || gr == 0 {
		for sfb := 0; sfb < 6; sfb++ {
			sf.l[sfb] = d.br.readBits(slen1)
		}
	}
	if d.si.scfsi[ch][1] == 0 || gr == 0 {
		for sfb := 6; sfb < 11; sfb++ {
			sf.l[sfb] = d.br.readBits(slen1)
		}
	}
	if d.si.scfsi[ch][2] == 0 || gr == 0 {
		for sfb := 11; sfb < 16; sfb++ {
			sf.l[sfb] = d.br.readBits(slen2)
		}
	}
	if d.si.scfsi[ch][3] == 0 || gr == 0 {
		for sfb := 16; sfb < 21; sfb++ {
			sf.l[sfb] = d.br.readBits(slen2)
		}
	}
	sf.l[21] = 0
	sf.l[22] = 0
}

// readLSFScaleData reads the raw MPEG-2 scale factor groups into
// scalefacBuffer as described by the scalefac_compress layouts.
func (d *layer3Decoder) readLSFScaleData(gr, ch int) {
	g := &d.si.granules[gr][ch]
	modeExt := d.header.ModeExtension()
	intensity := (modeExt == 1 || modeExt == 3) && ch == 1

	blocktypenumber := 0
	if g.blockType == 2 {
		if g.mixedBlock == 0 {
			blocktypenumber = 1
		} else {
			blocktypenumber = 2
		}
	}

	blocknumber := 0
	if !intensity {
		sc := g.scalefacCompress
		switch {
		case sc < 400:
			d.newSlen[0] = (sc >> 4) / 5
			d.newSlen[1] = (sc >> 4) % 5
			d.newSlen[2] = (sc & 0xF) >> 2
			d.newSlen[3] = sc & 3
			g.preflag = 0
			blocknumber = 0
		case sc < 500:
			d.newSlen[0] = ((sc - 400) >> 2) / 5
			d.newSlen[1] = ((sc - 400) >> 2) % 5
			d.newSlen[2] = (sc - 400) & 3
			d.newSlen[3] = 0
			g.preflag = 0
			blocknumber = 1
		default:
			d.newSlen[0] = (sc - 500) / 3
			d.newSlen[1] = (sc - 500) % 3
			d.newSlen[2] = 0
			d.newSlen[3] = 0
			g.preflag = 1
			blocknumber = 2
		}
	} else {
		isc := g.scalefacCompress >> 1
		switch {
		case isc < 180:
			d.newSlen[0] = isc / 36
			d.newSlen[1] = (isc % 36) / 6
			d.newSlen[2] = (isc % 36) % 6
			d.newSlen[3] = 0
			blocknumber = 3
		case isc < 244:
			d.newSlen[0] = ((isc - 180) & 0x3F) >> 4
			d.newSlen[1] = ((isc - 180) & 0xF) >> 2
			d.newSlen[2] = (isc - 180) & 3
			d.newSlen[3] = 0
			blocknumber = 4
		default:
			d.newSlen[0] = (isc - 244) / 3
			d.newSlen[1] = (isc - 244) % 3
			d.newSlen[2] = 0
			d.newSlen[3] = 0
			blocknumber = 5
		}
		g.preflag = 0
	}

	for i := range d.scalefacBuffer {
		d.scalefacBuffer[i] = 0
	}
	m := 0
	for i := 0; i < 4; i++ {
		num := lsfSfbBlock[blocknumber][blocktypenumber][i]
		for j := 0; j < num; j++ {
			if d.newSlen[i] != 0 {
				d.scalefacBuffer[m] = d.br.readBits(d.newSlen[i])
			}
			m++
		}
	}
}

func (d *layer3Decoder) readLSFScaleFactors(gr, ch int) {
	g := &d.si.granules[gr][ch]
	sf := &d.scalefac[ch]
	d.readLSFScaleData(gr, ch)

	m := 0
	if g.windowSwitching != 0 && g.blockType == 2 {
		if g.mixedBlock != 0 {
			for sfb := 0; sfb < 8; sfb++ {
				sf.l[sfb] = d.scalefacBuffer[m]
				m++
			}
			for sfb := 3; sfb < 12; sfb++ {
				for win := 0; win < 3; win++ {
					sf.s[win][sfb] = d.scalefacBuffer[m]
					m++
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				for win := 0; win < 3; win++ {
					sf.s[win][sfb] = d.scalefacBuffer[m]
					m++
				}
			}
		}
		for win := 0; win < 3; win++ {
			sf.s[win][12] = 0
		}
		return
	}

	for sfb := 0; sfb < 21; sfb++ {
		sf.l[sfb] = d.scalefacBuffer[m]
		m++
	}
	sf.l[21] = 0
	sf.l[22] = 0
}

func (d *layer3Decoder) readHuffman(gr, ch, part2Start int) error {
	g := &d.si.granules[gr][ch]
	spectrum := &d.is[ch]

	if g.part23Length == 0 {
		for i := range spectrum {
			spectrum[i] = 0
		}
		d.nonzero[ch] = 0
		return nil
	}
	part2End := part2Start + g.part23Length

	var region1Start, region2Start int
	if g.windowSwitching != 0 && g.blockType == 2 {
		region1Start = 36
		region2Start = granuleSamples
	} else {
		bands := &sfBandIndex[d.sfreq]
		r1 := g.region0Count + 1
		r2 := r1 + g.region1Count + 1
		if r2 > len(bands.l)-1 {
			r2 = len(bands.l) - 1
		}
		region1Start = bands.l[r1]
		region2Start = bands.l[r2]
	}

	i := 0
	for ; i < g.bigValues*2; i += 2 {
		var table *huffTable
		switch {
		case i < region1Start:
			table = &huffTables[g.tableSelect[0]]
		case i < region2Start:
			table = &huffTables[g.tableSelect[1]]
		default:
			table = &huffTables[g.tableSelect[2]]
		}
		x, y, _, _, err := table.decode(&d.br)
		if err != nil {
			return err
		}
		spectrum[i] = float32(x)
		spectrum[i+1] = float32(y)
	}

	// The count1 region packs quadruples until the main data of this
	// granule runs out.
	table := &huffTables[32+g.count1TableSelect]
	for i < granuleSamples && d.br.bitsRead() < part2End {
		x, y, v, w, err := table.decode(&d.br)
		if err != nil {
			return err
		}
		spectrum[i] = float32(v)
		if i+1 < granuleSamples {
			spectrum[i+1] = float32(w)
		}
		if i+2 < granuleSamples {
			spectrum[i+2] = float32(x)
		}
		if i+3 < granuleSamples {
			spectrum[i+3] = float32(y)
		}
		i += 4
	}

	if d.br.bitsRead() > part2End {
		d.br.rewindBits(d.br.bitsRead() - part2End)
		i -= 4
		if i < 0 {
			i = 0
		}
	}
	if i > granuleSamples {
		i = granuleSamples
	}
	d.nonzero[ch] = i

	for ; i < granuleSamples; i++ {
		spectrum[i] = 0
	}

	// Skip any stuffing bits left in this part.
	for d.br.bitsRead() < part2End {
		n := part2End - d.br.bitsRead()
		if n > 16 {
			n = 16
		}
		d.br.readBits(n)
	}

	return nil
}

func (d *layer3Decoder) requantizeValue(gr, ch, i, sfb, win int) {
	g := &d.si.granules[gr][ch]
	sf := &d.scalefac[ch]

	sfMult := 0.5
	if g.scalefacScale != 0 {
		sfMult = 1.0
	}

	var exp float64
	if win < 0 {
		exp = 0.25*float64(g.globalGain-210) -
			sfMult*float64(sf.l[sfb]+g.preflag*pretab[sfb])
	} else {
		exp = 0.25*float64(g.globalGain-210-8*g.subblockGain[win]) -
			sfMult*float64(sf.s[win][sfb])
	}
	scale := float32(math.Pow(2, exp))

	v := d.is[ch][i]
	if v < 0 {
		d.is[ch][i] = -scale * pow43[int(-v)]
	} else {
		d.is[ch][i] = scale * pow43[int(v)]
	}
}

func (d *layer3Decoder) requantize(gr, ch int) {
	g := &d.si.granules[gr][ch]
	bands := &sfBandIndex[d.sfreq]

	if g.windowSwitching != 0 && g.blockType == 2 {
		i := 0
		sfb := 0
		if g.mixedBlock != 0 {
			// The two lowest subbands of a mixed block stay long.
			nextSfb := bands.l[sfb+1]
			for ; i < 36; i++ {
				if i == nextSfb {
					sfb++
					nextSfb = bands.l[sfb+1]
				}
				d.requantizeValue(gr, ch, i, sfb, -1)
			}
			sfb = 3
		}

		nextSfb := bands.s[sfb+1] * 3
		winLen := bands.s[sfb+1] - bands.s[sfb]
		for i < d.nonzero[ch] {
			if i == nextSfb {
				sfb++
				nextSfb = bands.s[sfb+1] * 3
				winLen = bands.s[sfb+1] - bands.s[sfb]
			}
			for win := 0; win < 3; win++ {
				for j := 0; j < winLen && i < d.nonzero[ch]; j++ {
					d.requantizeValue(gr, ch, i, sfb, win)
					i++
				}
			}
		}
		return
	}

	sfb := 0
	nextSfb := bands.l[sfb+1]
	for i := 0; i < d.nonzero[ch]; i++ {
		if i == nextSfb {
			sfb++
			nextSfb = bands.l[sfb+1]
		}
		d.requantizeValue(gr, ch, i, sfb, -1)
	}
}

// reorder puts short block samples back into subband order. The Huffman
// data of a short block arrives grouped by scale factor band and window.
func (d *layer3Decoder) reorder(gr, ch int) {
	g := &d.si.granules[gr][ch]
	if g.windowSwitching == 0 || g.blockType != 2 {
		return
	}
	bands := &sfBandIndex[d.sfreq]
	spectrum := &d.is[ch]

	var re [granuleSamples]float32
	sfb := 0
	i := 0
	if g.mixedBlock != 0 {
		sfb = 3
		i = 36
	}
	nextSfb := bands.s[sfb+1] * 3
	winLen := bands.s[sfb+1] - bands.s[sfb]

	for i < granuleSamples {
		if i == nextSfb {
			for j := 0; j < 3*winLen; j++ {
				spectrum[3*bands.s[sfb]+j] = re[j]
			}
			if i >= d.nonzero[ch] {
				return
			}
			sfb++
			nextSfb = bands.s[sfb+1] * 3
			winLen = bands.s[sfb+1] - bands.s[sfb]
		}
		for win := 0; win < 3; win++ {
			for j := 0; j < winLen; j++ {
				re[j*3+win] = spectrum[i]
				i++
			}
		}
	}
	for j := 0; j < 3*winLen; j++ {
		spectrum[3*bands.s[12]+j] = re[j]
	}
}

// intensityLine scales one spectral line of an intensity stereo band.
func (d *layer3Decoder) intensityLine(isPos, ioType, i int) {
	left := d.is[0][i]
	if d.header.Version() == mpeg1 {
		ratio := isRatios[isPos]
		d.is[0][i] = left * (ratio / (1 + ratio))
		d.is[1][i] = left * (1 / (1 + ratio))
		return
	}
	if isPos == 0 {
		d.is[1][i] = left
		return
	}
	if isPos&1 != 0 {
		d.is[0][i] = left * lsfISTable[ioType][(isPos+1)/2]
		d.is[1][i] = left
	} else {
		d.is[1][i] = left * lsfISTable[ioType][isPos/2]
	}
}

func (d *layer3Decoder) intensityLong(gr, sfb int) {
	bands := &sfBandIndex[d.sfreq]
	isPos := d.scalefac[1].l[sfb]
	if d.header.Version() == mpeg1 && isPos >= 7 {
		return
	}
	if isPos >= 32 {
		return
	}
	ioType := d.si.granules[gr][1].scalefacCompress & 1
	for i := bands.l[sfb]; i < bands.l[sfb+1]; i++ {
		d.intensityLine(isPos, ioType, i)
	}
}

func (d *layer3Decoder) intensityShort(gr, sfb int) {
	bands := &sfBandIndex[d.sfreq]
	winLen := bands.s[sfb+1] - bands.s[sfb]
	ioType := d.si.granules[gr][1].scalefacCompress & 1
	for win := 0; win < 3; win++ {
		isPos := d.scalefac[1].s[win][sfb]
		if d.header.Version() == mpeg1 && isPos >= 7 {
			continue
		}
		if isPos >= 32 {
			continue
		}
		start := bands.s[sfb]*3 + winLen*win
		for i := 0; i < winLen; i++ {
			d.intensityLine(isPos, ioType, start+i)
		}
	}
}

func (d *layer3Decoder) stereo(gr int) {
	if d.channels == 1 || d.header.Mode() != modeJointStereo {
		return
	}
	msStereo := d.header.ModeExtension()&0x2 != 0
	isStereo := d.header.ModeExtension()&0x1 != 0

	if msStereo {
		maxPos := d.nonzero[0]
		if d.nonzero[1] > maxPos {
			maxPos = d.nonzero[1]
		}
		for i := 0; i < maxPos; i++ {
			left := d.is[0][i]
			right := d.is[1][i]
			d.is[0][i] = (left + right) * invSqrt2
			d.is[1][i] = (left - right) * invSqrt2
		}
	}

	if !isStereo {
		return
	}

	// Intensity bands start where the right channel spectrum runs out.
	g := &d.si.granules[gr][0]
	bands := &sfBandIndex[d.sfreq]
	if g.windowSwitching != 0 && g.blockType == 2 {
		if g.mixedBlock != 0 {
			for sfb := 0; sfb < 8; sfb++ {
				if bands.l[sfb] >= d.nonzero[1] {
					d.intensityLong(gr, sfb)
				}
			}
			for sfb := 3; sfb < 12; sfb++ {
				if bands.s[sfb]*3 >= d.nonzero[1] {
					d.intensityShort(gr, sfb)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				if bands.s[sfb]*3 >= d.nonzero[1] {
					d.intensityShort(gr, sfb)
				}
			}
		}
	} else {
		for sfb := 0; sfb < 21; sfb++ {
			if bands.l[sfb] >= d.nonzero[1] {
				d.intensityLong(gr, sfb)
			}
		}
	}
}

func (d *layer3Decoder) antialias(gr, ch int) {
	g := &d.si.granules[gr][ch]
	// Short blocks without a long lower part have no subband overlap.
	if g.windowSwitching != 0 && g.blockType == 2 && g.mixedBlock == 0 {
		return
	}
	until := sbLimit
	if g.windowSwitching != 0 && g.blockType == 2 && g.mixedBlock != 0 {
		until = 2
	}
	spectrum := &d.is[ch]
	for sb := 1; sb < until; sb++ {
		for i := 0; i < 8; i++ {
			li := 18*sb - 1 - i
			ui := 18*sb + i
			lb := spectrum[li]*antiCS[i] - spectrum[ui]*antiCA[i]
			ub := spectrum[ui]*antiCS[i] + spectrum[li]*antiCA[i]
			spectrum[li] = lb
			spectrum[ui] = ub
		}
	}
}

// imdctWin runs the inverse MDCT of one subband block and applies the
// block type window. Short blocks overlay three 12-point transforms.
func imdctWin(in []float32, out *[36]float32, blockType int) {
	if blockType == 2 {
		for i := range out {
			out[i] = 0
		}
		var tmp [12]float32
		for j := 0; j < 3; j++ {
			for p := 0; p < 12; p++ {
				var sum float32
				for m := 0; m < 6; m++ {
					sum += in[j+3*m] * cosN12[m][p]
				}
				tmp[p] = sum * imdctWins[2][p]
			}
			for p := 0; p < 12; p++ {
				out[6*j+p+6] += tmp[p]
			}
		}
		return
	}

	for p := 0; p < 36; p++ {
		var sum float32
		for m := 0; m < 18; m++ {
			sum += in[m] * cosN36[m][p]
		}
		out[p] = sum * imdctWins[blockType][p]
	}
}

func (d *layer3Decoder) hybrid(gr, ch int) {
	g := &d.si.granules[gr][ch]
	var rawout [36]float32

	for sb := 0; sb < sbLimit; sb++ {
		bt := g.blockType
		if g.windowSwitching != 0 && g.mixedBlock != 0 && sb < 2 {
			bt = 0
		}
		off := sb * ssLimit
		imdctWin(d.is[ch][off:off+ssLimit], &rawout, bt)
		for i := 0; i < ssLimit; i++ {
			d.out[off+i] = rawout[i] + d.prev[ch][off+i]
			d.prev[ch][off+i] = rawout[ssLimit+i]
		}
	}
}
