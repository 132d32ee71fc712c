package mpa

import (
	"fmt"
	"math"
)

type quantizerSpec struct {
	Levels uint16
	Group  byte
	Bits   byte
}

// Quantizer lookup, step 1: bitrate classes.
var quantLutStep1 = [][]byte{
	// 32, 48, 56, 64, 80, 96,112,128,160,192,224,256,320,384 <- bitrate
	{0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2}, // mono
	// 16, 24, 28, 32, 40, 48, 56, 64, 80, 96,112,128,160,192 <- bitrate / chan
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2}, // stereo
}

// Quantizer lookup, step 2: bitrate class, sample rate -> B2 table idx, sblimit.
var quantTabA = byte(27 | 64) // Table 3-B.2a: high-rate, sblimit = 27
var quantTabB = byte(30 | 64) // Table 3-B.2b: high-rate, sblimit = 30
var quantTabC = byte(8)       // Table 3-B.2c:  low-rate, sblimit =  8
var quantTabD = byte(12)      // Table 3-B.2d:  low-rate, sblimit = 12

var quantLutStep2 = [][]byte{
	// 44.1 kHz, 48 kHz, 32 kHz
	{quantTabC, quantTabC, quantTabD}, // 32 - 48 kbit/sec/ch
	{quantTabA, quantTabA, quantTabA}, // 56 - 80 kbit/sec/ch
	{quantTabB, quantTabA, quantTabB}, // 96+	 kbit/sec/ch
}

// Quantizer lookup, step 3: B2 table, subband -> nbal, row Index (upper 4 bits: nbal, lower 4 bits: row Index).
var quantLutStep3 = [][]byte{
	// Low-rate table (3-B.2c and 3-B.2d)
	{
		0x44, 0x44,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
	},
	// High-rate table (3-B.2a and 3-B.2b)
	{
		0x43, 0x43, 0x43,
		0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
		0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31,
		0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	},
	// MPEG-2 LSR table (B.2 in ISO 13818-3)
	{
		0x45, 0x45, 0x45, 0x45,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
	},
}

// Quantizer lookup, step 4: table row, allocation[] Value -> quant table Index.
var quantLutStep4 = [][]byte{
	{0, 1, 2, 17},
	{0, 1, 2, 3, 4, 5, 6, 17},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 17},
	{0, 1, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
	{0, 1, 2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
}

var quantTab = []quantizerSpec{
	{3, 1, 5},      //  1
	{5, 1, 7},      //  2
	{7, 0, 3},      //  3
	{9, 1, 10},     //  4
	{15, 0, 4},     //  5
	{31, 0, 5},     //  6
	{63, 0, 6},     //  7
	{127, 0, 7},    //  8
	{255, 0, 8},    //  9
	{511, 0, 9},    // 10
	{1023, 0, 10},  // 11
	{2047, 0, 11},  // 12
	{4095, 0, 12},  // 13
	{8191, 0, 13},  // 14
	{16383, 0, 14}, // 15
	{32767, 0, 15}, // 16
	{65535, 0, 16}, // 17
}

// Dequantization constants per quantTab entry. Ungrouped codes map through
// sample' = (code*factor - 1 + D) * C; grouped codes index a degrouping
// table holding the final fraction values for all three samples at once.
var (
	quantFactor  [17]float32
	quantC       [17]float32
	quantD       [17]float32
	quantDegroup [17][]float32
)

func init() {
	for i, q := range quantTab {
		if q.Group != 0 {
			quantDegroup[i] = degroupTable(int(q.Levels))

			continue
		}

		bits := float64(q.Bits)
		quantFactor[i] = float32(math.Pow(2, 1-bits))
		quantC[i] = float32(math.Pow(2, bits) / float64(q.Levels))
		quantD[i] = float32(math.Pow(2, 1-bits))
	}
}

// degroupTable expands every combined sample code of a grouped quantizer
// into its three reconstructed fractions, samplecode*3 apart.
func degroupTable(levels int) []float32 {
	t := make([]float32, levels*levels*levels*3)

	for code := 0; code < levels*levels*levels; code++ {
		v := code
		for i := 0; i < 3; i++ {
			s := v % levels
			v /= levels
			t[code*3+i] = float32(2*s-levels+1) / float32(levels)
		}
	}

	return t
}

// layer2AllocationInfo resolves the allocation field width and the
// allocation-to-quantizer row for one subband of the current frame.
func layer2AllocationInfo(h *Header, sb int) (int, []byte) {
	tab3 := 2 // MPEG-2 LSF shares one table for all rates
	if h.Version() == mpeg1 {
		tab1 := 1
		if h.Mode() == modeSingleChannel {
			tab1 = 0
		}
		tab2 := quantLutStep1[tab1][h.bitrateIndex-1]
		tab3 = int(quantLutStep2[tab2][h.sampleFrequency]) >> 6
	}

	tab4 := quantLutStep3[tab3][sb]

	return int(tab4 >> 4), quantLutStep4[tab4&15]
}

// subbandLayer2 decodes one Layer II subband of a single channel stream:
// twelve groups of three samples, with up to three scalefactors shared
// between group triplets according to the scalefactor-select code.
type subbandLayer2 struct {
	subbandNumber int
	qIndex        int
	codeLength    int
	grouped       bool
	factor        float32
	c             float32
	d             float32
	degroup       []float32

	scfsi        uint32
	scalefactors [3]float32

	groupNumber  int
	sfIdx        int
	sampleNumber int
	samples      [3]float32
}

func (s *subbandLayer2) readAllocation(bs *Bitstream, h *Header, crc *CRC16) error {
	nbal, row := layer2AllocationInfo(h, s.subbandNumber)

	alloc := bs.getBits(nbal)
	if crc != nil {
		crc.AddBits(alloc, nbal)
	}
	if int(alloc) >= len(row) {
		return fmt.Errorf("%w: illegal subband allocation", ErrUnknownFormat)
	}

	s.qIndex = int(row[alloc])
	if s.qIndex != 0 {
		q := quantTab[s.qIndex-1]
		s.codeLength = int(q.Bits)
		s.grouped = q.Group != 0
		s.factor = quantFactor[s.qIndex-1]
		s.c = quantC[s.qIndex-1]
		s.d = quantD[s.qIndex-1]
		s.degroup = quantDegroup[s.qIndex-1]
	}

	return nil
}

func (s *subbandLayer2) readScaleFactorSelection(bs *Bitstream, crc *CRC16) {
	if s.qIndex != 0 {
		s.scfsi = bs.getBits(2)
		if crc != nil {
			crc.AddBits(s.scfsi, 2)
		}
	}
}

func readScalefactorTriplet(bs *Bitstream, scfsi uint32, out *[3]float32) {
	switch scfsi {
	case 0:
		out[0] = scalefactors[bs.getBits(6)]
		out[1] = scalefactors[bs.getBits(6)]
		out[2] = scalefactors[bs.getBits(6)]
	case 1:
		out[0] = scalefactors[bs.getBits(6)]
		out[1] = out[0]
		out[2] = scalefactors[bs.getBits(6)]
	case 2:
		out[0] = scalefactors[bs.getBits(6)]
		out[1] = out[0]
		out[2] = out[0]
	default:
		out[0] = scalefactors[bs.getBits(6)]
		out[1] = scalefactors[bs.getBits(6)]
		out[2] = out[1]
	}
}

func (s *subbandLayer2) readScaleFactor(bs *Bitstream, h *Header) {
	if s.qIndex != 0 {
		readScalefactorTriplet(bs, s.scfsi, &s.scalefactors)
	}
}

func (s *subbandLayer2) readSampleData(bs *Bitstream) bool {
	if s.qIndex != 0 {
		if s.grouped {
			code := int(bs.getBits(s.codeLength)) * 3
			s.samples[0] = s.degroup[code]
			s.samples[1] = s.degroup[code+1]
			s.samples[2] = s.degroup[code+2]
		} else {
			s.samples[0] = float32(bs.getBits(s.codeLength))*s.factor - 1.0
			s.samples[1] = float32(bs.getBits(s.codeLength))*s.factor - 1.0
			s.samples[2] = float32(bs.getBits(s.codeLength))*s.factor - 1.0
		}
	}

	s.sampleNumber = 0
	s.sfIdx = s.groupNumber >> 2
	s.groupNumber++
	if s.groupNumber == 12 {
		s.groupNumber = 0

		return true
	}

	return false
}

func (s *subbandLayer2) dequant(i int) float32 {
	v := s.samples[i]
	if !s.grouped {
		v = (v + s.d) * s.c
	}

	return v
}

func (s *subbandLayer2) putNextSample(f1, f2 *SynthesisFilter) bool {
	if s.qIndex != 0 {
		f1.InputSample(s.dequant(s.sampleNumber)*s.scalefactors[s.sfIdx], s.subbandNumber)
	}

	s.sampleNumber++
	if s.sampleNumber == 3 {
		s.sampleNumber = 0

		return true
	}

	return false
}

// subbandLayer2IntensityStereo shares one sample stream between channels,
// each with its own scalefactors.
type subbandLayer2IntensityStereo struct {
	subbandLayer2
	channel2Scfsi        uint32
	channel2Scalefactors [3]float32
}

func (s *subbandLayer2IntensityStereo) readScaleFactorSelection(bs *Bitstream, crc *CRC16) {
	if s.qIndex != 0 {
		s.scfsi = bs.getBits(2)
		s.channel2Scfsi = bs.getBits(2)
		if crc != nil {
			crc.AddBits(s.scfsi, 2)
			crc.AddBits(s.channel2Scfsi, 2)
		}
	}
}

func (s *subbandLayer2IntensityStereo) readScaleFactor(bs *Bitstream, h *Header) {
	if s.qIndex != 0 {
		readScalefactorTriplet(bs, s.scfsi, &s.scalefactors)
		readScalefactorTriplet(bs, s.channel2Scfsi, &s.channel2Scalefactors)
	}
}

func (s *subbandLayer2IntensityStereo) putNextSample(f1, f2 *SynthesisFilter) bool {
	if s.qIndex != 0 {
		v := s.dequant(s.sampleNumber)
		f1.InputSample(v*s.scalefactors[s.sfIdx], s.subbandNumber)
		f2.InputSample(v*s.channel2Scalefactors[s.sfIdx], s.subbandNumber)
	}

	s.sampleNumber++
	if s.sampleNumber == 3 {
		s.sampleNumber = 0

		return true
	}

	return false
}

// subbandLayer2Stereo carries two fully independent channels.
type subbandLayer2Stereo struct {
	subbandLayer2
	channel2 subbandLayer2
}

func (s *subbandLayer2Stereo) readAllocation(bs *Bitstream, h *Header, crc *CRC16) error {
	if err := s.subbandLayer2.readAllocation(bs, h, crc); err != nil {
		return err
	}

	return s.channel2.readAllocation(bs, h, crc)
}

func (s *subbandLayer2Stereo) readScaleFactorSelection(bs *Bitstream, crc *CRC16) {
	s.subbandLayer2.readScaleFactorSelection(bs, crc)
	s.channel2.readScaleFactorSelection(bs, crc)
}

func (s *subbandLayer2Stereo) readScaleFactor(bs *Bitstream, h *Header) {
	s.subbandLayer2.readScaleFactor(bs, h)
	s.channel2.readScaleFactor(bs, h)
}

func (s *subbandLayer2Stereo) readSampleData(bs *Bitstream) bool {
	s.subbandLayer2.readSampleData(bs)

	return s.channel2.readSampleData(bs)
}

func (s *subbandLayer2Stereo) putNextSample(f1, f2 *SynthesisFilter) bool {
	s.subbandLayer2.putNextSample(f1, f2)

	return s.channel2.putNextSample(f2, nil)
}

// layer2Decoder decodes one Layer II frame: 12 groups of three samples per
// subband, 1152 PCM samples per channel. The group loops are shared with
// Layer I; only the subband variants differ.
type layer2Decoder struct {
	layer1Decoder
}

func newLayer2Decoder(bs *Bitstream, h *Header, f1, f2 *SynthesisFilter, out Output) *layer2Decoder {
	return &layer2Decoder{layer1Decoder{stream: bs, header: h, filter1: f1, filter2: f2, buffer: out}}
}

func (d *layer2Decoder) decodeFrame() error {
	d.num = d.header.numberOfSubbands()
	d.mode = d.header.Mode()
	d.createSubbands()

	crc := d.frameCRC()

	if err := d.readAllocation(crc); err != nil {
		return err
	}
	d.readScaleFactorSelection(crc)

	if crc != nil && !d.header.checksumOK() {
		return errCRCMismatch
	}

	d.readScaleFactors()
	d.readSampleData()

	return nil
}

func (d *layer2Decoder) createSubbands() {
	switch {
	case d.mode == modeSingleChannel:
		for i := 0; i < d.num; i++ {
			d.subbands[i] = &subbandLayer2{subbandNumber: i}
		}
	case d.mode == modeJointStereo:
		bound := d.header.intensityStereoBound()
		for i := 0; i < bound; i++ {
			d.subbands[i] = newSubbandLayer2Stereo(i)
		}
		for i := bound; i < d.num; i++ {
			d.subbands[i] = &subbandLayer2IntensityStereo{subbandLayer2: subbandLayer2{subbandNumber: i}}
		}
	default:
		for i := 0; i < d.num; i++ {
			d.subbands[i] = newSubbandLayer2Stereo(i)
		}
	}
}

func newSubbandLayer2Stereo(i int) *subbandLayer2Stereo {
	return &subbandLayer2Stereo{
		subbandLayer2: subbandLayer2{subbandNumber: i},
		channel2:      subbandLayer2{subbandNumber: i},
	}
}
