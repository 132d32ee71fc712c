package mpa

import (
	"fmt"
	"math"
)

// subband is the per-subband field reader for Layers I and II. One instance
// handles one subband of one frame; the channel-mode variants differ in how
// many allocation/scalefactor/sample fields a subband carries.
//
// readSampleData reports when the last sample group of the frame has been
// read; putNextSample reports when the current group is exhausted and the
// next one must be read.
type subband interface {
	readAllocation(bs *Bitstream, h *Header, crc *CRC16) error
	readScaleFactorSelection(bs *Bitstream, crc *CRC16)
	readScaleFactor(bs *Bitstream, h *Header)
	readSampleData(bs *Bitstream) bool
	putNextSample(f1, f2 *SynthesisFilter) bool
}

// scalefactors holds the Layer I/II multipliers: 2 at index 0, one third of
// an octave down per step. Index 63 is unused by the format and stays zero.
var scalefactors [64]float32

// Layer I requantization constants per allocation code: a code of n selects
// an n+1 bit quantizer, sample' = sample*factor + offset.
var (
	layer1Factor [15]float32
	layer1Offset [15]float32
)

func init() {
	for i := 0; i < 63; i++ {
		scalefactors[i] = float32(math.Pow(2, 1-float64(i)/3))
	}

	for n := 1; n < 15; n++ {
		steps := math.Pow(2, float64(n+1))
		layer1Factor[n] = float32(2 / (steps - 1))
		layer1Offset[n] = float32((math.Pow(2, float64(-n)) - 1) * steps / (steps - 1))
	}
}

// subbandLayer1 decodes one Layer I subband of a single channel stream.
type subbandLayer1 struct {
	subbandNumber int
	sampleNumber  int
	allocation    uint32
	sampleLength  int
	scalefactor   float32
	sample        float32
	factor        float32
	offset        float32
}

func (s *subbandLayer1) readAllocation(bs *Bitstream, h *Header, crc *CRC16) error {
	s.allocation = bs.getBits(4)
	if s.allocation == 15 {
		return fmt.Errorf("%w: illegal subband allocation", ErrUnknownFormat)
	}

	if crc != nil {
		crc.AddBits(s.allocation, 4)
	}

	if s.allocation != 0 {
		s.sampleLength = int(s.allocation) + 1
		s.factor = layer1Factor[s.allocation]
		s.offset = layer1Offset[s.allocation]
	}

	return nil
}

func (s *subbandLayer1) readScaleFactorSelection(bs *Bitstream, crc *CRC16) {
	// Layer I has one scalefactor per subband, nothing to select.
}

func (s *subbandLayer1) readScaleFactor(bs *Bitstream, h *Header) {
	if s.allocation != 0 {
		s.scalefactor = scalefactors[bs.getBits(6)]
	}
}

func (s *subbandLayer1) readSampleData(bs *Bitstream) bool {
	if s.allocation != 0 {
		s.sample = float32(bs.getBits(s.sampleLength))
	}

	s.sampleNumber++
	if s.sampleNumber == 12 {
		s.sampleNumber = 0

		return true
	}

	return false
}

func (s *subbandLayer1) putNextSample(f1, f2 *SynthesisFilter) bool {
	if s.allocation != 0 {
		scaled := (s.sample*s.factor + s.offset) * s.scalefactor
		f1.InputSample(scaled, s.subbandNumber)
	}

	return true
}

// subbandLayer1IntensityStereo carries one sample stream scaled by two
// channel scalefactors.
type subbandLayer1IntensityStereo struct {
	subbandLayer1
	channel2Scalefactor float32
}

func (s *subbandLayer1IntensityStereo) readScaleFactor(bs *Bitstream, h *Header) {
	if s.allocation != 0 {
		s.scalefactor = scalefactors[bs.getBits(6)]
		s.channel2Scalefactor = scalefactors[bs.getBits(6)]
	}
}

func (s *subbandLayer1IntensityStereo) putNextSample(f1, f2 *SynthesisFilter) bool {
	if s.allocation != 0 {
		base := s.sample*s.factor + s.offset
		f1.InputSample(base*s.scalefactor, s.subbandNumber)
		f2.InputSample(base*s.channel2Scalefactor, s.subbandNumber)
	}

	return true
}

// subbandLayer1Stereo carries two fully independent channels.
type subbandLayer1Stereo struct {
	subbandLayer1
	channel2Allocation   uint32
	channel2SampleLength int
	channel2Scalefactor  float32
	channel2Sample       float32
	channel2Factor       float32
	channel2Offset       float32
}

func (s *subbandLayer1Stereo) readAllocation(bs *Bitstream, h *Header, crc *CRC16) error {
	if err := s.subbandLayer1.readAllocation(bs, h, crc); err != nil {
		return err
	}

	s.channel2Allocation = bs.getBits(4)
	if s.channel2Allocation == 15 {
		return fmt.Errorf("%w: illegal subband allocation", ErrUnknownFormat)
	}

	if crc != nil {
		crc.AddBits(s.channel2Allocation, 4)
	}

	if s.channel2Allocation != 0 {
		s.channel2SampleLength = int(s.channel2Allocation) + 1
		s.channel2Factor = layer1Factor[s.channel2Allocation]
		s.channel2Offset = layer1Offset[s.channel2Allocation]
	}

	return nil
}

func (s *subbandLayer1Stereo) readScaleFactor(bs *Bitstream, h *Header) {
	s.subbandLayer1.readScaleFactor(bs, h)
	if s.channel2Allocation != 0 {
		s.channel2Scalefactor = scalefactors[bs.getBits(6)]
	}
}

func (s *subbandLayer1Stereo) readSampleData(bs *Bitstream) bool {
	if s.channel2Allocation != 0 {
		s.channel2Sample = float32(bs.getBits(s.channel2SampleLength))
	}

	return s.subbandLayer1.readSampleData(bs)
}

func (s *subbandLayer1Stereo) putNextSample(f1, f2 *SynthesisFilter) bool {
	s.subbandLayer1.putNextSample(f1, f2)
	if s.channel2Allocation != 0 {
		scaled := (s.channel2Sample*s.channel2Factor + s.channel2Offset) * s.channel2Scalefactor
		f2.InputSample(scaled, s.subbandNumber)
	}

	return true
}

// layer1Decoder decodes one Layer I frame: 12 sample groups of one sample
// per subband, 384 PCM samples per channel.
type layer1Decoder struct {
	stream   *Bitstream
	header   *Header
	filter1  *SynthesisFilter
	filter2  *SynthesisFilter
	buffer   Output
	subbands [32]subband
	mode     int
	num      int
}

func newLayer1Decoder(bs *Bitstream, h *Header, f1, f2 *SynthesisFilter, out Output) *layer1Decoder {
	return &layer1Decoder{stream: bs, header: h, filter1: f1, filter2: f2, buffer: out}
}

func (d *layer1Decoder) decodeFrame() error {
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

func (d *layer1Decoder) createSubbands() {
	switch {
	case d.mode == modeSingleChannel:
		for i := 0; i < d.num; i++ {
			d.subbands[i] = &subbandLayer1{subbandNumber: i}
		}
	case d.mode == modeJointStereo:
		bound := d.header.intensityStereoBound()
		for i := 0; i < bound; i++ {
			d.subbands[i] = &subbandLayer1Stereo{subbandLayer1: subbandLayer1{subbandNumber: i}}
		}
		for i := bound; i < d.num; i++ {
			d.subbands[i] = &subbandLayer1IntensityStereo{subbandLayer1: subbandLayer1{subbandNumber: i}}
		}
	default:
		for i := 0; i < d.num; i++ {
			d.subbands[i] = &subbandLayer1Stereo{subbandLayer1: subbandLayer1{subbandNumber: i}}
		}
	}
}

func (d *layer1Decoder) frameCRC() *CRC16 {
	if d.header.Protected() {
		return &d.header.crc
	}

	return nil
}

func (d *layer1Decoder) readAllocation(crc *CRC16) error {
	for i := 0; i < d.num; i++ {
		if err := d.subbands[i].readAllocation(d.stream, d.header, crc); err != nil {
			return err
		}
	}

	return nil
}

func (d *layer1Decoder) readScaleFactorSelection(crc *CRC16) {
	for i := 0; i < d.num; i++ {
		d.subbands[i].readScaleFactorSelection(d.stream, crc)
	}
}

func (d *layer1Decoder) readScaleFactors() {
	for i := 0; i < d.num; i++ {
		d.subbands[i].readScaleFactor(d.stream, d.header)
	}
}

// readSampleData drains the frame's sample groups, feeding the synthesis
// filters one 32-subband batch at a time.
func (d *layer1Decoder) readSampleData() {
	stereo := d.header.Channels() == 2

	readDone := false
	for !readDone {
		for i := 0; i < d.num; i++ {
			readDone = d.subbands[i].readSampleData(d.stream)
		}

		writeDone := false
		for !writeDone {
			for i := 0; i < d.num; i++ {
				writeDone = d.subbands[i].putNextSample(d.filter1, d.filter2)
			}

			d.filter1.CalculatePCM(d.buffer)
			if stereo {
				d.filter2.CalculatePCM(d.buffer)
			}
		}
	}
}
