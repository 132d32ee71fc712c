package mpa

// SamplesPerFrame is the largest PCM sample count per channel a single frame
// decodes to (Layer II, and Layer III at MPEG 1 rates).
const SamplesPerFrame = 1152

// Output receives reconstructed PCM. The synthesis filter appends 32 samples
// per call, one subband synthesis step at a time, in PCM scale but not yet
// clipped.
type Output interface {
	AppendSamples(channel int, samples []float32)
}

// SampleBuffer accumulates one frame of interleaved 16-bit PCM. Values are
// rounded away from zero and clipped to the int16 range.
type SampleBuffer struct {
	buffer   [2 * SamplesPerFrame]int16
	position [2]int
	channels int
}

// NewSampleBuffer creates a buffer for the given channel count (1 or 2).
func NewSampleBuffer(channels int) *SampleBuffer {
	sb := &SampleBuffer{channels: channels}
	sb.Clear()

	return sb
}

// AppendSamples implements Output.
func (sb *SampleBuffer) AppendSamples(channel int, samples []float32) {
	pos := sb.position[channel]

	for _, f := range samples {
		if f > 0 {
			f += 0.5
		} else {
			f -= 0.5
		}
		if f > 32767 {
			f = 32767
		} else if f < -32768 {
			f = -32768
		}

		sb.buffer[pos] = int16(f)
		pos += sb.channels
	}

	sb.position[channel] = pos
}

// Samples returns the interleaved PCM written since the last Clear.
func (sb *SampleBuffer) Samples() []int16 {
	return sb.buffer[:sb.position[0]]
}

// Clear resets the buffer for the next frame.
func (sb *SampleBuffer) Clear() {
	sb.position[0] = 0
	if sb.channels == 2 {
		sb.position[1] = 1
	} else {
		sb.position[1] = 0
	}
}
