// Package mpa implements an MPEG-1/2/2.5 Audio decoder for Layers I, II and
// III (MP1/MP2/MP3 elementary streams).
//
// The high-level interface is the Decoder: wrap any io.Reader with NewDecoder
// and call DecodeFrame in a loop, or use Reader() to consume the decoded
// stream as interleaved signed 16-bit little-endian PCM. Stream parameters
// (sample rate, channel count, layer) are available once the first frame has
// been decoded.
//
//	dec := mpa.NewDecoder(file)
//	for {
//	    samples, err := dec.DecodeFrame()
//	    if errors.Is(err, mpa.ErrEndOfStream) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // samples is interleaved int16 PCM, reused by the next call
//	}
//
// The decoder synchronizes on frame sync words, skips ID3v2 tags, verifies
// CRCs on protected frames (mismatching frames are skipped and counted) and
// resynchronizes across corrupt regions. An optional 32-band Equalizer scales
// individual subbands before synthesis.
//
// A Decoder holds per-stream state (bit reservoir, synthesis filter history)
// and is not safe for concurrent use; create one Decoder per stream.
package mpa
