package mpa

import (
	"fmt"
	"io"
)

var (
	// BackBufferSize is the default number of most recently read bytes that
	// can be pushed back into a SourceReader.
	BackBufferSize = 4096
)

// SourceReader wraps an io.Reader and keeps a bounded window of the most
// recently read bytes so that they can be unread again. The decoder uses
// this for speculative frame-sync scanning: peek a header, verify it, and
// push the bytes back when the candidate frame turns out to be bogus.
type SourceReader struct {
	reader io.Reader

	history []byte
	pushed  int
	backCap int
}

// NewSourceReader creates a source reader with the default back buffer size.
func NewSourceReader(r io.Reader) *SourceReader {
	return &SourceReader{
		reader:  r,
		history: make([]byte, 0, BackBufferSize),
		backCap: BackBufferSize,
	}
}

// Reader returns the wrapped io.Reader.
func (s *SourceReader) Reader() io.Reader {
	return s.reader
}

// Read reads up to len(p) bytes, serving pushed-back bytes first. At the end
// of the underlying stream it returns 0, io.EOF.
func (s *SourceReader) Read(p []byte) (int, error) {
	if s.pushed > 0 {
		n := copy(p, s.history[len(s.history)-s.pushed:])
		s.pushed -= n

		return n, nil
	}

	n, err := s.reader.Read(p)
	if n > 0 {
		s.remember(p[:n])
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %v", ErrStream, err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// ReadFull reads exactly len(p) bytes unless the stream ends first, in which
// case it returns the number of bytes read and no error.
func (s *SourceReader) ReadFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := s.Read(p[total:])
		total += n

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Unread makes the most recently read count bytes readable again.
func (s *SourceReader) Unread(count int) error {
	if count+s.pushed > len(s.history) || count+s.pushed > s.backCap {
		return fmt.Errorf("%w: pushback of %d bytes exceeds back buffer", ErrStream, count)
	}

	s.pushed += count

	return nil
}

func (s *SourceReader) remember(p []byte) {
	s.history = append(s.history, p...)

	if over := len(s.history) - s.backCap; over > 0 {
		copy(s.history, s.history[over:])
		s.history = s.history[:s.backCap]
	}
}
