package mpa

import "errors"

var (
	// ErrEndOfStream is returned when the stream ends at a frame boundary.
	// It signals normal termination, not a fault.
	ErrEndOfStream = errors.New("mpa: end of stream")

	// ErrUnknownFormat is returned on reserved or invalid header field
	// combinations. The stream is considered corrupt from that point on.
	ErrUnknownFormat = errors.New("mpa: unknown format")

	// ErrStream wraps failures of the underlying byte source.
	ErrStream = errors.New("mpa: stream error")

	// ErrConfiguration is returned for invalid construction-time parameters.
	ErrConfiguration = errors.New("mpa: invalid configuration")
)

// errCRCMismatch marks a frame whose stored checksum does not match the
// accumulated CRC. The decoder skips such frames and counts them.
var errCRCMismatch = errors.New("mpa: frame CRC mismatch")
