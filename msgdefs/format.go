package msgdefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

/*
Recordings carry the message definition of every connection they contain. ROS1
bag files and MCAP files are recognized by their leading magic bytes.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrUnsupportedFormat is returned for input that is neither a ROS1 bag nor an
// MCAP file.
var ErrUnsupportedFormat = errors.New("unsupported recording format")

// Format is a recording file format.
type Format int

const (
	// FormatUnknown is the zero Format.
	FormatUnknown Format = iota
	// FormatBag is a ROS1 bag, version 2.0.
	FormatBag
	// FormatMCAP is an MCAP file.
	FormatMCAP
)

func (f Format) String() string {
	switch f {
	case FormatBag:
		return "bag"
	case FormatMCAP:
		return "mcap"
	default:
		return "unknown"
	}
}

// nolint:gochecknoglobals
var (
	bagMagic  = []byte("#ROSBAG V2.0\n")
	mcapMagic = []byte{0x89, 'M', 'C', 'A', 'P', 0x30, '\r', '\n'}
)

// DetectFormat identifies the format of a recording from its magic bytes. The
// reader is left positioned at the start of the input.
func DetectFormat(r io.ReadSeeker) (Format, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return FormatUnknown, fmt.Errorf("failed to seek to start: %w", err)
	}
	buf := make([]byte, len(bagMagic))
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("failed to read magic: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return FormatUnknown, fmt.Errorf("failed to seek to start: %w", err)
	}
	buf = buf[:n]
	switch {
	case bytes.Equal(buf, bagMagic):
		return FormatBag, nil
	case bytes.HasPrefix(buf, mcapMagic):
		return FormatMCAP, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}
