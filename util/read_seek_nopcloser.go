package util

import "io"

type readSeekNopCloser struct {
	io.ReadSeeker
}

func (r *readSeekNopCloser) Close() error {
	return nil
}

// NewReadSeekNopCloser wraps an in-memory reader, such as a stored recording
// held in a byte slice, as an io.ReadSeekCloser with a no-op Close.
func NewReadSeekNopCloser(rs io.ReadSeeker) io.ReadSeekCloser {
	return &readSeekNopCloser{rs}
}
