package bindings

import (
	"io"

	"github.com/pkg/errors"
)

type chunkStream struct {
	rc   io.ReadCloser
	buf  []byte
	done bool
}

// NewArchiveStream splits rc into chunks of chunkSize bytes.  Closing the
// stream closes rc.
func NewArchiveStream(rc io.ReadCloser, chunkSize int) (ArchiveStream, error) {
	if chunkSize <= 0 {
		return nil, errors.Errorf("invalid chunk size %d", chunkSize)
	}
	return &chunkStream{rc: rc, buf: make([]byte, chunkSize)}, nil
}

func (s *chunkStream) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	n, err := io.ReadFull(s.rc, s.buf)
	switch err {
	case nil:
		return s.buf[:n], nil
	case io.EOF:
		s.done = true
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		s.done = true
		return s.buf[:n], nil
	default:
		return nil, errors.Wrap(err, "reading archive stream")
	}
}

func (s *chunkStream) Close() error {
	return s.rc.Close()
}
