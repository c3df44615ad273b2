package protocol

import (
	"bufio"
	"io"
	"strings"
)

// Reader reads delimiter-terminated wire lines from a stream.
//
// The reader owns the receive buffer. Its invariant: at most one partial
// (unterminated) line is ever held back, and it stays pending across read
// errors. A deadline that expires mid-line therefore does not lose bytes;
// the next ReadLine call resumes exactly where the stream stopped. This is
// what makes deadline-expiry usable as an end-of-frame signal.
type Reader struct {
	br      *bufio.Reader
	pending []byte
	read    int64
}

// NewReader creates a new line reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		br:      bufio.NewReader(r),
		pending: make([]byte, 0, 256),
	}
}

// ReadLine returns the next complete wire line with the delimiter and
// surrounding whitespace stripped. On error (deadline expiry, peer close)
// any partially received line remains pending and no input is lost.
func (r *Reader) ReadLine() (string, error) {
	chunk, err := r.br.ReadBytes('\n')
	r.pending = append(r.pending, chunk...)
	r.read += int64(len(chunk))
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(r.pending))
	r.pending = r.pending[:0]
	return line, nil
}

// HasPending reports whether a partial (unterminated) line is held back
// from an earlier read. While this is true the stream is mid-line: the held
// bytes belong to a line the peer has not finished sending.
func (r *Reader) HasPending() bool {
	return len(r.pending) > 0
}

// BytesRead returns the total number of payload bytes consumed so far.
func (r *Reader) BytesRead() int64 {
	return r.read
}

// Reset discards all buffered state and reads from a new underlying stream.
func (r *Reader) Reset(reader io.Reader) {
	r.br.Reset(reader)
	r.pending = r.pending[:0]
	r.read = 0
}
