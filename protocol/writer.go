package protocol

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Writer encodes DiskDB commands onto an output stream
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a new command writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bw: bufio.NewWriter(w),
	}
}

// WriteCommand encodes a command line and buffers it for transmission.
// Call Flush to push the bytes to the underlying writer.
func (w *Writer) WriteCommand(name string, args ...string) error {
	line, err := BuildCommand(name, args...)
	if err != nil {
		return err
	}
	if _, err := w.bw.WriteString(line); err != nil {
		return err
	}
	_, err = w.bw.WriteString(LineDelimiter)
	return err
}

// Flush flushes any buffered data to the underlying writer
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Reset resets the writer to write to a new underlying writer
func (w *Writer) Reset(writer io.Writer) {
	w.bw.Reset(writer)
}

// BuildCommand produces a single wire line: the command name and its
// arguments space-joined, without the trailing delimiter.
//
// The protocol has no quoting, so an argument containing the line delimiter
// (or a carriage return, which the server's line trimming would corrupt) is
// not representable; such arguments are rejected with a ProtocolError before
// any bytes reach the wire. Arguments containing spaces are a documented
// protocol limitation: the server will split them into separate arguments.
func BuildCommand(name string, args ...string) (string, error) {
	if name == "" {
		return "", &ProtocolError{Message: "empty command name"}
	}
	if err := checkArgument(name); err != nil {
		return "", err
	}

	if len(args) == 0 {
		return name, nil
	}

	var sb strings.Builder
	sb.Grow(len(name) + 16*len(args))
	sb.WriteString(name)
	for _, arg := range args {
		if err := checkArgument(arg); err != nil {
			return "", err
		}
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}
	return sb.String(), nil
}

// checkArgument rejects arguments the line protocol cannot carry.
func checkArgument(arg string) error {
	if strings.IndexByte(arg, '\n') >= 0 || strings.IndexByte(arg, '\r') >= 0 {
		return &ProtocolError{
			Message: "argument contains line delimiter",
			Data:    []byte(arg),
		}
	}
	return nil
}

// FormatInt formats an integer argument in minimal decimal form.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatScore formats a sorted-set score in the shortest decimal text that
// round-trips through ParseScore, locale-independent.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// ParseScore parses a score emitted by the server or FormatScore.
func ParseScore(s string) (float64, error) {
	score, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ProtocolError{
			Message: "invalid score: " + s,
			Data:    []byte(s),
		}
	}
	return score, nil
}
