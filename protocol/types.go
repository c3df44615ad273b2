package protocol

import (
	"fmt"
	"strings"
)

const (
	// LineDelimiter terminates every command and reply line.
	LineDelimiter = "\n"

	// ErrorPrefix marks a server-side failure reply.
	ErrorPrefix = "ERROR:"

	// NilMarker is the reply for an absent value.
	NilMarker = "(nil)"

	// OKStatus is the reply for a successful status command.
	OKStatus = "OK"

	// WrongTypeMarker appears in error messages when a command was issued
	// against a key holding an incompatible data type. The protocol carries
	// no structured error codes, so this substring is the only signal.
	WrongTypeMarker = "WRONGTYPE"
)

// ReplyKind classifies the shape of a server reply. The wire format is not
// self-describing: the kind is derived from the issued command plus lexical
// inspection of the first line only.
type ReplyKind int

const (
	// ReplyStatus is a single-line status such as "OK".
	ReplyStatus ReplyKind = iota

	// ReplyInteger is a single line of decimal text.
	ReplyInteger

	// ReplyBulk is a single line carrying a value or the nil marker.
	ReplyBulk

	// ReplyError is a single line starting with the error prefix.
	ReplyError
)

// String returns a human-readable name for the reply kind.
func (k ReplyKind) String() string {
	switch k {
	case ReplyStatus:
		return "status"
	case ReplyInteger:
		return "integer"
	case ReplyBulk:
		return "bulk"
	case ReplyError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ClassifyLine inspects a single reply line and returns its lexical kind.
// Only errors are unambiguous on the wire; status and integer shapes are
// recognized by convention, and everything else is reported as ReplyBulk.
// The caller must reinterpret the result according to the command it sent,
// since the protocol is not self-describing.
func ClassifyLine(line string) ReplyKind {
	switch {
	case strings.HasPrefix(line, ErrorPrefix):
		return ReplyError
	case line == OKStatus:
		return ReplyStatus
	case looksLikeInteger(line):
		return ReplyInteger
	default:
		return ReplyBulk
	}
}

func looksLikeInteger(s string) bool {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return allDigits(s)
}

// IsNil reports whether a reply line is the explicit absence marker.
func IsNil(line string) bool {
	return line == NilMarker
}

// ErrorMessage extracts the message from an error reply line. The prefix and
// surrounding whitespace are stripped; the message text is otherwise verbatim.
func ErrorMessage(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, ErrorPrefix))
}

// Pair is one field/value pair decoded from an interleaved-pair frame.
type Pair struct {
	Field string
	Value string
}

// ScoredMember is one member/score pair from a sorted-set frame.
type ScoredMember struct {
	Member string
	Score  float64
}

// StreamEntry is one stream record: an entry ID followed by field/value
// pairs, in frame order.
type StreamEntry struct {
	ID     string
	Fields []Pair
}

// IsEntryID reports whether a token is shaped like a stream entry ID:
// decimal digits, a single '-', decimal digits (e.g. "1526919030474-0").
//
// This predicate doubles as the in-frame record boundary marker for stream
// replies, because the protocol provides no structural framing. A field name
// or value that happens to match this shape is indistinguishable from a
// record boundary; the frame decoder surfaces the resulting inconsistency as
// a ProtocolError rather than guessing.
func IsEntryID(token string) bool {
	sep := strings.IndexByte(token, '-')
	if sep <= 0 || sep == len(token)-1 {
		return false
	}
	return allDigits(token[:sep]) && allDigits(token[sep+1:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
