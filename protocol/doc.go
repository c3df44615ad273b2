// Package protocol implements the DiskDB line protocol: command encoding,
// line-oriented reading, reply classification, and decoding of multi-value
// frames into typed results.
//
// The protocol is textual and newline-delimited. Commands are single lines of
// the form "NAME arg1 arg2 ... argN"; replies are one or more lines with no
// length prefix or frame terminator. Reply shape is therefore determined by
// the command that was issued, not by the bytes on the wire:
//
//   - "OK" signals status success
//   - decimal text signals a counter or length
//   - "(nil)" signals an absent value
//   - "ERROR: <message>" signals a server-side failure
//   - anything else is a bulk value or the first line of a multi-value frame
//
// Multi-value frames (ranges, member enumerations, hash dumps, stream
// entries) end only when the stream goes quiet; collecting them is the
// caller's job (see the client's framing window). This package decodes the
// collected lines into ordered sequences, sets, interleaved pairs,
// member/score pairs, and stream records.
//
// The protocol has no quoting or escaping. Arguments containing the line
// delimiter are unrepresentable and are rejected at encode time; arguments
// containing spaces would be split by the server into multiple arguments.
package protocol
