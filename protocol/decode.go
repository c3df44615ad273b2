package protocol

import "fmt"

// This file turns a framed line sequence (one Multi-Value Frame, in arrival
// order) into the typed result of the command family that produced it. The
// frame carries no structure beyond line boundaries, so each decoder encodes
// the family's regrouping rule.

// DecodeStrings decodes an ordered-sequence frame (list ranges, plain
// sorted-set ranges). The lines are the result, in arrival order.
func DecodeStrings(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

// DecodeStringSet decodes a member-enumeration frame into a set. Duplicate
// lines collapse; a well-behaved server never sends them, but decoding must
// not fail if one does.
func DecodeStringSet(lines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}

// DecodePairs decodes an interleaved field/value frame. Lines are consumed
// two at a time in arrival order. A trailing unpaired line is a wire-format
// violation and yields a ProtocolError rather than being dropped.
func DecodePairs(lines []string) ([]Pair, error) {
	if len(lines)%2 != 0 {
		return nil, &ProtocolError{
			Message: fmt.Sprintf("interleaved pair frame has odd length %d", len(lines)),
		}
	}

	pairs := make([]Pair, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		pairs = append(pairs, Pair{Field: lines[i], Value: lines[i+1]})
	}
	return pairs, nil
}

// DecodeScoredMembers decodes an interleaved member/score frame. Scores are
// parsed as floating point; an unparsable score or an odd-length frame is a
// ProtocolError.
func DecodeScoredMembers(lines []string) ([]ScoredMember, error) {
	if len(lines)%2 != 0 {
		return nil, &ProtocolError{
			Message: fmt.Sprintf("member/score frame has odd length %d", len(lines)),
		}
	}

	members := make([]ScoredMember, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		score, err := ParseScore(lines[i+1])
		if err != nil {
			return nil, err
		}
		members = append(members, ScoredMember{Member: lines[i], Score: score})
	}
	return members, nil
}

// DecodeStreamEntries decodes a stream-range frame. Record boundaries are
// lexical: a token matching IsEntryID opens a new record, and the lines that
// follow are that record's field/value pairs until the next ID token or the
// end of the frame.
//
// Because the boundary check is lexical, a field name or value that itself
// matches the entry-ID shape is read as a new record. The protocol gives no
// way to tell the two apart; when the misframe leaves a record with a
// dangling field line, it surfaces as a ProtocolError. Lines arriving before
// the first ID token violate the frame shape outright.
func DecodeStreamEntries(lines []string) ([]StreamEntry, error) {
	entries := make([]StreamEntry, 0)

	i := 0
	for i < len(lines) {
		if !IsEntryID(lines[i]) {
			return nil, &ProtocolError{
				Message: "expected stream entry ID, got field line",
				Data:    []byte(lines[i]),
			}
		}

		entry := StreamEntry{ID: lines[i]}
		i++

		for i < len(lines) && !IsEntryID(lines[i]) {
			if i+1 >= len(lines) {
				return nil, &ProtocolError{
					Message: "stream entry " + entry.ID + " has unpaired field line",
					Data:    []byte(lines[i]),
				}
			}
			entry.Fields = append(entry.Fields, Pair{Field: lines[i], Value: lines[i+1]})
			i += 2
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
