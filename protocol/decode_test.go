package protocol_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/diskdb/diskdb-go/protocol"
)

func TestDecodeStrings(t *testing.T) {
	got := protocol.DecodeStrings([]string{"a", "b", "c"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("DecodeStrings() = %v", got)
	}

	if got := protocol.DecodeStrings(nil); got == nil || len(got) != 0 {
		t.Errorf("DecodeStrings(nil) = %v, want empty slice", got)
	}
}

func TestDecodeStringSet(t *testing.T) {
	got := protocol.DecodeStringSet([]string{"red", "green", "red", "blue"})
	want := map[string]struct{}{
		"red":   {},
		"green": {},
		"blue":  {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeStringSet() = %v, want %v", got, want)
	}
}

func TestDecodePairs(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []protocol.Pair
		wantErr bool
	}{
		{
			name:  "ordered pairs",
			lines: []string{"name", "Alice", "age", "30"},
			want: []protocol.Pair{
				{Field: "name", Value: "Alice"},
				{Field: "age", Value: "30"},
			},
		},
		{
			name:  "empty frame",
			lines: nil,
			want:  []protocol.Pair{},
		},
		{
			name:    "odd length",
			lines:   []string{"name", "Alice", "age"},
			wantErr: true,
		},
		{
			name:    "single line",
			lines:   []string{"orphan"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := protocol.DecodePairs(tt.lines)
			if tt.wantErr {
				var perr *protocol.ProtocolError
				if !errors.As(err, &perr) {
					t.Fatalf("error = %v, want *ProtocolError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePairs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodePairs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeScoredMembers(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []protocol.ScoredMember
		wantErr bool
	}{
		{
			name:  "members with scores",
			lines: []string{"alice", "1.5", "bob", "2"},
			want: []protocol.ScoredMember{
				{Member: "alice", Score: 1.5},
				{Member: "bob", Score: 2},
			},
		},
		{
			name:    "odd length",
			lines:   []string{"alice", "1.5", "bob"},
			wantErr: true,
		},
		{
			name:    "unparsable score",
			lines:   []string{"alice", "high"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := protocol.DecodeScoredMembers(tt.lines)
			if tt.wantErr {
				var perr *protocol.ProtocolError
				if !errors.As(err, &perr) {
					t.Fatalf("error = %v, want *ProtocolError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeScoredMembers() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeScoredMembers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeStreamEntries(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []protocol.StreamEntry
		wantErr bool
	}{
		{
			name:  "single entry",
			lines: []string{"1526919030474-0", "sensor", "thermostat", "value", "21.5"},
			want: []protocol.StreamEntry{
				{
					ID: "1526919030474-0",
					Fields: []protocol.Pair{
						{Field: "sensor", Value: "thermostat"},
						{Field: "value", Value: "21.5"},
					},
				},
			},
		},
		{
			name: "multiple entries",
			lines: []string{
				"1-0", "a", "1",
				"2-0", "b", "2", "c", "3",
			},
			want: []protocol.StreamEntry{
				{ID: "1-0", Fields: []protocol.Pair{{Field: "a", Value: "1"}}},
				{ID: "2-0", Fields: []protocol.Pair{{Field: "b", Value: "2"}, {Field: "c", Value: "3"}}},
			},
		},
		{
			name:  "entry with no fields",
			lines: []string{"1-0", "2-0", "a", "1"},
			want: []protocol.StreamEntry{
				{ID: "1-0"},
				{ID: "2-0", Fields: []protocol.Pair{{Field: "a", Value: "1"}}},
			},
		},
		{
			name:  "empty frame",
			lines: nil,
			want:  []protocol.StreamEntry{},
		},
		{
			name:  "id-shaped value consumed as payload",
			lines: []string{"1-0", "deadline", "99-1"},
			want: []protocol.StreamEntry{
				{ID: "1-0", Fields: []protocol.Pair{{Field: "deadline", Value: "99-1"}}},
			},
		},
		{
			name:    "field line before any entry",
			lines:   []string{"sensor", "thermostat"},
			wantErr: true,
		},
		{
			name:    "dangling field line",
			lines:   []string{"1-0", "sensor"},
			wantErr: true,
		},
		{
			// An id-shaped token in field position opens a bogus record and
			// leaves the real one misframed. The dangling line that results
			// must surface, not vanish.
			name:    "id-shaped field name misframes",
			lines:   []string{"1-0", "7-7", "orphan"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := protocol.DecodeStreamEntries(tt.lines)
			if tt.wantErr {
				var perr *protocol.ProtocolError
				if !errors.As(err, &perr) {
					t.Fatalf("error = %v, want *ProtocolError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeStreamEntries() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeStreamEntries() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
