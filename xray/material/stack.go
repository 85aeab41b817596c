package material

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrInvalidPosition is returned for out-of-range stack positions.
	ErrInvalidPosition = errors.New("invalid stack position")

	errNilRecord = errors.New("record must not be nil")
)

// Stack is an ordered sequence of layers along the beam path.
//
// Stack is not safe for concurrent mutation. Iteration through [Stack.All]
// and [Stack.Snapshot] works on a copy, so the stack may be edited while a
// previous iteration is still running.
type Stack struct {
	records []*Record
}

// NewStack returns a stack holding records in order. Nil records are skipped.
func NewStack(records ...*Record) *Stack {
	s := &Stack{records: make([]*Record, 0, len(records))}
	for _, r := range records {
		if r != nil {
			s.records = append(s.records, r)
		}
	}
	return s
}

// Len returns the number of layers.
func (s *Stack) Len() int { return len(s.records) }

// At returns the layer at position i.
func (s *Stack) At(i int) (*Record, error) {
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrInvalidPosition, i, len(s.records))
	}
	return s.records[i], nil
}

// Append adds r at the end of the stack.
func (s *Stack) Append(r *Record) error {
	if r == nil {
		return errNilRecord
	}
	s.records = append(s.records, r)
	return nil
}

// Insert places r at position i, shifting later layers. Valid positions are
// 0 through Len(); the stack is unchanged on error.
func (s *Stack) Insert(i int, r *Record) error {
	if r == nil {
		return errNilRecord
	}
	if i < 0 || i > len(s.records) {
		return fmt.Errorf("%w: insert at %d (len %d)", ErrInvalidPosition, i, len(s.records))
	}
	s.records = slices.Insert(s.records, i, r)
	return nil
}

// Remove deletes and returns the layer at position i. Valid positions are 0
// through Len()-1; the stack is unchanged on error.
func (s *Stack) Remove(i int) (*Record, error) {
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("%w: remove at %d (len %d)", ErrInvalidPosition, i, len(s.records))
	}
	r := s.records[i]
	s.records = slices.Delete(s.records, i, i+1)
	return r, nil
}

// Snapshot returns a copy of the layer sequence.
func (s *Stack) Snapshot() []*Record {
	return slices.Clone(s.records)
}

// All iterates over a snapshot of the stack taken when iteration starts.
func (s *Stack) All() iter.Seq2[int, *Record] {
	return func(yield func(int, *Record) bool) {
		for i, r := range s.Snapshot() {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Labels returns [Record.Label] for every layer in order.
func (s *Stack) Labels() []string {
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Label()
	}
	return out
}

// Incomplete returns the positions of layers without an attenuation table.
func (s *Stack) Incomplete() []int {
	var out []int
	for i, r := range s.records {
		if !r.HasTable() {
			out = append(out, i)
		}
	}
	return out
}

// String lists the layers one per line as "1: W (1mm)".
func (s *Stack) String() string {
	var b strings.Builder
	for i, r := range s.records {
		fmt.Fprintf(&b, "%d: %s\n", i+1, r)
	}
	return b.String()
}
