package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct {
	ID string
}

func (e *EmptySequenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("sequence %q must have at least one residue", e.ID)
	}
	return "sequence must have at least one residue"
}

func (e *EmptySequenceError) IsSequenceError() {}

// RangeError is returned when a sub-range does not fit in a sequence.
type RangeError struct {
	Start  int
	End    int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range [%d, %d) outside sequence of length %d", e.Start, e.End, e.Length)
}

func (e *RangeError) IsSequenceError() {}

// AlphabetError is returned when an operation does not apply to an alphabet.
type AlphabetError struct {
	Op       string
	Alphabet Alphabet
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("%s not available for %s sequences", e.Op, e.Alphabet)
}

func (e *AlphabetError) IsSequenceError() {}

// NotFoundError is returned by a Source that has no sequence with the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no sequence with id %q", e.ID)
}

func (e *NotFoundError) IsSequenceError() {}
