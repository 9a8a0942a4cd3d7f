// Package quality parses Phred quality strings and derives how many low
// quality residues to soft clip from each end of a read.
//
//	Q = -10 * log10(P_error)
//
// Q20 is one error in a hundred calls, Q30 one in a thousand.
package quality

import "fmt"

// Phred range accepted from Phred+33 strings.
const (
	PhredMin = 0
	PhredMax = 41
)

// QualityError is implemented by every error of this package.
type QualityError interface {
	error
	IsQualityError()
}

// EmptyScoresError is returned when quality scores are empty.
type EmptyScoresError struct{}

func (e *EmptyScoresError) Error() string {
	return "quality scores cannot be empty"
}
func (e *EmptyScoresError) IsQualityError() {}

// InvalidEncodingError is returned for a character outside Phred+33.
type InvalidEncodingError struct {
	Position int
	Char     rune
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid quality character '%c' at position %d", e.Char, e.Position)
}
func (e *InvalidEncodingError) IsQualityError() {}

// LengthMismatchError is returned when scores do not cover the read.
type LengthMismatchError struct {
	Scores, Read int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%d quality scores for a read of %d residues", e.Scores, e.Read)
}
func (e *LengthMismatchError) IsQualityError() {}

// Scores are per residue Phred qualities of a read, in stored orientation.
type Scores struct {
	Values []int
}

// FromPhred33 decodes a Phred+33 string (Illumina 1.8 and later).
func FromPhred33(encoded string) (*Scores, error) {
	if len(encoded) == 0 {
		return nil, &EmptyScoresError{}
	}

	values := make([]int, len(encoded))
	for i := 0; i < len(encoded); i++ {
		q := int(encoded[i]) - 33
		if q < PhredMin || q > PhredMax {
			return nil, &InvalidEncodingError{Position: i, Char: rune(encoded[i])}
		}
		values[i] = q
	}
	return &Scores{Values: values}, nil
}

// Len returns the number of scores.
func (s *Scores) Len() int {
	return len(s.Values)
}

// Average returns the mean quality.
func (s *Scores) Average() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range s.Values {
		sum += v
	}
	return float64(sum) / float64(len(s.Values))
}

// ToPhred33 encodes the scores back to a Phred+33 string.
func (s *Scores) ToPhred33() string {
	buf := make([]byte, len(s.Values))
	for i, v := range s.Values {
		buf[i] = byte(v + 33)
	}
	return string(buf)
}
