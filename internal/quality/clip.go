package quality

// ClipLengths returns how many residues to clip from the start and the end
// of a read so that both ends begin with a score at or above threshold.
// A read with no such score is clipped entirely from the start.
func (s *Scores) ClipLengths(threshold int) (start, end int) {
	n := len(s.Values)
	for start < n && s.Values[start] < threshold {
		start++
	}
	if start == n {
		return n, 0
	}
	for end < n-start && s.Values[n-1-end] < threshold {
		end++
	}
	return start, end
}

// Oriented returns the clip lengths for the read as aligned. A reverse
// complemented read presents its stored end first.
func Oriented(start, end int, reverseComplement bool) (int, int) {
	if reverseComplement {
		return end, start
	}
	return start, end
}

// CheckLength verifies that the scores cover a read of n residues.
func (s *Scores) CheckLength(n int) error {
	if len(s.Values) != n {
		return &LengthMismatchError{Scores: len(s.Values), Read: n}
	}
	return nil
}
