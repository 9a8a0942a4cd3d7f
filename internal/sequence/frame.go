package sequence

// Frame is the orientation in which a read is presented to an engine.
// There are exactly two frames, Forward and Reverse.
type Frame interface {
	// CodeAt returns residue i of the first length residues of seq, read in this frame.
	CodeAt(seq []byte, length, i int) byte
	IsForward() bool
	// Opposite returns the other frame.
	Opposite() Frame
	String() string
}

type forwardFrame struct{}

type reverseFrame struct{}

var (
	// Forward reads residues as stored.
	Forward Frame = forwardFrame{}
	// Reverse reads the reverse complement of the stored residues.
	Reverse Frame = reverseFrame{}
)

func (forwardFrame) CodeAt(seq []byte, _ int, i int) byte { return seq[i] }
func (forwardFrame) IsForward() bool                    { return true }
func (forwardFrame) Opposite() Frame                    { return Reverse }
func (forwardFrame) String() string                     { return "forward" }

func (reverseFrame) CodeAt(seq []byte, length, i int) byte {
	return Complement(seq[length-1-i])
}
func (reverseFrame) IsForward() bool { return false }
func (reverseFrame) Opposite() Frame { return Forward }
func (reverseFrame) String() string  { return "reverse" }

// FrameOf returns Reverse when reverseComplement is set and Forward otherwise.
func FrameOf(reverseComplement bool) Frame {
	if reverseComplement {
		return Reverse
	}
	return Forward
}

// Orient writes the first length residues of seq, as seen through f, into
// dst (reusing its capacity) and returns it.
func Orient(f Frame, dst, seq []byte, length int) []byte {
	dst = dst[:0]
	if f.IsForward() {
		return append(dst, seq[:length]...)
	}
	for i := 0; i < length; i++ {
		dst = append(dst, f.CodeAt(seq, length, i))
	}
	return dst
}
