// Package actions holds the compact representation of an alignment trace.
//
// An Array is a flat []int32: a fixed header (operation count, template
// start, score and per-kind counts) followed by the operations packed eight
// to a word, four bits each. Operations are stored in template order, so the
// first operation aligns against the template start position.
package actions

import "strings"

// Op is a single alignment operation.
type Op byte

const (
	// Same is a read residue equal to the template residue.
	Same Op = iota
	// Mismatch is a read residue differing from the template residue.
	Mismatch
	// Insertion is a read residue with no template counterpart.
	Insertion
	// Deletion is a template residue with no read counterpart.
	Deletion
	// Noop is a skipped template residue.
	Noop
	// SoftClip is a read residue excluded from the alignment.
	SoftClip
	// UnknownTemplate is a read residue aligned to an unknown template residue.
	UnknownTemplate
	// UnknownRead is an unknown read residue aligned to a template residue.
	UnknownRead

	numOps
)

var opChars = [numOps]byte{'=', 'X', 'I', 'D', 'N', 'S', 'T', 'R'}

var charOps [256]int8

func init() {
	for i := range charOps {
		charOps[i] = -1
	}
	for op, c := range opChars {
		charOps[c] = int8(op)
	}
}

// Char returns the one character rendering of op.
func (o Op) Char() byte {
	if o >= numOps {
		return '?'
	}
	return opChars[o]
}

func (o Op) String() string {
	return string(o.Char())
}

// OpOf returns the op rendered as c.
func OpOf(c byte) (Op, bool) {
	op := charOps[c]
	if op < 0 {
		return 0, false
	}
	return Op(op), true
}

// ConsumesRead reports whether op advances along the read.
func (o Op) ConsumesRead() bool {
	switch o {
	case Same, Mismatch, Insertion, SoftClip, UnknownTemplate, UnknownRead:
		return true
	}
	return false
}

// ConsumesTemplate reports whether op advances along the template.
func (o Op) ConsumesTemplate() bool {
	switch o {
	case Same, Mismatch, Deletion, Noop, UnknownTemplate, UnknownRead:
		return true
	}
	return false
}

// Header slots of an Array.
const (
	LengthSlot = iota
	TemplateStartSlot
	ScoreSlot
	MismatchSlot
	InsertionSlot
	DeletionSlot
	GapOpenSlot
	UnknownSlot
	HeaderSize
)

const (
	bitsPerOp  = 4
	opsPerWord = 8
	opMask     = 1<<bitsPerOp - 1
)

// Array is an encoded alignment. It is immutable once built.
type Array []int32

// Len returns the number of operations.
func (a Array) Len() int { return int(a[LengthSlot]) }

// TemplateStart returns the template position aligned with the first operation.
// It may be negative when the alignment starts before the template window.
func (a Array) TemplateStart() int { return int(a[TemplateStartSlot]) }

// Score returns the total alignment penalty.
func (a Array) Score() int { return int(a[ScoreSlot]) }

// Mismatches returns the number of Mismatch operations.
func (a Array) Mismatches() int { return int(a[MismatchSlot]) }

// Insertions returns the number of Insertion operations.
func (a Array) Insertions() int { return int(a[InsertionSlot]) }

// Deletions returns the number of Deletion operations.
func (a Array) Deletions() int { return int(a[DeletionSlot]) }

// GapOpenings returns the number of maximal runs of insertions or deletions.
func (a Array) GapOpenings() int { return int(a[GapOpenSlot]) }

// Unknowns returns the number of operations involving an unknown residue.
func (a Array) Unknowns() int { return int(a[UnknownSlot]) }

// Op returns operation i in template order.
func (a Array) Op(i int) Op {
	w := a[HeaderSize+i/opsPerWord]
	return Op(uint32(w) >> (uint(i%opsPerWord) * bitsPerOp) & opMask)
}

// Ops returns all operations in template order.
func (a Array) Ops() []Op {
	ops := make([]Op, a.Len())
	for i := range ops {
		ops[i] = a.Op(i)
	}
	return ops
}

// ReadLength returns the number of read residues covered, soft clips included.
func (a Array) ReadLength() int {
	n := 0
	for i := 0; i < a.Len(); i++ {
		if a.Op(i).ConsumesRead() {
			n++
		}
	}
	return n
}

// TemplateLength returns the number of template residues covered.
func (a Array) TemplateLength() int {
	n := 0
	for i := 0; i < a.Len(); i++ {
		if a.Op(i).ConsumesTemplate() {
			n++
		}
	}
	return n
}

// TemplateEnd returns the exclusive end of the covered template region.
func (a Array) TemplateEnd() int {
	return a.TemplateStart() + a.TemplateLength()
}

// Equal compares every header slot and operation.
func (a Array) Equal(b Array) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WithScore returns a copy of a with the score replaced.
func (a Array) WithScore(score int) Array {
	b := make(Array, len(a))
	copy(b, a)
	b[ScoreSlot] = int32(score)
	return b
}

// String renders one character per operation.
func (a Array) String() string {
	var sb strings.Builder
	sb.Grow(a.Len())
	for i := 0; i < a.Len(); i++ {
		sb.WriteByte(a.Op(i).Char())
	}
	return sb.String()
}
