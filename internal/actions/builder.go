package actions

// Builder accumulates operations for one alignment.
//
// A Builder is reusable through Reset and is meant to be owned by a single
// goroutine; engines keep one as per-worker scratch.
type Builder struct {
	ops []Op
}

// NewBuilder returns a builder with room for capacity operations.
func NewBuilder(capacity int) *Builder {
	return &Builder{ops: make([]Op, 0, capacity)}
}

// Reset empties the builder, keeping its storage.
func (b *Builder) Reset() {
	b.ops = b.ops[:0]
}

// Append adds op at the end.
func (b *Builder) Append(op Op) {
	b.ops = append(b.ops, op)
}

// AppendN adds n copies of op at the end.
func (b *Builder) AppendN(op Op, n int) {
	for i := 0; i < n; i++ {
		b.ops = append(b.ops, op)
	}
}

// Len returns the number of operations added.
func (b *Builder) Len() int {
	return len(b.ops)
}

// Last returns the most recently added op.
func (b *Builder) Last() (Op, bool) {
	if len(b.ops) == 0 {
		return 0, false
	}
	return b.ops[len(b.ops)-1], true
}

// Reverse reverses the operations, for traces collected end to start.
func (b *Builder) Reverse() {
	s := b.ops
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Ops returns a view of the operations added so far.
func (b *Builder) Ops() []Op {
	return b.ops
}

// Build encodes the operations added so far.
func (b *Builder) Build(templateStart, score int) Array {
	return FromOps(b.ops, templateStart, score)
}

// FromOps encodes ops in template order.
func FromOps(ops []Op, templateStart, score int) Array {
	a := make(Array, HeaderSize+(len(ops)+opsPerWord-1)/opsPerWord)
	a[LengthSlot] = int32(len(ops))
	a[TemplateStartSlot] = int32(templateStart)
	a[ScoreSlot] = int32(score)

	prev := Same
	for i, op := range ops {
		a[HeaderSize+i/opsPerWord] |= int32(uint32(op) << (uint(i%opsPerWord) * bitsPerOp))
		switch op {
		case Mismatch:
			a[MismatchSlot]++
		case Insertion:
			a[InsertionSlot]++
		case Deletion:
			a[DeletionSlot]++
		case UnknownTemplate, UnknownRead:
			a[UnknownSlot]++
		}
		if (op == Insertion || op == Deletion) && (i == 0 || prev != op) {
			a[GapOpenSlot]++
		}
		prev = op
	}
	return a
}
