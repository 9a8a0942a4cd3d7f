package alignment

import (
	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

// EditDistance aligns a read against a template window.
//
// read holds at least rlen encoded residues; when rc is set the first rlen
// residues are aligned as their reverse complement. template may be a larger
// shared buffer and zeroBasedStart is the anchor offset into it. The
// alignment may start up to maxShift positions either side of the anchor and
// never strays further than maxShift from the anchor diagonal. Alignments
// scoring above maxScore are not reported.
//
// The second result is false when there is no alignment within the bounds;
// this is an expected outcome, not an error. Implementations hold scratch
// buffers and must not be shared between goroutines.
type EditDistance interface {
	CalculateEditDistance(read []byte, rlen int, template []byte, zeroBasedStart, maxShift, maxScore int, rc bool) (actions.Array, bool)
}

// Chain tries Heuristic with a tight bound and falls back to Exact.
type Chain struct {
	Heuristic EditDistance
	Exact     EditDistance
	// Handoff caps the score the heuristic may report. Zero uses the
	// caller's bound for both engines.
	Handoff int
}

// NewChain returns the usual hop-step then Gotoh pairing for p.
func NewChain(p *Params, handoff int) *Chain {
	return &Chain{
		Heuristic: NewHopStep(p, DefaultWindow),
		Exact:     NewGotoh(p),
		Handoff:   handoff,
	}
}

func (c *Chain) CalculateEditDistance(read []byte, rlen int, template []byte, zeroBasedStart, maxShift, maxScore int, rc bool) (actions.Array, bool) {
	bound := maxScore
	if c.Handoff > 0 && c.Handoff < bound {
		bound = c.Handoff
	}
	if a, ok := c.Heuristic.CalculateEditDistance(read, rlen, template, zeroBasedStart, maxShift, bound, rc); ok {
		return a, true
	}
	return c.Exact.CalculateEditDistance(read, rlen, template, zeroBasedStart, maxShift, maxScore, rc)
}

// validInputs rejects reads and windows no engine can align.
func validInputs(read []byte, rlen int, template []byte, zeroBasedStart, maxShift, maxScore int) bool {
	switch {
	case rlen <= 0 || rlen > len(read):
		return false
	case maxShift < 0 || maxScore < 0:
		return false
	case len(template) == 0:
		return false
	case zeroBasedStart >= len(template) || zeroBasedStart+rlen <= 0:
		return false
	}
	return true
}

// clampShift limits maxShift to the diagonals that can reach the template.
// Beyond rlen+len(template) every diagonal leaves the whole read off the
// template, so wider bands change nothing.
func clampShift(maxShift, rlen int, template []byte) int {
	return min(maxShift, rlen+len(template))
}

// templateAt returns the template residue at j. Positions off the template
// read as unknown.
func templateAt(template []byte, j int) byte {
	if j < 0 || j >= len(template) {
		return sequence.Unknown
	}
	return template[j]
}

// classify returns the diagonal op for aligning read residue r against
// template residue t.
func classify(r, t byte) actions.Op {
	switch {
	case r == sequence.Unknown:
		return actions.UnknownRead
	case t == sequence.Unknown:
		return actions.UnknownTemplate
	case r == t:
		return actions.Same
	default:
		return actions.Mismatch
	}
}

// mismatched reports whether both residues are known and differ.
func mismatched(r, t byte) bool {
	return r != t && r != sequence.Unknown && t != sequence.Unknown
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
