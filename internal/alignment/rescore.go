package alignment

import (
	"fmt"

	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

// Substitution prices aligning one known read residue against a known
// template residue. Equal residues must cost zero.
type Substitution interface {
	Cost(read, template byte) int
}

// uniform charges the same penalty for every mismatch.
type uniform int

func (u uniform) Cost(read, template byte) int {
	if read == template {
		return 0
	}
	return int(u)
}

// pricing combines penalties with a substitution table.
type pricing struct {
	pen Penalties
	sub Substitution
}

func newPricing(p *Params, sub Substitution) pricing {
	if sub == nil {
		sub = uniform(p.Substitution)
	}
	return pricing{pen: p.Penalties, sub: sub}
}

// residue returns the cost of the diagonal pair (r, t).
func (pr pricing) residue(r, t byte) int {
	if r == sequence.Unknown || t == sequence.Unknown {
		return pr.pen.Unknown
	}
	return pr.sub.Cost(r, t)
}

// gap returns the cost of op following prev in a trace.
func (pr pricing) gap(op, prev actions.Op, first bool) int {
	if !first && op == prev {
		return pr.pen.GapExtend
	}
	return pr.pen.GapOpen
}

// ReplayError reports an actions array that does not describe its read and
// template.
type ReplayError struct {
	Pos    int
	Op     actions.Op
	Reason string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay failed at op %d (%s): %s", e.Pos, e.Op, e.Reason)
}

// Rescore replays a against the oriented read and the template and returns
// the penalty it implies. A nil sub uses the uniform substitution penalty.
func Rescore(a actions.Array, read, template []byte, p *Params, sub Substitution) (int, error) {
	pr := newPricing(p, sub)
	i, j := 0, a.TemplateStart()
	score := 0
	var prev actions.Op
	for k, op := range a.Ops() {
		if op.ConsumesRead() && i >= len(read) {
			return 0, &ReplayError{Pos: k, Op: op, Reason: "read exhausted"}
		}
		switch op {
		case actions.Same, actions.Mismatch, actions.UnknownRead, actions.UnknownTemplate:
			r, t := read[i], templateAt(template, j)
			if got := classify(r, t); got != op {
				return 0, &ReplayError{Pos: k, Op: op, Reason: fmt.Sprintf("residues align as %s", got)}
			}
			score += pr.residue(r, t)
		case actions.Insertion, actions.Deletion:
			score += pr.gap(op, prev, k == 0)
		}
		if op.ConsumesRead() {
			i++
		}
		if op.ConsumesTemplate() {
			j++
		}
		prev = op
	}
	if i != len(read) {
		return 0, &ReplayError{Pos: a.Len(), Op: prev, Reason: fmt.Sprintf("consumed %d of %d read residues", i, len(read))}
	}
	return score, nil
}

// Verify checks that a replays against read and template to its recorded score.
func Verify(a actions.Array, read, template []byte, p *Params, sub Substitution) error {
	score, err := Rescore(a, read, template, p, sub)
	if err != nil {
		return err
	}
	if score != a.Score() {
		return &ReplayError{Pos: a.Len(), Op: actions.Noop, Reason: fmt.Sprintf("score %d, recorded %d", score, a.Score())}
	}
	return nil
}

// Clip soft clips start and end read residues of a and re-scores the result.
func Clip(a actions.Array, read, template []byte, start, end int, p *Params, sub Substitution) (actions.Array, error) {
	clipped := actions.ClipEnds(a, start, end)
	score, err := Rescore(clipped, read, template, p, sub)
	if err != nil {
		return nil, err
	}
	return clipped.WithScore(score), nil
}
