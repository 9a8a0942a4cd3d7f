package alignment

import (
	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/seed"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

// DefaultWindow is the hop-step seed window.
const DefaultWindow = 8

// HopStep walks the read along its current diagonal and only stops to think
// at a mismatch. A mismatch followed by a clean window is a substitution.
// Otherwise the seed finder is asked for the diagonal the read continues on.
// Before the first window is done a new diagonal moves the start; after it
// the difference becomes a run of insertions or deletions at the mismatch.
// An ambiguous seed, or one outside the band, ends the walk.
//
// A result is reported only when it scores at most one gap opening and at
// most the cheapest gap-free diagonal of the band, which makes it a minimum:
// every gapped path pays a gap opening and every gap-free path is a single
// diagonal. The cheapest diagonal is itself tried as a result. Reads costing
// more than one gap opening, multi-base indels among them, get no alignment
// and are left to the exact engine.
type HopStep struct {
	pr     pricing
	finder seed.Finder

	read    []byte
	builder *actions.Builder
}

// NewHopStep returns a hop-step aligner with the given seed window.
func NewHopStep(p *Params, window int) *HopStep {
	if window <= 0 {
		window = DefaultWindow
	}
	return &HopStep{
		pr:      newPricing(p, nil),
		finder:  seed.Finder{Window: window, MinMatches: window},
		builder: actions.NewBuilder(128),
	}
}

// walk is the state of one hop-step alignment.
type walk struct {
	pr      pricing
	b       *actions.Builder
	diag    int
	start   int
	score   int
	started bool
}

func (w *walk) emit(op actions.Op, n int, anchor int) {
	if !w.started {
		w.start = anchor + w.diag
		w.started = true
	}
	for k := 0; k < n; k++ {
		if op == actions.Insertion || op == actions.Deletion {
			prev, ok := w.b.Last()
			w.score += w.pr.gap(op, prev, !ok)
		}
		w.b.Append(op)
	}
}

func (w *walk) pair(r, t byte, anchor int) {
	w.emit(classify(r, t), 1, anchor)
	w.score += w.pr.residue(r, t)
}

func (h *HopStep) CalculateEditDistance(read []byte, rlen int, template []byte, zeroBasedStart, maxShift, maxScore int, rc bool) (actions.Array, bool) {
	if !validInputs(read, rlen, template, zeroBasedStart, maxShift, maxScore) {
		return nil, false
	}
	maxShift = clampShift(maxShift, rlen, template)
	h.read = sequence.Orient(sequence.FrameOf(rc), h.read, read, rlen)
	r := h.read

	bound := min(maxScore, h.pr.pen.GapOpen)
	walked, ok := h.hop(r, rlen, template, zeroBasedStart, maxShift, maxScore)
	if ok {
		bound = min(bound, walked.Score())
	}
	if score, diag, ok := h.diagonal(r, rlen, template, zeroBasedStart, maxShift, bound); ok {
		h.builder.Reset()
		for i := 0; i < rlen; i++ {
			h.builder.Append(classify(r[i], templateAt(template, zeroBasedStart+diag+i)))
		}
		return h.builder.Build(zeroBasedStart+diag, score), true
	}
	if ok && walked.Score() <= bound {
		return walked, true
	}
	return nil, false
}

// maxRestarts bounds how often the walk may move its start.
const maxRestarts = 2

func (h *HopStep) hop(r []byte, rlen int, template []byte, anchor, maxShift, maxScore int) (actions.Array, bool) {
	finder := h.finder
	finder.MaxShift = maxShift
	win := finder.Window

	h.builder.Reset()
	w := &walk{pr: h.pr, b: h.builder}
	restarts := 0
	gapped := false

	for i := 0; i < rlen; {
		t := templateAt(template, anchor+i+w.diag)
		switch {
		case !mismatched(r[i], t):
			w.pair(r[i], t, anchor)
			i++
		case i+2*win > rlen, h.clean(r, template, anchor+w.diag, i+1, min(rlen, i+1+win)):
			w.pair(r[i], t, anchor)
			i++
		default:
			cur := anchor + w.diag
			s, ok := finder.Find(r, template, seed.Bounds{
				ReadStart:     i + win,
				ReadEnd:       i + 2*win - 1,
				TemplateStart: i + win + cur - maxShift,
				TemplateEnd:   i + 2*win - 1 + cur + maxShift,
			}, cur)
			if !ok {
				return nil, false
			}
			next := s.Shift - anchor
			if abs(next) > maxShift {
				return nil, false
			}
			switch {
			case next == w.diag:
				w.pair(r[i], t, anchor)
				i++
			case !gapped && i < win:
				if restarts == maxRestarts {
					return nil, false
				}
				restarts++
				h.builder.Reset()
				*w = walk{pr: h.pr, b: h.builder, diag: next}
				i = 0
				continue
			case next > w.diag:
				w.emit(actions.Deletion, next-w.diag, anchor)
				w.diag = next
				gapped = true
			default:
				n := min(w.diag-next, rlen-i)
				w.emit(actions.Insertion, n, anchor)
				i += n
				w.diag = next
				gapped = true
			}
		}
		if w.score > maxScore {
			return nil, false
		}
	}
	return h.builder.Build(w.start, w.score), true
}

// diagonal returns the cheapest gap-free placement within the band scoring at
// most bound, preferring the diagonal closest to the anchor and then the lower
// one.
func (h *HopStep) diagonal(r []byte, rlen int, template []byte, anchor, maxShift, bound int) (int, int, bool) {
	best, bestDiag, found := 0, 0, false
	for o := 0; o <= maxShift; o++ {
		diags := [2]int{-o, o}
		n := 2
		if o == 0 {
			n = 1
		}
		for _, d := range diags[:n] {
			limit := bound
			if found {
				limit = best - 1
			}
			cost := 0
			for i := 0; i < rlen && cost <= limit; i++ {
				cost += h.pr.residue(r[i], templateAt(template, anchor+d+i))
			}
			if cost <= limit {
				best, bestDiag, found = cost, d, true
			}
		}
	}
	return best, bestDiag, found
}

// clean reports whether read positions [from, to) agree with the template
// on the absolute diagonal diag.
func (h *HopStep) clean(r, template []byte, diag, from, to int) bool {
	for i := from; i < to; i++ {
		if mismatched(r[i], templateAt(template, diag+i)) {
			return false
		}
	}
	return true
}
