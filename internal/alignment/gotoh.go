package alignment

import (
	"math"

	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

const inf = math.MaxInt32 / 2

// Trace sources. Each cell packs the source of its M, I and D values in
// two bits apiece.
const (
	fromM byte = iota
	fromI
	fromD
)

const (
	mShift = 0
	iShift = 2
	dShift = 4
)

// Gotoh is the exact banded affine gap aligner.
//
// Cells are indexed by read position i and diagonal d, where read residue i
// sits against template position start+i+d and |d| <= maxShift. M holds the
// best cost ending on a diagonal step, I ending on an insertion (read only
// residue) and D ending on a deletion (template only residue). Row 0 is free
// for every diagonal, so the alignment may begin anywhere in the band.
//
// Equal costs are resolved in the order M, I, D within a cell. Among equal
// final costs the diagonal closest to the anchor wins, the lower one first.
//
// A row whose cheapest cell exceeds maxScore ends the search, which is exact
// since costs never decrease along a path. Alignments needing more than
// maxShift are never seen.
type Gotoh struct {
	pr      pricing
	protein bool

	m, ins, del [2][]int32
	trace       []byte
	read        []byte
	builder     *actions.Builder
}

// NewGotoh returns a nucleotide aligner using the uniform substitution penalty.
func NewGotoh(p *Params) *Gotoh {
	return &Gotoh{pr: newPricing(p, nil), builder: actions.NewBuilder(128)}
}

// NewProteinGotoh returns an aligner that prices substitutions with sub.
// Protein reads have no reverse complement, so rc alignments are refused.
func NewProteinGotoh(p *Params, sub Substitution) *Gotoh {
	return &Gotoh{pr: newPricing(p, sub), protein: true, builder: actions.NewBuilder(128)}
}

func (g *Gotoh) grow(rows, width int) {
	for k := 0; k < 2; k++ {
		if cap(g.m[k]) < width {
			g.m[k] = make([]int32, width)
			g.ins[k] = make([]int32, width)
			g.del[k] = make([]int32, width)
		}
		g.m[k], g.ins[k], g.del[k] = g.m[k][:width], g.ins[k][:width], g.del[k][:width]
	}
	if n := rows * width; cap(g.trace) < n {
		g.trace = make([]byte, n)
	} else {
		g.trace = g.trace[:n]
	}
}

// add is a saturating addition that never passes inf.
func add(a int32, b int) int32 {
	v := int64(a) + int64(b)
	if v > inf {
		return inf
	}
	return int32(v)
}

func (g *Gotoh) CalculateEditDistance(read []byte, rlen int, template []byte, zeroBasedStart, maxShift, maxScore int, rc bool) (actions.Array, bool) {
	if !validInputs(read, rlen, template, zeroBasedStart, maxShift, maxScore) {
		return nil, false
	}
	if rc && g.protein {
		return nil, false
	}
	maxShift = clampShift(maxShift, rlen, template)
	g.read = sequence.Orient(sequence.FrameOf(rc), g.read, read, rlen)
	r := g.read

	width := 2*maxShift + 1
	g.grow(rlen+1, width)
	limit := int32(inf - 1)
	if maxScore < inf-1 {
		limit = int32(maxScore)
	}
	open, extend := g.pr.pen.GapOpen, g.pr.pen.GapExtend
	start := zeroBasedStart

	m, ins, del := g.m[0], g.ins[0], g.del[0]
	for k := 0; k < width; k++ {
		m[k], ins[k], del[k] = 0, inf, inf
	}

	for i := 1; i <= rlen; i++ {
		pm, pi, pd := m, ins, del
		m, ins, del = g.m[i&1], g.ins[i&1], g.del[i&1]
		trace := g.trace[i*width : (i+1)*width]

		for k := 0; k < width; k++ {
			d := k - maxShift

			best, from := pm[k], fromM
			if pi[k] < best {
				best, from = pi[k], fromI
			}
			if pd[k] < best {
				best, from = pd[k], fromD
			}
			m[k] = add(best, g.pr.residue(r[i-1], templateAt(template, start+i-1+d)))
			t := from << mShift

			best, from = inf, fromM
			if k+1 < width {
				best = add(pm[k+1], open)
				if v := add(pi[k+1], extend); v < best {
					best, from = v, fromI
				}
				if v := add(pd[k+1], open); v < best {
					best, from = v, fromD
				}
			}
			ins[k] = best
			trace[k] = t | from<<iShift
		}

		rowMin := int32(inf)
		for k := 0; k < width; k++ {
			best, from := int32(inf), fromM
			if k > 0 {
				best = add(m[k-1], open)
				if v := add(ins[k-1], open); v < best {
					best, from = v, fromI
				}
				if v := add(del[k-1], extend); v < best {
					best, from = v, fromD
				}
			}
			del[k] = best
			trace[k] |= from << dShift
			rowMin = min(rowMin, m[k], ins[k], best)
		}
		if rowMin > limit {
			return nil, false
		}
	}

	best, bestK, state := int32(inf), -1, fromM
	for o := 0; o <= maxShift; o++ {
		for _, k := range [2]int{maxShift - o, maxShift + o} {
			if m[k] < best {
				best, bestK, state = m[k], k, fromM
			}
			if ins[k] < best {
				best, bestK, state = ins[k], k, fromI
			}
			if o == 0 {
				break
			}
		}
	}
	if best > limit {
		return nil, false
	}

	b := g.builder
	b.Reset()
	i, k := rlen, bestK
	for i > 0 {
		cell := g.trace[i*width+k]
		switch state {
		case fromM:
			d := k - maxShift
			b.Append(classify(r[i-1], templateAt(template, start+i-1+d)))
			state = cell >> mShift & 3
			i--
		case fromI:
			b.Append(actions.Insertion)
			state = cell >> iShift & 3
			i--
			k++
		default:
			b.Append(actions.Deletion)
			state = cell >> dShift & 3
			k--
		}
	}
	b.Reverse()
	return b.Build(start+k-maxShift, int(best)), true
}
