// Package seed finds the read-to-template shift that anchors an alignment.
//
// Given approximate bounds of a region of interest in the read and the
// template, the finder scores every candidate shift in a bounded range by
// the number of agreeing residue pairs and accepts a shift only when it is
// the unique best.
package seed

import (
	"github.com/willf/bitset"

	"github.com/aria-lang/readalign-go/internal/sequence"
)

// Different reports whether two residues disagree.
// An unknown residue never agrees with anything, including another unknown.
func Different(a, b byte) bool {
	return a != b || a == sequence.Unknown
}

// Interval is a half-open range [Start, End).
type Interval struct {
	Start, End int
}

// Len returns the number of positions in the interval.
func (iv Interval) Len() int {
	if iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Empty reports whether the interval holds no positions.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Shift returns the interval moved by s.
func (iv Interval) Shift(s int) Interval {
	return Interval{Start: iv.Start + s, End: iv.End + s}
}

// Bounds are the approximate read and template positions around which a
// seed is sought. Positions are inclusive; the searched regions extend one
// window beyond them on each side.
type Bounds struct {
	ReadStart, ReadEnd         int
	TemplateStart, TemplateEnd int
}

// Seed is an accepted anchor: the read interval, its image in the template
// under Shift, and the number of agreeing pairs found at that shift.
type Seed struct {
	Read     Interval
	Template Interval
	Shift    int
	Matches  int
}

// Finder holds seed search settings. A Finder has no mutable state and may
// be shared between goroutines.
type Finder struct {
	// Window is the seed window size.
	Window int
	// MinMatches is the least number of agreeing pairs for a seed.
	MinMatches int
	// MaxShift bounds candidate shifts to bias±MaxShift. When zero the range
	// is derived from how far the template bounds are from the read bounds.
	MaxShift int
}

// Find returns the uniquely best supported shift of read against template,
// searching around bias. It returns false when no shift reaches MinMatches,
// when two shifts tie for the best count, or when the agreeing residues
// carry no information (all unknown or all the same residue).
func (f *Finder) Find(read, template []byte, b Bounds, bias int) (Seed, bool) {
	w := f.Window
	if w <= 0 {
		return Seed{}, false
	}

	r := Interval{Start: max(0, b.ReadStart-w+1), End: min(len(read), b.ReadEnd+w)}
	t := Interval{Start: max(0, b.TemplateStart-w+1), End: min(len(template), b.TemplateEnd+w)}
	if r.Empty() || t.Empty() {
		return Seed{}, false
	}

	known := bitset.New(uint(r.Len()))
	for i := r.Start; i < r.End; i++ {
		if read[i] != sequence.Unknown {
			known.Set(uint(i - r.Start))
		}
	}
	if known.None() {
		return Seed{}, false
	}

	spread := f.MaxShift
	if spread <= 0 {
		spread = max(abs(b.TemplateStart-b.ReadStart-bias), abs(b.TemplateEnd-b.ReadEnd-bias))
	}

	best, bestCount, tied := 0, 0, false
	for s := bias - spread; s <= bias+spread; s++ {
		count := agreements(read, template, r, t, s, known)
		if count > bestCount {
			best, bestCount, tied = s, count, false
		} else if count == bestCount && count > 0 {
			tied = true
		}
	}
	if tied || bestCount == 0 || bestCount < f.MinMatches {
		return Seed{}, false
	}
	if !informative(read, template, r, t, best) {
		return Seed{}, false
	}

	img := r.Shift(best)
	if img.Start < t.Start-w || img.End > t.End+w {
		return Seed{}, false
	}
	if img.Start < 0 {
		r.Start -= img.Start
		img.Start = 0
	}
	if img.End > len(template) {
		r.End -= img.End - len(template)
		img.End = len(template)
	}
	return Seed{Read: r, Template: img, Shift: best, Matches: bestCount}, true
}

// agreements counts the read positions in r whose shifted template position
// lies in t and agrees with the read residue.
func agreements(read, template []byte, r, t Interval, s int, known *bitset.BitSet) int {
	lo := max(r.Start, t.Start-s)
	hi := min(r.End, t.End-s)
	count := 0
	for i := lo; i < hi; i++ {
		if known.Test(uint(i-r.Start)) && !Different(read[i], template[i+s]) {
			count++
		}
	}
	return count
}

func informative(read, template []byte, r, t Interval, s int) bool {
	lo := max(r.Start, t.Start-s)
	hi := min(r.End, t.End-s)
	first := sequence.Unknown
	for i := lo; i < hi; i++ {
		if Different(read[i], template[i+s]) {
			continue
		}
		if first == sequence.Unknown {
			first = read[i]
		} else if read[i] != first {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
