// Package kmer indexes the k-mers of a template and proposes anchor offsets
// for reads by exact k-mer hits.
//
// Every read k-mer found in the template votes for the diagonal it implies
// (template position minus read position). The best supported diagonals are
// handed to an alignment engine as candidate template starts.
package kmer

import (
	"fmt"
	"sort"

	"github.com/aria-lang/readalign-go/internal/sequence"
)

// MaxK is the longest k-mer that packs into a uint64.
const MaxK = 32

// Index maps packed k-mers to their template positions.
type Index struct {
	K         int
	length    int
	positions map[uint64][]int32
}

// NewIndex indexes every k-mer of template free of unknown residues.
func NewIndex(template []byte, k int) (*Index, error) {
	if k <= 0 || k > MaxK {
		return nil, fmt.Errorf("k must be in 1..%d, got %d", MaxK, k)
	}
	if k > len(template) {
		return nil, fmt.Errorf("k=%d is longer than the template (%d)", k, len(template))
	}

	x := &Index{K: k, length: len(template), positions: make(map[uint64][]int32)}
	scan(template, k, func(pos int, key uint64) {
		x.positions[key] = append(x.positions[key], int32(pos))
	})
	return x, nil
}

// scan calls fn for every k-mer of codes that has no unknown residue.
func scan(codes []byte, k int, fn func(pos int, key uint64)) {
	mask := uint64(1)<<(2*uint(k)) - 1
	if k == MaxK {
		mask = ^uint64(0)
	}
	var key uint64
	run := 0
	for i, c := range codes {
		if c == sequence.Unknown || c > sequence.NumDNACodes {
			run = 0
			continue
		}
		key = (key<<2 | uint64(c-1)) & mask
		run++
		if run >= k {
			fn(i-k+1, key)
		}
	}
}

// Positions returns the template positions of kmer in increasing order.
func (x *Index) Positions(kmer []byte) []int {
	if len(kmer) != x.K {
		return nil
	}
	var out []int
	scan(kmer, x.K, func(_ int, key uint64) {
		for _, p := range x.positions[key] {
			out = append(out, int(p))
		}
	})
	return out
}

// Unique returns the number of distinct indexed k-mers.
func (x *Index) Unique() int {
	return len(x.positions)
}

// Candidate is a proposed alignment start.
type Candidate struct {
	Start             int
	Votes             int
	ReverseComplement bool
}

type diagonal struct {
	start int
	rc    bool
}

// Candidates returns up to limit anchors for read in both orientations,
// best supported first. K-mers occurring more than maxHits times in the
// template are ignored; zero keeps every k-mer. Ties are ordered by start
// with the forward orientation first.
func (x *Index) Candidates(read []byte, maxHits, limit int) []Candidate {
	votes := make(map[diagonal]int)
	collect := func(codes []byte, rc bool) {
		scan(codes, x.K, func(i int, key uint64) {
			hits := x.positions[key]
			if maxHits > 0 && len(hits) > maxHits {
				return
			}
			for _, p := range hits {
				votes[diagonal{start: int(p) - i, rc: rc}]++
			}
		})
	}
	collect(read, false)
	collect(sequence.ReverseComplement(make([]byte, 0, len(read)), read), true)

	out := make([]Candidate, 0, len(votes))
	for d, n := range votes {
		out = append(out, Candidate{Start: d.start, Votes: n, ReverseComplement: d.rc})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return !a.ReverseComplement && b.ReverseComplement
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
