// Package readalign is the public surface of the read alignment engine.
//
// Example usage:
//
//	read, _ := readalign.NewSequence("read1", "ACGTTGCAAGGCTTACC")
//	ref, _ := readalign.NewSequence("chr1", "TTACGTTGCAAGGCTTACCGG")
//
//	p := readalign.DefaultParams()
//	engine, _ := readalign.NewEngine(readalign.EngineChain, p)
//	a, ok := readalign.Align(engine, p, read, ref, 2, 50, false)
//	if ok {
//	    fmt.Println(a.TemplateStart(), a.Score(), readalign.CIGAR(a, true))
//	}
package readalign

import (
	"fmt"

	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/alignment"
	"github.com/aria-lang/readalign-go/internal/batch"
	"github.com/aria-lang/readalign-go/internal/kmer"
	"github.com/aria-lang/readalign-go/internal/quality"
	"github.com/aria-lang/readalign-go/internal/scoring"
	"github.com/aria-lang/readalign-go/internal/seed"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

// Re-export types for convenience
type (
	Sequence     = sequence.Sequence
	Alphabet     = sequence.Alphabet
	Frame        = sequence.Frame
	Source       = sequence.Source
	MapSource    = sequence.MapSource
	Actions      = actions.Array
	Op           = actions.Op
	Params       = alignment.Params
	Penalties    = alignment.Penalties
	ConfigError  = alignment.ConfigError
	EditDistance = alignment.EditDistance
	Substitution = alignment.Substitution
	Seed         = seed.Seed
	SeedBounds   = seed.Bounds
	SeedFinder   = seed.Finder
	Matrix       = scoring.Matrix
	Task         = batch.Task
	Report       = batch.Report
	BatchAligner = batch.Aligner
	BatchOption  = batch.Option
	KMerIndex    = kmer.Index
	Candidate    = kmer.Candidate

	ActionsParseError = actions.ParseError
)

// Constants
const (
	DNA     = sequence.DNA
	Protein = sequence.Protein
)

// Orientations
var (
	Forward = sequence.Forward
	Reverse = sequence.Reverse
)

// Engine names accepted by NewEngine.
const (
	EngineGotoh   = "gotoh"
	EngineHopStep = "hopstep"
	EngineChain   = "chain"
)

// DefaultHandoff is the hop-step bound of a chained engine.
const DefaultHandoff = 30

// UnknownEngineError is returned by NewEngine for an unrecognised name.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown engine %q (want %s, %s or %s)", e.Name, EngineGotoh, EngineHopStep, EngineChain)
}

// NewSequence creates a DNA sequence.
func NewSequence(id, symbols string) (*Sequence, error) {
	return sequence.NewDNA(id, symbols)
}

// NewProteinSequence creates a protein sequence.
func NewProteinSequence(id, symbols string) (*Sequence, error) {
	return sequence.New(id, symbols, sequence.Protein)
}

// NewSource returns an in-memory sequence source.
func NewSource(seqs ...*Sequence) *MapSource {
	return sequence.NewMapSource(seqs...)
}

// DefaultParams returns the default DNA parameters.
func DefaultParams() *Params {
	return alignment.DefaultParams()
}

// NewParams validates a parameter bundle.
func NewParams(pen Penalties, shiftFactor float64, minShift int) (*Params, error) {
	return alignment.NewParams(pen, shiftFactor, minShift)
}

// NewEngine builds a nucleotide engine by name. Engines are not safe for
// concurrent use; build one per goroutine.
func NewEngine(name string, p *Params) (EditDistance, error) {
	switch name {
	case EngineGotoh, "":
		return alignment.NewGotoh(p), nil
	case EngineHopStep:
		return alignment.NewHopStep(p, alignment.DefaultWindow), nil
	case EngineChain:
		return alignment.NewChain(p, DefaultHandoff), nil
	default:
		return nil, &UnknownEngineError{Name: name}
	}
}

// NewProteinEngine builds an exact protein engine scored with m.
func NewProteinEngine(p *Params, m *Matrix) EditDistance {
	return alignment.NewProteinGotoh(p, scoring.NewPenalty(m))
}

// LoadMatrix loads a bundled substitution matrix such as BLOSUM62.
func LoadMatrix(name string) (*Matrix, error) {
	return scoring.Load(name)
}

// Align aligns read against template anchored at start, using the shift
// permitted by p for the read length.
func Align(e EditDistance, p *Params, read, template *Sequence, start, maxScore int, rc bool) (Actions, bool) {
	return e.CalculateEditDistance(read.Residues, read.Len(), template.Residues, start,
		p.MaxShift(read.Len()), maxScore, rc)
}

// Map proposes anchors for read from idx and aligns at each of the best
// limit candidates, returning the cheapest alignment found.
func Map(e EditDistance, p *Params, idx *KMerIndex, read, template *Sequence, maxScore, limit int) (Actions, Candidate, bool) {
	var (
		best     Actions
		bestCand Candidate
		found    bool
	)
	for _, c := range idx.Candidates(read.Residues, 0, limit) {
		a, ok := Align(e, p, read, template, c.Start, maxScore, c.ReverseComplement)
		if !ok {
			continue
		}
		if !found || a.Score() < best.Score() {
			best, bestCand, found = a, c, true
		}
	}
	return best, bestCand, found
}

// ParseActions parses the one character per operation rendering.
func ParseActions(text string, templateStart, score int) (Actions, error) {
	return actions.FromString(text, templateStart, score)
}

// CIGAR renders a run-length CIGAR string.
func CIGAR(a Actions, extended bool) string {
	return actions.CIGAR(a, extended)
}

// Verify checks that a replays against the oriented read and the template
// to its recorded score.
func Verify(a Actions, p *Params, read, template []byte) error {
	return alignment.Verify(a, read, template, p, nil)
}

// QualityScores are Phred qualities of a read in stored orientation.
type QualityScores = quality.Scores

// ParseQuality decodes a Phred+33 quality string.
func ParseQuality(encoded string) (*QualityScores, error) {
	return quality.FromPhred33(encoded)
}

// ClipToQuality soft clips the low quality ends of read from a and
// re-scores the result. A nil matrix scores nucleotides; otherwise
// substitutions are priced with m.
func ClipToQuality(a Actions, p *Params, m *Matrix, read, template *Sequence, q *QualityScores, threshold int, rc bool) (Actions, error) {
	if err := q.CheckLength(read.Len()); err != nil {
		return nil, err
	}
	start, end := q.ClipLengths(threshold)
	start, end = quality.Oriented(start, end, rc)
	var sub Substitution
	if m != nil {
		sub = scoring.NewPenalty(m)
	}
	return alignment.Clip(a, Oriented(read, rc), template.Residues, start, end, p, sub)
}

// Oriented returns the residues of read as an engine sees them, reverse
// complemented when rc is set.
func Oriented(read *Sequence, rc bool) []byte {
	return sequence.Orient(sequence.FrameOf(rc), nil, read.Residues, read.Len())
}

// NewKMerIndex indexes the k-mers of template.
func NewKMerIndex(template *Sequence, k int) (*KMerIndex, error) {
	return kmer.NewIndex(template.Residues, k)
}

// NewBatchAligner returns an aligner that runs tasks against templates from
// src in parallel. Without options it uses the chained engine and no score
// bound.
func NewBatchAligner(p *Params, src Source, opts ...BatchOption) *BatchAligner {
	opts = append([]BatchOption{batch.WithEngine(batch.Chained(DefaultHandoff))}, opts...)
	return batch.New(p, src, opts...)
}

// Batch options.
var (
	WithMaxScore = batch.WithMaxScore
	WithGrain    = batch.WithGrain
	WithLogger   = batch.WithLogger
)
