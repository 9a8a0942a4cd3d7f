package readalign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignExample(t *testing.T) {
	read, err := NewSequence("read1", "ACGTTGCAAGGCTTACC")
	require.NoError(t, err)
	ref, err := NewSequence("chr1", "TTACGTTGCAAGGCTTACCGG")
	require.NoError(t, err)

	p := DefaultParams()
	for _, name := range []string{EngineGotoh, EngineHopStep, EngineChain} {
		engine, err := NewEngine(name, p)
		require.NoError(t, err)
		a, ok := Align(engine, p, read, ref, 2, 50, false)
		require.True(t, ok, name)
		assert.Equal(t, 2, a.TemplateStart(), name)
		assert.Equal(t, 0, a.Score(), name)
		assert.Equal(t, "17=", CIGAR(a, true), name)
		assert.NoError(t, Verify(a, p, read.Residues, ref.Residues), name)
	}
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine("", DefaultParams())
	require.NoError(t, err)
	assert.NotNil(t, e)

	_, err = NewEngine("blast", DefaultParams())
	var ue *UnknownEngineError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "blast", ue.Name)
}

func TestMap(t *testing.T) {
	chrom, err := NewSequence("chr", "ACGTTGCAAGGCTTACCGATGCATCGGATCCTAGCTAGGTCAACTGGTACCATG")
	require.NoError(t, err)
	sub, err := chrom.Sub(10, 40)
	require.NoError(t, err)
	read, err := sub.ReverseComplement()
	require.NoError(t, err)

	idx, err := NewKMerIndex(chrom, 8)
	require.NoError(t, err)
	p := DefaultParams()
	engine, err := NewEngine(EngineChain, p)
	require.NoError(t, err)

	a, c, ok := Map(engine, p, idx, read, chrom, 50, 4)
	require.True(t, ok)
	assert.True(t, c.ReverseComplement)
	assert.Equal(t, 10, c.Start)
	assert.Equal(t, 10, a.TemplateStart())
	assert.Equal(t, 0, a.Score())
	assert.NoError(t, Verify(a, p, Oriented(read, true), chrom.Residues))
}

func TestClipToQuality(t *testing.T) {
	ref, err := NewSequence("chr1", "TTACGTTGCAAGGCTTACCGG")
	require.NoError(t, err)
	read, err := NewSequence("read1", "ACGTTGCAAGGCTTACC")
	require.NoError(t, err)
	p := DefaultParams()
	engine, err := NewEngine(EngineGotoh, p)
	require.NoError(t, err)
	a, ok := Align(engine, p, read, ref, 2, 50, false)
	require.True(t, ok)

	q, err := ParseQuality("IIIIIIIIIIIIIII##")
	require.NoError(t, err)

	clipped, err := ClipToQuality(a, p, nil, read, ref, q, 20, false)
	require.NoError(t, err)
	assert.Equal(t, "===============SS", clipped.String())
	assert.Equal(t, 2, clipped.TemplateStart())
	assert.Equal(t, 0, clipped.Score())

	// the stored tail is the aligned head of a reverse complemented read
	rc, err := read.ReverseComplement()
	require.NoError(t, err)
	a, ok = Align(engine, p, rc, ref, 2, 50, true)
	require.True(t, ok)
	clipped, err = ClipToQuality(a, p, nil, rc, ref, q, 20, true)
	require.NoError(t, err)
	assert.Equal(t, "SS===============", clipped.String())
	assert.Equal(t, 4, clipped.TemplateStart())

	short, err := ParseQuality("III")
	require.NoError(t, err)
	_, err = ClipToQuality(a, p, nil, rc, ref, short, 20, true)
	assert.Error(t, err)
}

func TestBatchThroughFacade(t *testing.T) {
	ref, err := NewSequence("chr1", "TTACGTTGCAAGGCTTACCGG")
	require.NoError(t, err)
	read, err := NewSequence("read1", "ACGTTGCAAGGCTTACC")
	require.NoError(t, err)

	al := NewBatchAligner(DefaultParams(), NewSource(ref), WithMaxScore(50), WithGrain(1))
	report, err := al.Run(context.Background(), []Task{{Read: read.Residues, TemplateID: "chr1", Start: 2}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Aligned())
	assert.Equal(t, 1, report.AlignedCount())
	assert.Equal(t, 0, report.Results[0].Actions.Score())
}

func TestProteinEngine(t *testing.T) {
	m, err := LoadMatrix("blosum62")
	require.NoError(t, err)
	read, err := NewProteinSequence("p", "MKVLAT")
	require.NoError(t, err)
	ref, err := NewProteinSequence("q", "MKILAT")
	require.NoError(t, err)

	e := NewProteinEngine(DefaultParams(), m)
	a, ok := e.CalculateEditDistance(read.Residues, read.Len(), ref.Residues, 0, 2, 50, false)
	require.True(t, ok)
	assert.Equal(t, 1, a.Score())
}
