package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/readalign-go/internal/sequence"
)

const chrom = "ACGTTGCAAGGCTTACCGATGCATCGGATCCTAGCTAGGTCAACTGGTACCATG"

func TestNewIndex(t *testing.T) {
	template := sequence.DNA.EncodeString(chrom)

	tests := []struct {
		name    string
		k       int
		wantErr bool
	}{
		{"valid", 11, false},
		{"max", MaxK, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"too long", MaxK + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := NewIndex(template, tt.k)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.k, x.K)
		})
	}

	_, err := NewIndex(sequence.DNA.EncodeString("ACGT"), 5)
	assert.Error(t, err)
}

func TestPositions(t *testing.T) {
	x, err := NewIndex(sequence.DNA.EncodeString("ACGTACGTNACGT"), 4)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 4, 9}, x.Positions(sequence.DNA.EncodeString("ACGT")))
	assert.Equal(t, []int{1}, x.Positions(sequence.DNA.EncodeString("CGTA")))
	assert.Empty(t, x.Positions(sequence.DNA.EncodeString("GTNA")))
	assert.Empty(t, x.Positions(sequence.DNA.EncodeString("ACG")))
	// ACGT, CGTA, GTAC, TACG
	assert.Equal(t, 4, x.Unique())
}

func TestCandidates(t *testing.T) {
	template := sequence.DNA.EncodeString(chrom)
	x, err := NewIndex(template, 8)
	require.NoError(t, err)

	t.Run("forward", func(t *testing.T) {
		read := sequence.DNA.EncodeString(chrom[10:40])
		c := x.Candidates(read, 0, 3)
		require.NotEmpty(t, c)
		assert.Equal(t, Candidate{Start: 10, Votes: 30 - 8 + 1}, c[0])
	})

	t.Run("reverse complement", func(t *testing.T) {
		read := sequence.ReverseComplement(nil, sequence.DNA.EncodeString(chrom[10:40]))
		c := x.Candidates(read, 0, 1)
		require.Len(t, c, 1)
		assert.Equal(t, Candidate{Start: 10, Votes: 23, ReverseComplement: true}, c[0])
	})

	t.Run("indel splits votes", func(t *testing.T) {
		read := sequence.DNA.EncodeString(chrom[2:25] + chrom[26:50])
		c := x.Candidates(read, 0, 2)
		require.Len(t, c, 2)
		assert.Equal(t, Candidate{Start: 2, Votes: 17}, c[0])
		assert.Equal(t, Candidate{Start: 3, Votes: 17}, c[1])
	})

	t.Run("repeats filtered", func(t *testing.T) {
		rep, err := NewIndex(sequence.DNA.EncodeString("AAAAAAAAAAAAAAAAAAAA"), 4)
		require.NoError(t, err)
		read := sequence.DNA.EncodeString("AAAAAA")
		assert.Empty(t, rep.Candidates(read, 5, 0))
		assert.NotEmpty(t, rep.Candidates(read, 0, 0))
	})
}

func BenchmarkCandidates(b *testing.B) {
	template := sequence.DNA.EncodeString(chrom + chrom + chrom)
	x, err := NewIndex(template, 11)
	require.NoError(b, err)
	read := sequence.DNA.EncodeString(chrom[5:45])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Candidates(read, 0, 4)
	}
}
