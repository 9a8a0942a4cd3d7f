package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		alphabet Alphabet
		symbols  string
		want     []byte
	}{
		{"upper case DNA", DNA, "NACGT", []byte{0, 1, 2, 3, 4}},
		{"lower case DNA", DNA, "acgtn", []byte{1, 2, 3, 4, 0}},
		{"RNA uracil", DNA, "ACGU", []byte{1, 2, 3, 4}},
		{"unrecognised DNA", DNA, "A-Z.C", []byte{1, 0, 0, 0, 2}},
		{"protein", Protein, "X*ARNV", []byte{0, 1, 2, 3, 4, 21}},
		{"lower case protein", Protein, "arnv", []byte{2, 3, 4, 21}},
		{"unrecognised protein", Protein, "BZJ", []byte{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alphabet.EncodeString(tt.symbols))
		})
	}
}

func TestEncodeTotal(t *testing.T) {
	for _, alphabet := range []Alphabet{DNA, Protein} {
		for b := 0; b < 256; b++ {
			code := alphabet.Encode(byte(b))
			assert.Less(t, int(code), alphabet.Size(), "%s symbol %d", alphabet, b)
		}
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "NACGT", DNA.DecodeString([]byte{0, 1, 2, 3, 4}))
	assert.Equal(t, byte('N'), DNA.Decode(17))
	assert.Equal(t, "X*ARNDCQEGHILKMFPSTWYV", Protein.DecodeString([]byte{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21,
	}))
	assert.Equal(t, byte('X'), Protein.Decode(200))

	for alphabet, symbols := range map[Alphabet]string{DNA: "NACGT", Protein: "X*ARNDCQEGHILKMFPSTWYV"} {
		assert.Equal(t, symbols, alphabet.DecodeString(alphabet.EncodeString(symbols)))
	}
}

func TestComplement(t *testing.T) {
	assert.Equal(t, Unknown, Complement(Unknown))
	assert.Equal(t, T, Complement(A))
	assert.Equal(t, G, Complement(C))
	assert.Equal(t, C, Complement(G))
	assert.Equal(t, A, Complement(T))
	assert.Equal(t, Unknown, Complement(9))

	for c := byte(0); c <= NumDNACodes; c++ {
		assert.Equal(t, c, Complement(Complement(c)), "code %d", c)
		if c != Unknown {
			assert.Equal(t, byte(NumDNACodes+1)-c, Complement(c))
		}
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name    string
		symbols string
		want    string
	}{
		{"even", "AACG", "CGTT"},
		{"odd", "ACGTN", "NACGT"},
		{"single", "G", "C"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := DNA.EncodeString(tt.symbols)
			assert.Equal(t, tt.want, DNA.DecodeString(ReverseComplement(nil, codes)))

			ReverseComplementInPlace(codes)
			assert.Equal(t, tt.want, DNA.DecodeString(codes))

			ReverseComplementInPlace(codes)
			assert.Equal(t, DNA.EncodeString(tt.symbols), codes)
		})
	}
}

func TestFrames(t *testing.T) {
	read := DNA.EncodeString("AACGTNN")

	assert.True(t, Forward.IsForward())
	assert.False(t, Reverse.IsForward())
	assert.Equal(t, Reverse, Forward.Opposite())
	assert.Equal(t, Forward, Reverse.Opposite())
	assert.Equal(t, Forward, FrameOf(false))
	assert.Equal(t, Reverse, FrameOf(true))

	assert.Equal(t, "AACGT", DNA.DecodeString(Orient(Forward, nil, read, 5)))
	assert.Equal(t, "ACGTT", DNA.DecodeString(Orient(Reverse, nil, read, 5)))
	assert.Equal(t, G, Reverse.CodeAt(read, 5, 2))

	buf := make([]byte, 0, 16)
	out := Orient(Reverse, buf, read, len(read))
	assert.Equal(t, "NNACGTT", DNA.DecodeString(out))
}

func TestSequence(t *testing.T) {
	_, err := NewDNA("empty", "")
	require.Error(t, err)
	assert.IsType(t, &EmptySequenceError{}, err)

	s, err := NewDNA("r1", "acgtNNacgt")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 2, s.CountUnknown())
	assert.Equal(t, "ACGTNNACGT", s.String())

	sub, err := s.Sub(2, 6)
	require.NoError(t, err)
	assert.Equal(t, "GTNN", sub.String())

	_, err = s.Sub(4, 11)
	require.Error(t, err)
	assert.IsType(t, &RangeError{}, err)

	rc, err := s.ReverseComplement()
	require.NoError(t, err)
	assert.Equal(t, "ACGTNNACGT", rc.String())
	assert.True(t, rc.Equal(s))

	p, err := New("p1", "MKV", Protein)
	require.NoError(t, err)
	_, err = p.ReverseComplement()
	assert.IsType(t, &AlphabetError{}, err)
	assert.False(t, p.Equal(s))
}

func TestMapSource(t *testing.T) {
	chr1, _ := NewDNA("chr1", "ACGTACGT")
	src := NewMapSource(chr1)

	residues, err := src.Residues("chr1")
	require.NoError(t, err)
	assert.Equal(t, chr1.Residues, residues)

	n, err := src.Length("chr1")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = src.Residues("chr2")
	require.Error(t, err)
	assert.IsType(t, &NotFoundError{}, err)

	chr2, _ := NewDNA("chr2", "GG")
	src.Add(chr2)
	n, err = src.Length("chr2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
