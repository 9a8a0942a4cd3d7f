package quality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPhred33(t *testing.T) {
	s, err := FromPhred33("!+5?IJ")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30, 40, 41}, s.Values)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, "!+5?IJ", s.ToPhred33())
	assert.InDelta(t, 23.5, s.Average(), 1e-9)

	_, err = FromPhred33("")
	var empty *EmptyScoresError
	assert.True(t, errors.As(err, &empty))

	_, err = FromPhred33("II II")
	var enc *InvalidEncodingError
	require.True(t, errors.As(err, &enc))
	assert.Equal(t, 2, enc.Position)

	_, err = FromPhred33("IIK")
	assert.Error(t, err)
}

func TestClipLengths(t *testing.T) {
	tests := []struct {
		name       string
		encoded    string
		threshold  int
		start, end int
	}{
		{"clean", "IIIIII", 20, 0, 0},
		{"low start", "##IIII", 20, 2, 0},
		{"low end", "IIII##", 20, 0, 2},
		{"both", "#IIII##", 20, 1, 2},
		{"interior dip kept", "II##II", 20, 0, 0},
		{"all low", "####", 20, 4, 0},
		{"threshold is inclusive", "55II", 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromPhred33(tt.encoded)
			require.NoError(t, err)
			start, end := s.ClipLengths(tt.threshold)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestOriented(t *testing.T) {
	s, e := Oriented(1, 3, false)
	assert.Equal(t, []int{1, 3}, []int{s, e})
	s, e = Oriented(1, 3, true)
	assert.Equal(t, []int{3, 1}, []int{s, e})
}

func TestCheckLength(t *testing.T) {
	s, err := FromPhred33("IIII")
	require.NoError(t, err)
	assert.NoError(t, s.CheckLength(4))

	var lm *LengthMismatchError
	assert.True(t, errors.As(s.CheckLength(5), &lm))
}
