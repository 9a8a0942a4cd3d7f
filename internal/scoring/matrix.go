// Package scoring loads amino acid substitution matrices and converts their
// similarity scores into the non-negative penalties used by the aligners.
package scoring

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aria-lang/readalign-go/internal/sequence"
)

//go:embed data
var resources embed.FS

// Valid matrix entries lie strictly between these bounds.
const (
	MinScore = -10
	MaxScore = 20
)

// ErrUnknownMatrix is returned by Load for a name with no bundled resource.
var ErrUnknownMatrix = errors.New("unknown substitution matrix")

// LoadError reports a matrix resource that could not be read or parsed.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load matrix %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Matrix is a square similarity matrix indexed by protein residue codes.
type Matrix struct {
	name   string
	size   int
	scores []int
}

// Names returns the bundled matrix names.
func Names() []string {
	entries, err := resources.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Load reads a bundled matrix by name. Names are case insensitive.
func Load(name string) (*Matrix, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	f, err := resources.Open("data/" + key)
	if err != nil {
		return nil, &LoadError{Name: name, Err: ErrUnknownMatrix}
	}
	defer f.Close()

	m, err := Parse(key, f)
	if err != nil {
		return nil, err
	}
	if err := m.Integrity(); err != nil {
		return nil, &LoadError{Name: key, Err: err}
	}
	return m, nil
}

// Parse reads a matrix in the NCBI text layout: '#' comment lines, a header
// row of residue letters, then one row per letter. Letters outside the
// protein alphabet (B, Z) are skipped. Every protein code must be covered.
func Parse(name string, r io.Reader) (*Matrix, error) {
	size := sequence.Protein.Size()
	m := &Matrix{name: name, size: size, scores: make([]int, size*size)}
	seen := make([]bool, size*size)

	var header []int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		if header == nil {
			header = make([]int, len(fields))
			for i, f := range fields {
				header[i] = residueCode(f)
			}
			continue
		}
		if len(fields) != len(header)+1 {
			return nil, &LoadError{Name: name, Err: fmt.Errorf("line %d: %d columns, want %d", line, len(fields)-1, len(header))}
		}
		row := residueCode(fields[0])
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, &LoadError{Name: name, Err: fmt.Errorf("line %d: %w", line, err)}
			}
			col := header[i]
			if row < 0 || col < 0 {
				continue
			}
			m.scores[row*size+col] = v
			seen[row*size+col] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	for i, ok := range seen {
		if !ok {
			a, b := byte(i/size), byte(i%size)
			return nil, &LoadError{Name: name, Err: fmt.Errorf("no entry for %c/%c",
				sequence.Protein.Decode(a), sequence.Protein.Decode(b))}
		}
	}
	return m, nil
}

// residueCode maps a header letter to its protein code, or -1 when the
// letter is not part of the alphabet.
func residueCode(f string) int {
	if len(f) != 1 {
		return -1
	}
	c := f[0]
	code := sequence.Protein.Encode(c)
	if code == sequence.Unknown && c != 'X' && c != 'x' {
		return -1
	}
	return int(code)
}

// Name returns the matrix name.
func (m *Matrix) Name() string { return m.name }

// Size returns the number of residue codes the matrix covers.
func (m *Matrix) Size() int { return m.size }

// Score returns the similarity of two residue codes. Codes outside the
// matrix score as the unknown residue.
func (m *Matrix) Score(a, b byte) int {
	if int(a) >= m.size {
		a = sequence.Unknown
	}
	if int(b) >= m.size {
		b = sequence.Unknown
	}
	return m.scores[int(a)*m.size+int(b)]
}

// Integrity checks that the matrix is symmetric and that every entry lies
// strictly between MinScore and MaxScore.
func (m *Matrix) Integrity() error {
	if len(m.scores) != m.size*m.size {
		return fmt.Errorf("matrix %s is not square", m.name)
	}
	for a := 0; a < m.size; a++ {
		for b := 0; b < m.size; b++ {
			v := m.scores[a*m.size+b]
			if v <= MinScore || v >= MaxScore {
				return fmt.Errorf("matrix %s: score %d for %c/%c out of range", m.name, v,
					sequence.Protein.Decode(byte(a)), sequence.Protein.Decode(byte(b)))
			}
			if v != m.scores[b*m.size+a] {
				return fmt.Errorf("matrix %s is not symmetric at %c/%c", m.name,
					sequence.Protein.Decode(byte(a)), sequence.Protein.Decode(byte(b)))
			}
		}
	}
	return nil
}
