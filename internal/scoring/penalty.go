package scoring

// Penalty turns a similarity matrix into substitution costs. Identical
// residues cost nothing; any other pair costs
//
//	max(1, (s(a,a) + s(b,b))/2 - s(a,b))
//
// so every real substitution is penalised.
type Penalty struct {
	size  int
	costs []int
}

// NewPenalty precomputes the cost table of m.
func NewPenalty(m *Matrix) *Penalty {
	p := &Penalty{size: m.size, costs: make([]int, m.size*m.size)}
	for a := 0; a < m.size; a++ {
		for b := 0; b < m.size; b++ {
			if a == b {
				continue
			}
			c := (m.Score(byte(a), byte(a))+m.Score(byte(b), byte(b)))/2 - m.Score(byte(a), byte(b))
			if c < 1 {
				c = 1
			}
			p.costs[a*m.size+b] = c
		}
	}
	return p
}

// Cost returns the penalty of aligning residue a against residue b.
func (p *Penalty) Cost(a, b byte) int {
	if int(a) >= p.size || int(b) >= p.size {
		return p.Max()
	}
	return p.costs[int(a)*p.size+int(b)]
}

// Max returns the largest substitution cost in the table.
func (p *Penalty) Max() int {
	max := 0
	for _, c := range p.costs {
		if c > max {
			max = c
		}
	}
	return max
}
