package sequence

import "sync"

// Sequence is an encoded, identified run of residues.
//
// Residues are immutable once the sequence is constructed; engines read
// them without copying.
type Sequence struct {
	ID       string
	Residues []byte
	Alphabet Alphabet
}

// New encodes symbols in the given alphabet.
// Unrecognised symbols become Unknown; only an empty sequence is an error.
func New(id, symbols string, alphabet Alphabet) (*Sequence, error) {
	if len(symbols) == 0 {
		return nil, &EmptySequenceError{ID: id}
	}
	return &Sequence{
		ID:       id,
		Residues: alphabet.EncodeString(symbols),
		Alphabet: alphabet,
	}, nil
}

// NewDNA encodes a nucleotide sequence.
func NewDNA(id, symbols string) (*Sequence, error) {
	return New(id, symbols, DNA)
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return len(s.Residues)
}

// Sub returns the residues in [start, end) as a new sequence sharing storage.
func (s *Sequence) Sub(start, end int) (*Sequence, error) {
	if start < 0 || end < start || end > len(s.Residues) {
		return nil, &RangeError{Start: start, End: end, Length: len(s.Residues)}
	}
	return &Sequence{
		ID:       s.ID,
		Residues: s.Residues[start:end:end],
		Alphabet: s.Alphabet,
	}, nil
}

// ReverseComplement returns a new sequence holding the reverse complement.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	if s.Alphabet != DNA {
		return nil, &AlphabetError{Op: "reverse complement", Alphabet: s.Alphabet}
	}
	return &Sequence{
		ID:       s.ID,
		Residues: ReverseComplement(make([]byte, 0, len(s.Residues)), s.Residues),
		Alphabet: s.Alphabet,
	}, nil
}

// CountUnknown counts the residues with the unknown code.
func (s *Sequence) CountUnknown() int {
	count := 0
	for _, r := range s.Residues {
		if r == Unknown {
			count++
		}
	}
	return count
}

// String returns the decoded residues.
func (s *Sequence) String() string {
	return s.Alphabet.DecodeString(s.Residues)
}

// Equal checks equality with another sequence, ignoring the id.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil || s.Alphabet != other.Alphabet || len(s.Residues) != len(other.Residues) {
		return false
	}
	for i, r := range s.Residues {
		if other.Residues[i] != r {
			return false
		}
	}
	return true
}

// Source supplies encoded residues by sequence id.
// Implementations must be safe for concurrent use.
type Source interface {
	Residues(id string) ([]byte, error)
	Length(id string) (int, error)
}

// MapSource is an in-memory Source.
type MapSource struct {
	mu   sync.RWMutex
	seqs map[string]*Sequence
}

// NewMapSource returns a source holding the given sequences.
func NewMapSource(seqs ...*Sequence) *MapSource {
	m := &MapSource{seqs: make(map[string]*Sequence, len(seqs))}
	for _, s := range seqs {
		m.seqs[s.ID] = s
	}
	return m
}

// Add stores a sequence, replacing any sequence with the same id.
func (m *MapSource) Add(s *Sequence) {
	m.mu.Lock()
	m.seqs[s.ID] = s
	m.mu.Unlock()
}

func (m *MapSource) get(id string) (*Sequence, error) {
	m.mu.RLock()
	s, ok := m.seqs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return s, nil
}

// Residues returns the encoded residues of a sequence.
func (m *MapSource) Residues(id string) ([]byte, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.Residues, nil
}

// Length returns the number of residues of a sequence.
func (m *MapSource) Length(id string) (int, error) {
	s, err := m.get(id)
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}
