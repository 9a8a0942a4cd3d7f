// Package sequence provides the residue encodings used by the alignment engines.
//
// Residues are stored as small integer codes. Code 0 always means an unknown
// residue (N for nucleotides, X for amino acids) and is never treated as
// equal to anything, including another unknown. Encoding is total: any byte
// that is not a recognised symbol encodes to the unknown code.
package sequence

// Alphabet identifies a residue encoding.
type Alphabet int

const (
	// DNA encodes nucleotides as N=0, A=1, C=2, G=3, T=4.
	DNA Alphabet = iota
	// Protein encodes amino acids as X=0, *=1, then ARNDCQEGHILKMFPSTWYV as 2..21.
	Protein
)

func (a Alphabet) String() string {
	switch a {
	case DNA:
		return "DNA"
	case Protein:
		return "protein"
	default:
		return "unknown"
	}
}

// Unknown is the code of an unknown residue in every alphabet.
const Unknown byte = 0

// Nucleotide codes.
const (
	N byte = iota
	A
	C
	G
	T
)

// NumDNACodes is the number of known nucleotide codes.
const NumDNACodes = 4

var (
	dnaSymbols     = []byte("NACGT")
	proteinSymbols = []byte("X*ARNDCQEGHILKMFPSTWYV")

	dnaCodes     [256]byte
	proteinCodes [256]byte
)

func init() {
	for code, s := range dnaSymbols {
		dnaCodes[s] = byte(code)
		dnaCodes[s|0x20] = byte(code)
	}
	dnaCodes['U'] = T
	dnaCodes['u'] = T

	for code, s := range proteinSymbols {
		proteinCodes[s] = byte(code)
		if s >= 'A' && s <= 'Z' {
			proteinCodes[s|0x20] = byte(code)
		}
	}
}

// Size returns the number of codes in the alphabet, including the unknown code.
func (a Alphabet) Size() int {
	if a == Protein {
		return len(proteinSymbols)
	}
	return len(dnaSymbols)
}

// Encode returns the code of a symbol. Unrecognised symbols encode to Unknown.
func (a Alphabet) Encode(symbol byte) byte {
	if a == Protein {
		return proteinCodes[symbol]
	}
	return dnaCodes[symbol]
}

// Decode returns the upper case symbol of a code. Out of range codes decode
// to the unknown symbol.
func (a Alphabet) Decode(code byte) byte {
	symbols := dnaSymbols
	if a == Protein {
		symbols = proteinSymbols
	}
	if int(code) >= len(symbols) {
		return symbols[Unknown]
	}
	return symbols[code]
}

// EncodeBytes appends the codes of src to dst and returns the extended slice.
func (a Alphabet) EncodeBytes(dst, src []byte) []byte {
	table := &dnaCodes
	if a == Protein {
		table = &proteinCodes
	}
	for _, s := range src {
		dst = append(dst, table[s])
	}
	return dst
}

// EncodeString returns the codes of every symbol in s.
func (a Alphabet) EncodeString(s string) []byte {
	return a.EncodeBytes(make([]byte, 0, len(s)), []byte(s))
}

// DecodeString renders codes as upper case symbols.
func (a Alphabet) DecodeString(codes []byte) string {
	buf := make([]byte, len(codes))
	for i, c := range codes {
		buf[i] = a.Decode(c)
	}
	return string(buf)
}

// Complement returns the complement of a nucleotide code.
// Complement(Unknown) is Unknown, and codes outside the DNA range map to Unknown.
func Complement(code byte) byte {
	if code == Unknown || code > NumDNACodes {
		return Unknown
	}
	return NumDNACodes + 1 - code
}

// ReverseComplement appends the reverse complement of src to dst.
func ReverseComplement(dst, src []byte) []byte {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, Complement(src[i]))
	}
	return dst
}

// ReverseComplementInPlace replaces codes with their reverse complement.
func ReverseComplementInPlace(codes []byte) {
	n := len(codes)
	for i := 0; i < n/2; i++ {
		codes[i], codes[n-1-i] = Complement(codes[n-1-i]), Complement(codes[i])
	}
	if n%2 == 1 {
		codes[n/2] = Complement(codes[n/2])
	}
}
