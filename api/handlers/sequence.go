package handlers

import (
	"net/http"

	"github.com/aria-lang/readalign-go/pkg/readalign"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
	Protein  bool   `json:"protein"`
}

// EncodeResponse lists the residue codes of a sequence.
type EncodeResponse struct {
	Alphabet string `json:"alphabet"`
	Length   int    `json:"length"`
	Codes    []int  `json:"codes"`
	Unknowns int    `json:"unknowns"`
	Decoded  string `json:"decoded"`
}

// SequenceResponse represents a sequence result.
type SequenceResponse struct {
	Sequence string `json:"sequence"`
}

func parseSequence(w http.ResponseWriter, r *http.Request) (*readalign.Sequence, bool) {
	var req SequenceRequest
	if !decode(w, r, &req) {
		return nil, false
	}
	newSeq := readalign.NewSequence
	if req.Protein {
		newSeq = readalign.NewProteinSequence
	}
	seq, err := newSeq("", req.Sequence)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return seq, true
}

// EncodeHandler encodes a sequence into residue codes.
func EncodeHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := parseSequence(w, r)
	if !ok {
		return
	}
	codes := make([]int, seq.Len())
	for i, c := range seq.Residues {
		codes[i] = int(c)
	}
	writeJSON(w, http.StatusOK, EncodeResponse{
		Alphabet: seq.Alphabet.String(),
		Length:   seq.Len(),
		Codes:    codes,
		Unknowns: seq.CountUnknown(),
		Decoded:  seq.String(),
	})
}

// ReverseComplementHandler handles reverse complement requests.
func ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := parseSequence(w, r)
	if !ok {
		return
	}
	rc, err := seq.ReverseComplement()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SequenceResponse{Sequence: rc.String()})
}
