package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/aria-lang/readalign-go/pkg/readalign"
)

// AlignRequest is a request to align one read against a template.
type AlignRequest struct {
	Read              string `json:"read"`
	Template          string `json:"template"`
	Start             int    `json:"start"`
	MaxShift          *int   `json:"max_shift,omitempty"`
	MaxScore          *int   `json:"max_score,omitempty"`
	ReverseComplement bool   `json:"reverse_complement"`
	Engine            string `json:"engine"`
	Protein           bool   `json:"protein"`
	Quality           string `json:"quality,omitempty"`
	ClipThreshold     int    `json:"clip_threshold,omitempty"`
}

// Alignment describes an actions array.
type Alignment struct {
	Score         int    `json:"score"`
	TemplateStart int    `json:"template_start"`
	TemplateEnd   int    `json:"template_end"`
	Actions       string `json:"actions"`
	CIGAR         string `json:"cigar"`
	ExtendedCIGAR string `json:"extended_cigar"`
	ReadLength    int    `json:"read_length"`
	Mismatches    int    `json:"mismatches"`
	Insertions    int    `json:"insertions"`
	Deletions     int    `json:"deletions"`
	GapOpenings   int    `json:"gap_openings"`
	Unknowns      int    `json:"unknowns"`
}

func describe(a readalign.Actions) *Alignment {
	return &Alignment{
		Score:         a.Score(),
		TemplateStart: a.TemplateStart(),
		TemplateEnd:   a.TemplateEnd(),
		Actions:       a.String(),
		CIGAR:         readalign.CIGAR(a, false),
		ExtendedCIGAR: readalign.CIGAR(a, true),
		ReadLength:    a.ReadLength(),
		Mismatches:    a.Mismatches(),
		Insertions:    a.Insertions(),
		Deletions:     a.Deletions(),
		GapOpenings:   a.GapOpenings(),
		Unknowns:      a.Unknowns(),
	}
}

// AlignResponse reports an alignment, or Aligned false when there is none
// within the bounds.
type AlignResponse struct {
	Aligned   bool       `json:"aligned"`
	Engine    string     `json:"engine"`
	MaxShift  int        `json:"max_shift"`
	Alignment *Alignment `json:"alignment,omitempty"`
}

// MaxShiftLimit is the widest band a request may ask for.
const MaxShiftLimit = 10000

// DefaultClipThreshold is the Phred score below which read ends are clipped.
const DefaultClipThreshold = 20

// NewAlignHandler returns the handler for alignment requests. m prices
// protein substitutions and may be nil when protein alignment is not offered.
func NewAlignHandler(p *readalign.Params, m *readalign.Matrix) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AlignRequest
		if !decode(w, r, &req) {
			return
		}

		newSeq := readalign.NewSequence
		if req.Protein {
			newSeq = readalign.NewProteinSequence
		}
		read, err := newSeq("read", req.Read)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read: "+err.Error())
			return
		}
		template, err := newSeq("template", req.Template)
		if err != nil {
			writeError(w, http.StatusBadRequest, "template: "+err.Error())
			return
		}

		name := req.Engine
		if name == "" {
			name = readalign.EngineGotoh
		}
		var engine readalign.EditDistance
		var matrix *readalign.Matrix
		if req.Protein {
			if name != readalign.EngineGotoh {
				writeError(w, http.StatusBadRequest, "protein reads are aligned with the gotoh engine only")
				return
			}
			if m == nil {
				writeError(w, http.StatusBadRequest, "no substitution matrix loaded")
				return
			}
			engine, matrix = readalign.NewProteinEngine(p, m), m
		} else {
			engine, err = readalign.NewEngine(name, p)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		maxShift := p.MaxShift(read.Len())
		if req.MaxShift != nil {
			maxShift = *req.MaxShift
			if maxShift < 0 || maxShift > MaxShiftLimit {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("max_shift must be in 0..%d", MaxShiftLimit))
				return
			}
		}
		maxScore := math.MaxInt32
		if req.MaxScore != nil {
			maxScore = *req.MaxScore
		}

		resp := AlignResponse{Engine: name, MaxShift: maxShift}
		a, ok := engine.CalculateEditDistance(read.Residues, read.Len(), template.Residues, req.Start, maxShift, maxScore, req.ReverseComplement)
		if !ok {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		if req.Quality != "" {
			q, err := readalign.ParseQuality(req.Quality)
			if err != nil {
				writeError(w, http.StatusBadRequest, "quality: "+err.Error())
				return
			}
			threshold := req.ClipThreshold
			if threshold == 0 {
				threshold = DefaultClipThreshold
			}
			a, err = readalign.ClipToQuality(a, p, matrix, read, template, q, threshold, req.ReverseComplement)
			if err != nil {
				var qe interface{ IsQualityError() }
				if errors.As(err, &qe) {
					writeError(w, http.StatusBadRequest, "quality: "+err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		resp.Aligned = true
		resp.Alignment = describe(a)
		writeJSON(w, http.StatusOK, resp)
	}
}

// MapRequest asks for anchors of a read from exact k-mer hits and the best
// alignment among them.
type MapRequest struct {
	Read     string `json:"read"`
	Template string `json:"template"`
	K        int    `json:"k"`
	Limit    int    `json:"limit"`
	Engine   string `json:"engine"`
	MaxScore *int   `json:"max_score,omitempty"`
}

// Candidate is one proposed anchor.
type Candidate struct {
	Start             int  `json:"start"`
	Votes             int  `json:"votes"`
	ReverseComplement bool `json:"reverse_complement"`
}

// MapResponse lists the candidates and the chosen alignment.
type MapResponse struct {
	Candidates        []Candidate `json:"candidates"`
	Aligned           bool        `json:"aligned"`
	ReverseComplement bool        `json:"reverse_complement"`
	Alignment         *Alignment  `json:"alignment,omitempty"`
}

// Defaults for map requests.
const (
	DefaultK     = 11
	DefaultLimit = 4
)

// NewMapHandler returns the handler for map requests.
func NewMapHandler(p *readalign.Params) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MapRequest
		if !decode(w, r, &req) {
			return
		}
		read, err := readalign.NewSequence("read", req.Read)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read: "+err.Error())
			return
		}
		template, err := readalign.NewSequence("template", req.Template)
		if err != nil {
			writeError(w, http.StatusBadRequest, "template: "+err.Error())
			return
		}
		k, limit := req.K, req.Limit
		if k == 0 {
			k = DefaultK
		}
		if limit == 0 {
			limit = DefaultLimit
		}
		idx, err := readalign.NewKMerIndex(template, k)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		engine, err := readalign.NewEngine(req.Engine, p)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		maxScore := math.MaxInt32
		if req.MaxScore != nil {
			maxScore = *req.MaxScore
		}

		resp := MapResponse{Candidates: []Candidate{}}
		for _, c := range idx.Candidates(read.Residues, 0, limit) {
			resp.Candidates = append(resp.Candidates, Candidate(c))
		}
		if a, c, ok := readalign.Map(engine, p, idx, read, template, maxScore, limit); ok {
			resp.Aligned = true
			resp.ReverseComplement = c.ReverseComplement
			resp.Alignment = describe(a)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
