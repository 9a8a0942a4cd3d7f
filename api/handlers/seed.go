package handlers

import (
	"net/http"

	"github.com/aria-lang/readalign-go/pkg/readalign"
)

// SeedRequest asks for the best supported shift of a read region against a
// template region. Bounds are inclusive.
type SeedRequest struct {
	Read          string `json:"read"`
	Template      string `json:"template"`
	ReadStart     int    `json:"read_start"`
	ReadEnd       int    `json:"read_end"`
	TemplateStart int    `json:"template_start"`
	TemplateEnd   int    `json:"template_end"`
	Bias          int    `json:"bias"`
	Window        int    `json:"window"`
	MinMatches    int    `json:"min_matches"`
	MaxShift      int    `json:"max_shift"`
}

// Span is a half-open interval.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SeedResponse reports the accepted seed, if any.
type SeedResponse struct {
	Found    bool  `json:"found"`
	Read     *Span `json:"read,omitempty"`
	Template *Span `json:"template,omitempty"`
	Shift    int   `json:"shift"`
	Matches  int   `json:"matches"`
}

// SeedHandler finds a seed between a read and a template.
func SeedHandler(w http.ResponseWriter, r *http.Request) {
	var req SeedRequest
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
	if req.Window <= 0 {
		writeError(w, http.StatusBadRequest, "window must be positive")
		return
	}

	f := readalign.SeedFinder{Window: req.Window, MinMatches: req.MinMatches, MaxShift: req.MaxShift}
	b := readalign.SeedBounds{
		ReadStart:     req.ReadStart,
		ReadEnd:       req.ReadEnd,
		TemplateStart: req.TemplateStart,
		TemplateEnd:   req.TemplateEnd,
	}
	s, ok := f.Find(read.Residues, template.Residues, b, req.Bias)
	if !ok {
		writeJSON(w, http.StatusOK, SeedResponse{})
		return
	}
	writeJSON(w, http.StatusOK, SeedResponse{
		Found:    true,
		Read:     &Span{Start: s.Read.Start, End: s.Read.End},
		Template: &Span{Start: s.Template.Start, End: s.Template.End},
		Shift:    s.Shift,
		Matches:  s.Matches,
	})
}
