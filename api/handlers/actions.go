package handlers

import (
	"errors"
	"net/http"

	"github.com/aria-lang/readalign-go/pkg/readalign"
)

// ActionsRequest carries an actions rendering such as "==X=I==". When Read
// and Template are given the trace is replayed against them.
type ActionsRequest struct {
	Actions           string `json:"actions"`
	TemplateStart     int    `json:"template_start"`
	Score             int    `json:"score"`
	Read              string `json:"read,omitempty"`
	Template          string `json:"template,omitempty"`
	ReverseComplement bool   `json:"reverse_complement"`
}

// ActionsResponse describes the parsed trace.
type ActionsResponse struct {
	Alignment *Alignment `json:"alignment"`
	Verified  *bool      `json:"verified,omitempty"`
	Problem   string     `json:"problem,omitempty"`
}

// NewActionsParseHandler returns the handler that parses and optionally
// verifies an actions rendering.
func NewActionsParseHandler(p *readalign.Params) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActionsRequest
		if !decode(w, r, &req) {
			return
		}
		a, err := readalign.ParseActions(req.Actions, req.TemplateStart, req.Score)
		if err != nil {
			var pe *readalign.ActionsParseError
			if errors.As(err, &pe) {
				pos := pe.Pos
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Position: &pos})
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := ActionsResponse{Alignment: describe(a)}
		if req.Read != "" && req.Template != "" {
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
			oriented := readalign.Oriented(read, req.ReverseComplement)
			ok := true
			if err := readalign.Verify(a, p, oriented, template.Residues); err != nil {
				ok = false
				resp.Problem = err.Error()
			}
			resp.Verified = &ok
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
