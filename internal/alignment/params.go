// Package alignment computes minimum penalty alignments of reads against
// template windows.
//
// All engines share the EditDistance contract. Gotoh is the exact banded
// dynamic program; HopStep is a fast greedy walker for mostly matching reads
// that gives up rather than guess; Chain runs one then the other.
package alignment

import (
	"fmt"
	"math"
)

// Penalties are the costs an alignment is scored with.
type Penalties struct {
	// Substitution is the cost of a mismatching pair of known residues.
	Substitution int
	// GapOpen is the cost of the first position of an insertion or deletion run.
	GapOpen int
	// GapExtend is the cost of every later position of the run.
	GapExtend int
	// Unknown is the cost of aligning against an unknown residue.
	Unknown int
}

// Params is an immutable alignment parameter bundle. It is safe for
// concurrent use once constructed.
type Params struct {
	Penalties
	// ShiftFactor scales the read length into the permitted shift.
	ShiftFactor float64
	// MinShift is the least permitted shift for any read length.
	MinShift int
}

// ConfigError reports an invalid parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid alignment parameter %s: %s", e.Field, e.Reason)
}

// NewParams validates and returns a parameter bundle.
func NewParams(pen Penalties, shiftFactor float64, minShift int) (*Params, error) {
	checks := []struct {
		field string
		value int
	}{
		{"substitution", pen.Substitution},
		{"gap open", pen.GapOpen},
		{"gap extend", pen.GapExtend},
		{"unknown", pen.Unknown},
		{"min shift", minShift},
	}
	for _, c := range checks {
		if c.value < 0 {
			return nil, &ConfigError{Field: c.field, Reason: fmt.Sprintf("must not be negative, got %d", c.value)}
		}
	}
	if math.IsNaN(shiftFactor) || math.IsInf(shiftFactor, 0) || shiftFactor < 0 {
		return nil, &ConfigError{Field: "shift factor", Reason: fmt.Sprintf("must be a non-negative number, got %v", shiftFactor)}
	}
	if minShift == 0 && shiftFactor == 0 {
		return nil, &ConfigError{Field: "shift factor", Reason: "band would be zero for every read"}
	}

	return &Params{Penalties: pen, ShiftFactor: shiftFactor, MinShift: minShift}, nil
}

// DefaultParams returns the penalties used for DNA read mapping.
func DefaultParams() *Params {
	return &Params{
		Penalties: Penalties{
			Substitution: 9,
			GapOpen:      19,
			GapExtend:    1,
			Unknown:      0,
		},
		ShiftFactor: 0.1,
		MinShift:    7,
	}
}

// MaxShift returns the permitted template shift for a read of the given length.
func (p *Params) MaxShift(readLength int) int {
	s := int(math.Ceil(float64(readLength) * p.ShiftFactor))
	if s < p.MinShift {
		return p.MinShift
	}
	return s
}

func (p *Params) String() string {
	return fmt.Sprintf("Params { substitution: %d, gap_open: %d, gap_extend: %d, unknown: %d, shift_factor: %g, min_shift: %d }",
		p.Substitution, p.GapOpen, p.GapExtend, p.Unknown, p.ShiftFactor, p.MinShift)
}
