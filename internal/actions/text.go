package actions

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is returned when text does not render a valid trace.
type ParseError struct {
	Pos  int
	Char byte
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid action '%c' at position %d of %q", e.Char, e.Pos, e.Text)
}

// Parse converts the one character per operation rendering back to operations.
func Parse(text string) ([]Op, error) {
	ops := make([]Op, len(text))
	for i := 0; i < len(text); i++ {
		op, ok := OpOf(text[i])
		if !ok {
			return nil, &ParseError{Pos: i, Char: text[i], Text: text}
		}
		ops[i] = op
	}
	return ops, nil
}

// FromString parses text and encodes it with the given header values.
func FromString(text string, templateStart, score int) (Array, error) {
	ops, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return FromOps(ops, templateStart, score), nil
}

// CIGAR renders a run-length CIGAR string. When extended is set, matches and
// mismatches are written as '=' and 'X', otherwise both are 'M'. Operations
// against unknown residues count as mismatches.
func CIGAR(a Array, extended bool) string {
	var sb strings.Builder
	var current byte
	count := 0
	for i := 0; i < a.Len(); i++ {
		c := cigarChar(a.Op(i), extended)
		if c == current {
			count++
			continue
		}
		if count > 0 {
			sb.WriteString(strconv.Itoa(count))
			sb.WriteByte(current)
		}
		current, count = c, 1
	}
	if count > 0 {
		sb.WriteString(strconv.Itoa(count))
		sb.WriteByte(current)
	}
	return sb.String()
}

func cigarChar(op Op, extended bool) byte {
	switch op {
	case Same:
		if extended {
			return '='
		}
		return 'M'
	case Mismatch, UnknownTemplate, UnknownRead:
		if extended {
			return 'X'
		}
		return 'M'
	default:
		return op.Char()
	}
}

// ClipEnds turns the first start and last end read residues into soft clips.
// Template-only operations next to a clipped end are dropped and the template
// start is moved past everything clipped at the front. The score is copied
// unchanged; callers that need an exact penalty re-score the result.
func ClipEnds(a Array, start, end int) Array {
	ops := a.Ops()
	templateStart := a.TemplateStart()

	out := make([]Op, 0, len(ops))
	i := 0
	for clipped := 0; i < len(ops) && clipped < start; i++ {
		op := ops[i]
		if op.ConsumesTemplate() {
			templateStart++
		}
		if op.ConsumesRead() {
			out = append(out, SoftClip)
			clipped++
		}
	}
	for i < len(ops) && !ops[i].ConsumesRead() {
		templateStart++
		i++
	}

	j := len(ops)
	tail := 0
	for clipped := 0; j > i && clipped < end; j-- {
		if ops[j-1].ConsumesRead() {
			tail++
			clipped++
		}
	}
	for j > i && !ops[j-1].ConsumesRead() {
		j--
	}

	out = append(out, ops[i:j]...)
	for k := 0; k < tail; k++ {
		out = append(out, SoftClip)
	}
	return FromOps(out, templateStart, a.Score())
}
