package connector

import (
	"fmt"
	"strings"
)

// MaxLabelLen is the longest connector label accepted in a disjunct string.
const MaxLabelLen = 59

// DisjunctToken is one connector of a disjunct string.
type DisjunctToken struct {
	Label string    `json:"label"`
	Dir   Direction `json:"dir"`
	Multi bool      `json:"multi,omitempty"`
}

// String renders the token in disjunct notation, e.g. "@MVp+".
func (d DisjunctToken) String() string {
	if d.Multi {
		return "@" + d.Label + d.Dir.String()
	}
	return d.Label + d.Dir.String()
}

// Expand decodes the token's label with the extended dialect, passing its
// direction and multi marker in as already-known fields.
func (d DisjunctToken) Expand() (Token, error) {
	return TokenizeExtended(d.Label, d.Dir, d.Multi)
}

// DecodeDisjunct splits a disjunct string such as "Wd- @MVp+ Ss*s+" into
// its connectors, preserving their order. Each token ends in its direction
// character and may start with "@".
func DecodeDisjunct(s string) ([]DisjunctToken, error) {
	var out []DisjunctToken
	p := 0
	for p < len(s) {
		for p < len(s) && s[p] == ' ' {
			p++
		}
		if p == len(s) {
			break
		}

		multi := false
		if s[p] == '@' {
			multi = true
			p++
		}

		end := strings.IndexByte(s[p:], ' ')
		if end < 0 {
			end = len(s)
		} else {
			end += p
		}

		if end == p {
			return nil, fmt.Errorf("%w: connector without direction in %q", ErrMalformedDisjunct, s)
		}
		label := s[p : end-1]
		if len(label) > MaxLabelLen {
			return nil, fmt.Errorf("%w: dictionary has a bug; unexpectedly long connector in %q", ErrMalformedDisjunct, s)
		}
		dir := ParseDirection(s[end-1 : end])
		if dir == DirNone {
			return nil, fmt.Errorf("%w: connector %q does not end in + or -", ErrMalformedDisjunct, s[p:end])
		}

		out = append(out, DisjunctToken{Label: label, Dir: dir, Multi: multi})
		p = end
	}
	return out, nil
}
