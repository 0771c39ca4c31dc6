// Package connector decodes Link Grammar connector notation.
//
// Two grammars exist for a single connector string. The strict dialect
// treats the leading uppercase run as the connector type and every later
// character as a one-character subtype. The extended dialect also accepts
// a multi-connector marker, leading subtypes, a missing type and a trailing
// direction. Callers pick the dialect explicitly; the two are not merged.
//
// Disjunct strings, the space-separated connector lists the parser reports
// per word, are decoded by DecodeDisjunct.
package connector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedConnector is returned when a connector string does not
	// match the grammar of the requested dialect.
	ErrMalformedConnector = errors.New("malformed connector")

	// ErrMalformedDisjunct is returned when a disjunct string cannot be
	// decoded. It indicates corrupt dictionary data, not bad user input.
	ErrMalformedDisjunct = errors.New("malformed disjunct")
)

// Direction is the side of the word a connector attaches to.
type Direction int

const (
	DirNone  Direction = iota // not present / not supplied
	DirPlus                   // "+", links to the right
	DirMinus                  // "-", links to the left
)

func (d Direction) String() string {
	switch d {
	case DirPlus:
		return "+"
	case DirMinus:
		return "-"
	default:
		return ""
	}
}

// ParseDirection maps "+" and "-" to a Direction. Anything else is DirNone.
func ParseDirection(s string) Direction {
	switch s {
	case "+":
		return DirPlus
	case "-":
		return DirMinus
	default:
		return DirNone
	}
}

// MarshalText encodes the direction as "+", "-" or "".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	*d = ParseDirection(string(b))
	if *d == DirNone && len(b) > 0 {
		return fmt.Errorf("unknown connector direction %q", b)
	}
	return nil
}

// Dialect selects the connector-string grammar.
type Dialect int

const (
	// DialectStrict requires a leading uppercase type; every following
	// character becomes a subtype.
	DialectStrict Dialect = iota
	// DialectExtended accepts "@", leading subtypes, an optional type,
	// trailing subtypes/wildcards and a trailing direction.
	DialectExtended
)

func (d Dialect) String() string {
	switch d {
	case DialectStrict:
		return "strict"
	case DialectExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// ParseDialect maps a dialect name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "strict", "":
		return DialectStrict, nil
	case "extended":
		return DialectExtended, nil
	default:
		return 0, fmt.Errorf("unknown connector dialect %q", s)
	}
}

// Token is a decoded connector.
type Token struct {
	Multi  bool      `json:"multi,omitempty"`
	Prefix []string  `json:"prefix,omitempty"`
	Core   string    `json:"core,omitempty"`
	Suffix []string  `json:"suffix,omitempty"`
	Dir    Direction `json:"dir,omitempty"`
}

// PartKind labels one element of a Token's positional serialization.
type PartKind string

const (
	PartSubType  PartKind = "LgSubType"
	PartConnType PartKind = "LgConnType"
	PartDir      PartKind = "LgConnDir"
	PartMulti    PartKind = "LgConnMulti"
)

// Part is one positional element of a serialized Token.
type Part struct {
	Kind PartKind `json:"kind"`
	Text string   `json:"text"`
}

// Parts returns the token in positional order: prefix subtypes, core type,
// suffix subtypes, then direction and multi-connector marker if present.
// Downstream consumers match on position, so the order is fixed.
func (t Token) Parts() []Part {
	parts := make([]Part, 0, len(t.Prefix)+len(t.Suffix)+3)
	for _, s := range t.Prefix {
		parts = append(parts, Part{Kind: PartSubType, Text: s})
	}
	if t.Core != "" {
		parts = append(parts, Part{Kind: PartConnType, Text: t.Core})
	}
	for _, s := range t.Suffix {
		parts = append(parts, Part{Kind: PartSubType, Text: s})
	}
	if t.Dir != DirNone {
		parts = append(parts, Part{Kind: PartDir, Text: t.Dir.String()})
	}
	if t.Multi {
		parts = append(parts, Part{Kind: PartMulti, Text: "@"})
	}
	return parts
}

// String renders the token back into connector notation, e.g. "@hWVx+".
func (t Token) String() string {
	var sb strings.Builder
	if t.Multi {
		sb.WriteByte('@')
	}
	for _, s := range t.Prefix {
		sb.WriteString(s)
	}
	sb.WriteString(t.Core)
	for _, s := range t.Suffix {
		sb.WriteString(s)
	}
	sb.WriteString(t.Dir.String())
	return sb.String()
}

// Tokenize decodes s with the given dialect. No direction or multi marker
// is supplied externally.
func Tokenize(d Dialect, s string) (Token, error) {
	switch d {
	case DialectStrict:
		return TokenizeStrict(s)
	case DialectExtended:
		return TokenizeExtended(s, DirNone, false)
	default:
		return Token{}, fmt.Errorf("%w: unknown dialect %d", ErrMalformedConnector, d)
	}
}

// TokenizeStrict decodes s with the strict dialect: a leading run of
// uppercase letters is the type and each remaining character, whatever it
// is, becomes one subtype.
func TokenizeStrict(s string) (Token, error) {
	if s == "" {
		return Token{}, fmt.Errorf("%w: empty connector string", ErrMalformedConnector)
	}
	i := 0
	for i < len(s) && isUpper(s[i]) {
		i++
	}
	if i == 0 {
		return Token{}, fmt.Errorf("%w: connector string must start with a capital letter: %q", ErrMalformedConnector, s)
	}
	tok := Token{Core: s[:i]}
	for ; i < len(s); i++ {
		tok.Suffix = append(tok.Suffix, s[i:i+1])
	}
	return tok, nil
}

// TokenizeExtended decodes s with the extended dialect. dir and multi are
// values already known from an enclosing structure; when set they take
// precedence over markers in s, which are still consumed.
func TokenizeExtended(s string, dir Direction, multi bool) (Token, error) {
	if s == "" {
		return Token{}, fmt.Errorf("%w: empty connector string", ErrMalformedConnector)
	}
	tok := Token{Multi: multi, Dir: dir}
	i := 0

	if s[i] == '@' {
		tok.Multi = true
		i++
	}

	for i < len(s) && isLower(s[i]) {
		tok.Prefix = append(tok.Prefix, s[i:i+1])
		i++
	}

	start := i
	for i < len(s) && isUpper(s[i]) {
		i++
	}
	tok.Core = s[start:i]

	for i < len(s) && (isLower(s[i]) || s[i] == '*') {
		tok.Suffix = append(tok.Suffix, s[i:i+1])
		i++
	}

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if tok.Dir == DirNone {
			tok.Dir = ParseDirection(s[i : i+1])
		}
	}
	return tok, nil
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
