// Package hanoi generates the move sequence of the Towers of Hanoi puzzle
// lazily, one move per call, while holding only O(height) live state.
package hanoi

import (
	"fmt"
)

// Pole labels one of the positions a disc can occupy. Labels are single
// upper-case ASCII letters.
type Pole byte

// Conventional pole labels. The default solution moves a tower from A to C
// using B as the buffer.
const (
	A Pole = 'A'
	B Pole = 'B'
	C Pole = 'C'
)

// String returns the single-character label of the pole.
func (p Pole) String() string { return string(rune(p)) }

// Valid reports whether p is an upper-case ASCII letter.
func (p Pole) Valid() bool { return p >= 'A' && p <= 'Z' }

// MarshalText implements encoding.TextMarshaler.
func (p Pole) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid pole label %q", rune(p))
	}
	return []byte{byte(p)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which lets a Pole be
// bound directly to flag.TextVar.
func (p *Pole) UnmarshalText(text []byte) error {
	parsed, err := ParsePole(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePole parses a pole label. It accepts exactly one ASCII letter in
// either case and normalizes it to upper case.
//
// Parameters:
//   - s: The label to parse (e.g. "a", "B").
//
// Returns:
//   - Pole: The parsed pole.
//   - error: An error if s is not a single ASCII letter.
func ParsePole(s string) (Pole, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("pole label must be a single letter, got %q", s)
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	p := Pole(c)
	if !p.Valid() {
		return 0, fmt.Errorf("pole label must be a letter, got %q", s)
	}
	return p, nil
}

// Move relocates the topmost disc of From onto To.
type Move struct {
	From Pole
	To   Pole
}

// String renders the move as "From->To", e.g. "A->C".
func (m Move) String() string {
	return string([]byte{byte(m.From), '-', '>', byte(m.To)})
}
