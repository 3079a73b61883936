package wheel

import (
	"errors"
	"fmt"
)

var (
	ErrWiringLength = errors.New("wiring must be 26 letters")
	ErrWiringSymbol = errors.New("wiring contains a non-letter")
)

// Build constructs a wheel from a 26-character wiring. Character i gives the
// output for input i, case-insensitively; an uppercase character marks a notch.
//
// Build does not validate its input. Call Validate first for untrusted wirings;
// malformed symbols are folded into range so the tables stay indexable.
func Build(wiring string) Table {
	t := fill(wiring)
	for i, c := range t.cells {
		t.inverse[c.Value] = uint8(i)
	}
	t.hasInverse = true
	return t
}

// BuildReflector constructs a reflector. Only the forward table is derived.
func BuildReflector(wiring string) Table {
	return fill(wiring)
}

// Validate checks that wiring is exactly 26 ASCII letters.
func Validate(wiring string) error {
	if len(wiring) != Size {
		return fmt.Errorf("%w: got %d", ErrWiringLength, len(wiring))
	}
	for i := 0; i < len(wiring); i++ {
		if !IsLetter(wiring[i]) {
			return fmt.Errorf("%w: %q at position %d", ErrWiringSymbol, wiring[i], i)
		}
	}
	return nil
}

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Letter returns the alphabet index of c, ignoring case.
func Letter(c byte) int {
	v := (int(c|0x20) - 'a') % Size
	if v < 0 {
		v += Size
	}
	return v
}

func fill(wiring string) Table {
	var t Table
	n := len(wiring)
	if n > Size {
		n = Size
	}
	for i := 0; i < n; i++ {
		c := wiring[i]
		t.cells[i] = Cell{Value: uint8(Letter(c)), Notch: c >= 'A' && c <= 'Z'}
	}
	return t
}
