package verify

import (
	"fmt"
	"slices"

	"github.com/blackwell-systems/enigma/machine"
	"github.com/blackwell-systems/enigma/wheel"
)

// DefaultSample exercises letters of both cases, spaces and punctuation.
const DefaultSample = "Ceci est un long message chiffre avec la technique de la machine Enigma. 1939, 26 rotors!"

// Checker verifies the properties a configured machine must hold. It never
// moves the positions of the machine it was given; every run works on a clone.
type Checker struct {
	base *machine.Machine
	name func(slot int) string
}

// Result holds verification results.
type Result struct {
	ActiveWheels int
	SampleLen    int
	Letters      int

	TablesPass bool
	TablesFail string

	ReflectorPass bool
	ReflectorFail string
	FixedPoints   int

	ReciprocityPass bool
	ReciprocityFail string
	Cipher          string

	DeterminismPass bool
	DeterminismFail string

	PassThroughPass bool
	PassThroughFail string
}

// Pass reports whether every check passed.
func (r *Result) Pass() bool {
	return r.TablesPass && r.ReflectorPass && r.ReciprocityPass &&
		r.DeterminismPass && r.PassThroughPass
}

// New returns a checker for m. name renders a 1-based wheel slot in failure
// messages; nil falls back to the slot number.
func New(m *machine.Machine, name func(slot int) string) *Checker {
	if name == nil {
		name = func(slot int) string { return fmt.Sprintf("#%d", slot) }
	}
	return &Checker{base: m.Clone(), name: name}
}

// Run executes every check against sample.
func (c *Checker) Run(sample string) Result {
	res := Result{
		ActiveWheels: c.base.Active(),
		SampleLen:    len(sample),
	}
	for i := 0; i < len(sample); i++ {
		if wheel.IsLetter(sample[i]) {
			res.Letters++
		}
	}

	res.TablesPass, res.TablesFail = c.CheckTables()
	res.ReflectorPass, res.FixedPoints, res.ReflectorFail = c.CheckReflector()
	res.Cipher, res.ReciprocityPass, res.ReciprocityFail = c.CheckReciprocity(sample)
	res.DeterminismPass, res.DeterminismFail = c.CheckDeterminism(sample)
	res.PassThroughPass, res.PassThroughFail = c.CheckPassThrough(sample)
	return res
}

// CheckTables verifies that every wheel in the chain is a permutation whose
// inverse table undoes it.
func (c *Checker) CheckTables() (pass bool, fail string) {
	for k, slot := range c.base.Order() {
		tb, err := c.base.Wheel(slot - 1)
		if err != nil {
			return false, fmt.Sprintf("chain position %d: %v", k, err)
		}
		if !tb.IsPermutation() {
			return false, fmt.Sprintf("wheel %s at chain position %d is not a permutation (%s)",
				c.name(slot), k, tb.String())
		}
		for i := 0; i < wheel.Size; i++ {
			v := int(tb.Forward(i).Value)
			if got := tb.Inverse(v); got != i {
				return false, fmt.Sprintf("wheel %s: inverse(%c) = %c, want %c",
					c.name(slot), 'a'+v, 'a'+got, 'a'+i)
			}
		}
	}
	return true, ""
}

// CheckReflector verifies that the reflector is an involution and counts
// the letters it maps onto themselves.
func (c *Checker) CheckReflector() (pass bool, fixed int, fail string) {
	r := c.base.Reflector()
	fixed = len(r.FixedPoints())
	if !r.IsPermutation() {
		return false, fixed, fmt.Sprintf("reflector is not a permutation (%s)", r.String())
	}
	for i := 0; i < wheel.Size; i++ {
		v := int(r.Forward(i).Value)
		if back := int(r.Forward(v).Value); back != i {
			return false, fixed, fmt.Sprintf("reflector %c → %c → %c is not an involution",
				'a'+i, 'a'+v, 'a'+back)
		}
	}
	return true, fixed, ""
}

// CheckReciprocity encodes sample, encodes the result again from the same
// start, and expects the sample back with its letters lowercased.
func (c *Checker) CheckReciprocity(sample string) (cipher string, pass bool, fail string) {
	cipher = c.base.Clone().Encode(sample)
	plain := c.base.Clone().Encode(cipher)
	want := lowerASCII(sample)
	if plain == want {
		return cipher, true, ""
	}
	i := firstDiff(plain, want)
	return cipher, false, fmt.Sprintf("byte %d: %q → %q → %q", i, want[i], cipher[i], plain[i])
}

// CheckDeterminism encodes sample twice from the same start.
func (c *Checker) CheckDeterminism(sample string) (pass bool, fail string) {
	a := c.base.Clone().Encode(sample)
	b := c.base.Clone().Encode(sample)
	if a == b {
		return true, ""
	}
	i := firstDiff(a, b)
	return false, fmt.Sprintf("byte %d: %q then %q", i, a[i], b[i])
}

// CheckPassThrough verifies that non-letters come out unchanged and leave
// the positions where they were.
func (c *Checker) CheckPassThrough(sample string) (pass bool, fail string) {
	m := c.base.Clone()
	for i := 0; i < len(sample); i++ {
		ch := sample[i]
		if wheel.IsLetter(ch) {
			m.EncodeByte(ch)
			continue
		}
		before := m.Positions()
		out := m.EncodeByte(ch)
		if out != ch {
			return false, fmt.Sprintf("byte %d: %q encoded to %q", i, ch, out)
		}
		if after := m.Positions(); !slices.Equal(before, after) {
			return false, fmt.Sprintf("byte %d: %q moved positions %v → %v", i, ch, before, after)
		}
	}
	return true, ""
}

// Internal helpers.

func lowerASCII(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

// firstDiff returns the first index where a and b differ, or 0 when one of
// them is empty.
func firstDiff(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if n == 0 {
		return 0
	}
	return n - 1
}
