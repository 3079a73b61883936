package wheel

// Size is the number of cells on a wheel, one per letter of the alphabet.
const Size = 26

// Cell is one rotational position of a wheel.
type Cell struct {
	Value uint8 // substituted symbol, 0..25
	Notch bool  // landing here after a step carries into the next wheel
}

// Table is a wheel's forward permutation plus its derived inverse.
// Tables are plain values: copying one never aliases another.
type Table struct {
	cells      [Size]Cell
	inverse    [Size]uint8
	hasInverse bool
}

// Forward returns the cell at input position i.
func (t *Table) Forward(i int) Cell { return t.cells[i] }

// Inverse returns the input position whose forward value is v.
// Only meaningful for tables built with Build.
func (t *Table) Inverse(v int) int { return int(t.inverse[v]) }

// Notch reports whether position i carries a notch.
func (t *Table) Notch(i int) bool { return t.cells[i].Notch }

// HasInverse reports whether the inverse table was derived.
func (t *Table) HasInverse() bool { return t.hasInverse }

// Notches returns the notched positions in ascending order.
func (t *Table) Notches() []int {
	var out []int
	for i, c := range t.cells {
		if c.Notch {
			out = append(out, i)
		}
	}
	return out
}

// String renders the table back into wiring form, uppercase at notches.
func (t *Table) String() string {
	b := make([]byte, Size)
	for i, c := range t.cells {
		if c.Notch {
			b[i] = 'A' + c.Value
		} else {
			b[i] = 'a' + c.Value
		}
	}
	return string(b)
}

// IsPermutation reports whether every symbol appears exactly once.
func (t *Table) IsPermutation() bool {
	var seen [Size]bool
	for _, c := range t.cells {
		if int(c.Value) >= Size || seen[c.Value] {
			return false
		}
		seen[c.Value] = true
	}
	return true
}

// IsInvolution reports whether applying the table twice is the identity.
func (t *Table) IsInvolution() bool {
	for i, c := range t.cells {
		if int(c.Value) >= Size || int(t.cells[c.Value].Value) != i {
			return false
		}
	}
	return true
}

// FixedPoints returns the positions mapped onto themselves.
func (t *Table) FixedPoints() []int {
	var out []int
	for i, c := range t.cells {
		if int(c.Value) == i {
			out = append(out, i)
		}
	}
	return out
}
