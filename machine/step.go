package machine

import "github.com/blackwell-systems/enigma/wheel"

// Step advances the chain by one keystroke. The first wheel always moves.
// Each wheel that lands on a notched cell carries one step into the next
// active wheel, and the carry repeats down the chain.
//
// This is a single-pass cascade. The double-step of a middle rotor found on
// the historical machines is not reproduced; both directions of a round trip
// depend on this exact rule.
func (m *Machine) Step() {
	for k := 0; k < m.active; k++ {
		m.positions[k] = (m.positions[k] + 1) % wheel.Size
		if !m.wheels[m.order[k]].Notch(m.positions[k]) {
			return
		}
	}
}
