package machine

import "github.com/blackwell-systems/enigma/wheel"

// substitute runs v through the chain, the reflector and back.
func (m *Machine) substitute(v int) int {
	// Forward, first to last.
	for k := 0; k < m.active; k++ {
		v = (v + m.positions[k]) % wheel.Size
		v = int(m.wheels[m.order[k]].Forward(v).Value)
	}

	v = int(m.reflector.Forward(v).Value)

	// Backward, last to first.
	for k := m.active - 1; k >= 0; k-- {
		v = m.wheels[m.order[k]].Inverse(v)
		v -= m.positions[k]
		if v < 0 {
			v += wheel.Size
		}
	}
	return v
}
