package machine

import "github.com/blackwell-systems/enigma/wheel"

// Wiring is a named wheel wiring in builder notation.
type Wiring struct {
	Name string
	Spec string
}

// Historical wirings for wheels I through VIII; uppercase marks the notch.
var historical = [MaxWheels]Wiring{
	{"I", "ekmflgdqvzntowyhxUspaibrcj"},
	{"II", "ajdksIruxblhwtmcqgznpyfvoe"},
	{"III", "bdfhjlcprtxvznyeiwgakmUsqo"},
	{"IV", "esovpzjayqUirhxlnftgkdcmwb"},
	{"V", "Vzbrgityupsdnhlxawmjqofeck"},
	{"VI", "JpgvoumfyqbenHzrdkasxlictw"},
	{"VII", "NzjhgrcxmyswbOufaivlpekqdt"},
	{"VIII", "FkqhtlxocbjspDzramewniuygv"},
}

// ReflectorWiring is the reflector installed by Preset.
const ReflectorWiring = "ejmzalyxvbwfcrquontspikhgd"

var (
	presetOrder     = [MaxWheels]int{5, 1, 7, 6, 2, 4, 3, 8}
	presetPositions = [MaxWheels]int{5, 17, 23, 13, 19, 7, 2, 11}
)

// Wirings returns the historical wheel wirings in slot order.
func Wirings() []Wiring {
	out := make([]Wiring, MaxWheels)
	copy(out, historical[:])
	return out
}

// PresetOrder returns the chain installed by Preset, 1-based.
func PresetOrder() []int { return append([]int(nil), presetOrder[:]...) }

// PresetPositions returns the offsets installed by Preset.
func PresetPositions() []int { return append([]int(nil), presetPositions[:]...) }

// Preset resets m in place to the canonical configuration: all eight
// historical wheels, the reflector, the full chain and the default offsets.
// Re-running Preset is how a caller replays from the same starting point.
func Preset(m *Machine) {
	log := m.log
	*m = Machine{log: log}
	for slot, w := range historical {
		m.wheels[slot] = wheel.Build(w.Spec)
	}
	m.SetReflector(ReflectorWiring)
	_ = m.SetOrder(presetOrder[:]...)
	_ = m.SetPositions(presetPositions[:]...)
}

// NewDefault returns a machine in the canonical configuration.
func NewDefault(opts ...Option) *Machine {
	m := New(opts...)
	Preset(m)
	return m
}
