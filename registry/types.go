package registry

import (
	"fmt"

	"github.com/blackwell-systems/enigma/machine"
)

// WheelDef is a named wheel wiring. Its slot is its declaration index.
type WheelDef struct {
	Name   string
	Wiring string
}

// Registry is a complete machine description loaded from YAML.
type Registry struct {
	Name      string
	Wheels    []WheelDef
	Reflector string
	Order     []int // 1-based wheel slots
	Positions []int // one offset per chain position
}

// Default describes the canonical preset machine.
func Default() *Registry {
	reg := &Registry{
		Name:      "default",
		Reflector: machine.ReflectorWiring,
		Order:     machine.PresetOrder(),
		Positions: machine.PresetPositions(),
	}
	for _, w := range machine.Wirings() {
		reg.Wheels = append(reg.Wheels, WheelDef{Name: w.Name, Wiring: w.Spec})
	}
	return reg
}

// Names maps each wheel name to its 1-based slot.
func (r *Registry) Names() map[string]int {
	names := make(map[string]int, len(r.Wheels))
	for i, w := range r.Wheels {
		names[w.Name] = i + 1
	}
	return names
}

// WheelName returns the name of the 1-based slot, or its number if unnamed.
func (r *Registry) WheelName(slot int) string {
	if slot >= 1 && slot <= len(r.Wheels) {
		return r.Wheels[slot-1].Name
	}
	return fmt.Sprintf("#%d", slot)
}

// Machine builds a machine configured from the registry. The result is in
// its starting state; call it again to replay.
func (r *Registry) Machine(opts ...machine.Option) (*machine.Machine, error) {
	m := machine.New(opts...)
	for i, w := range r.Wheels {
		if err := m.SetWheel(i, w.Wiring); err != nil {
			return nil, fmt.Errorf("wheel %q: %w", w.Name, err)
		}
	}
	m.SetReflector(r.Reflector)
	if err := m.SetOrder(r.Order...); err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	if err := m.SetPositions(r.Positions...); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	return m, nil
}
