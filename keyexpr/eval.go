package keyexpr

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/enigma/machine"
	"github.com/blackwell-systems/enigma/wheel"
)

var roman = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4,
	"V": 5, "VI": 6, "VII": 7, "VIII": 8,
}

// Resolve turns the key into a 1-based wheel order and start positions.
// Wheel names are looked up in names first, then read as roman numerals.
// count is the number of installed wheels; refs to higher slots are rejected.
func (k *Key) Resolve(names map[string]int, count int) (order, positions []int, err error) {
	if count < 0 || count > machine.MaxWheels {
		count = machine.MaxWheels
	}
	if len(k.Wheels) > machine.MaxWheels {
		return nil, nil, fmt.Errorf("key names %d wheels (max %d)", len(k.Wheels), machine.MaxWheels)
	}
	if len(k.Positions) > len(k.Wheels) {
		return nil, nil, fmt.Errorf("key has %d positions for %d wheels", len(k.Positions), len(k.Wheels))
	}

	for _, n := range k.Wheels {
		slot, err := resolveWheel(n, names, count)
		if err != nil {
			return nil, nil, err
		}
		order = append(order, slot)
	}
	for _, n := range k.Positions {
		pos, err := resolvePosition(n)
		if err != nil {
			return nil, nil, err
		}
		positions = append(positions, pos)
	}
	return order, positions, nil
}

// Apply resolves the key against count installed wheels and installs it on
// m. Chain positions not covered by the key keep their current offsets.
func (k *Key) Apply(m *machine.Machine, names map[string]int, count int) error {
	order, positions, err := k.Resolve(names, count)
	if err != nil {
		return err
	}
	if err := m.SetOrder(order...); err != nil {
		return fmt.Errorf("key %q: %w", k.Source, err)
	}
	if err := m.SetPositions(positions...); err != nil {
		return fmt.Errorf("key %q: %w", k.Source, err)
	}
	return nil
}

func resolveWheel(n *Node, names map[string]int, count int) (int, error) {
	var slot int
	switch n.Type {
	case NodeInt:
		slot = n.IntVal
	case NodeName:
		var ok bool
		if slot, ok = names[n.Name]; !ok {
			if slot, ok = roman[strings.ToUpper(n.Name)]; !ok {
				return 0, fmt.Errorf("unknown wheel %q at position %d", n.Name, n.Pos)
			}
		}
	default:
		return 0, fmt.Errorf("unexpected node %v", n.Type)
	}
	if slot < 1 || slot > count {
		return 0, fmt.Errorf("wheel %s at position %d not in 1..%d", n, n.Pos, count)
	}
	return slot, nil
}

func resolvePosition(n *Node) (int, error) {
	switch n.Type {
	case NodeInt:
		if n.IntVal >= wheel.Size {
			return 0, fmt.Errorf("position %d at %d not in 0..%d", n.IntVal, n.Pos, wheel.Size-1)
		}
		return n.IntVal, nil
	case NodeName:
		if len(n.Name) != 1 || !wheel.IsLetter(n.Name[0]) {
			return 0, fmt.Errorf("position %q at %d is not a single letter", n.Name, n.Pos)
		}
		return wheel.Letter(n.Name[0]), nil
	}
	return 0, fmt.Errorf("unexpected node %v", n.Type)
}
