package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/enigma/machine"
	"github.com/blackwell-systems/enigma/wheel"
)

// Raw YAML structures for unmarshaling.

type rawFile struct {
	Machine rawMachine `yaml:"machine"`
}

type rawMachine struct {
	Name      string            `yaml:"name"`
	Wheels    map[string]string `yaml:"wheels"`
	Reflector string            `yaml:"reflector"`
	Order     []interface{}     `yaml:"order"`
	Positions []interface{}     `yaml:"positions"`
}

// LoadFile parses a registry YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses registry YAML bytes. Omitted wheels default to the eight
// historical wirings, an omitted reflector to the preset reflector, and an
// omitted order to every wheel in declaration order.
func Parse(data []byte) (*Registry, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	r := &raw.Machine
	if r.Name == "" {
		return nil, fmt.Errorf("machine must have a name")
	}

	reg := &Registry{Name: r.Name, Reflector: r.Reflector}

	// Slots follow declaration order, so re-read the wheels mapping as a node.
	var ordered struct {
		Machine struct {
			Wheels yaml.Node `yaml:"wheels"`
		} `yaml:"machine"`
	}
	if err := yaml.Unmarshal(data, &ordered); err != nil {
		return nil, err
	}
	wheelsNode := &ordered.Machine.Wheels
	if wheelsNode.Kind == yaml.MappingNode {
		for i := 0; i < len(wheelsNode.Content)-1; i += 2 {
			name := wheelsNode.Content[i].Value
			wiring, ok := r.Wheels[name]
			if !ok {
				return nil, fmt.Errorf("wheel %q not found", name)
			}
			if err := wheel.Validate(wiring); err != nil {
				return nil, fmt.Errorf("wheel %q: %w", name, err)
			}
			reg.Wheels = append(reg.Wheels, WheelDef{Name: name, Wiring: wiring})
		}
	}
	if len(reg.Wheels) == 0 {
		reg.Wheels = Default().Wheels
	}
	if len(reg.Wheels) > machine.MaxWheels {
		return nil, fmt.Errorf("%d wheels declared (max %d)", len(reg.Wheels), machine.MaxWheels)
	}

	if reg.Reflector == "" {
		reg.Reflector = machine.ReflectorWiring
	}
	if err := wheel.Validate(reg.Reflector); err != nil {
		return nil, fmt.Errorf("reflector: %w", err)
	}

	// Resolve the chain against wheel names.
	names := reg.Names()
	if len(r.Order) > machine.MaxWheels {
		return nil, fmt.Errorf("order has %d entries (max %d)", len(r.Order), machine.MaxWheels)
	}
	for _, v := range r.Order {
		slot, err := resolveWheel(v, names, len(reg.Wheels))
		if err != nil {
			return nil, fmt.Errorf("order: %w", err)
		}
		reg.Order = append(reg.Order, slot)
	}
	if len(r.Order) == 0 {
		for i := range reg.Wheels {
			reg.Order = append(reg.Order, i+1)
		}
	}

	if len(r.Positions) > machine.MaxWheels {
		return nil, fmt.Errorf("positions has %d entries (max %d)", len(r.Positions), machine.MaxWheels)
	}
	for _, v := range r.Positions {
		pos, err := parsePosition(v)
		if err != nil {
			return nil, fmt.Errorf("positions: %w", err)
		}
		reg.Positions = append(reg.Positions, pos)
	}

	return reg, nil
}

func resolveWheel(v interface{}, names map[string]int, count int) (int, error) {
	switch x := v.(type) {
	case int:
		if x < 1 || x > count {
			return 0, fmt.Errorf("wheel %d not in 1..%d", x, count)
		}
		return x, nil
	case string:
		slot, ok := names[x]
		if !ok {
			return 0, fmt.Errorf("unknown wheel %q", x)
		}
		return slot, nil
	default:
		return 0, fmt.Errorf("unsupported wheel reference %v", v)
	}
}

func parsePosition(v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		if x < 0 || x >= wheel.Size {
			return 0, fmt.Errorf("position %d not in 0..%d", x, wheel.Size-1)
		}
		return x, nil
	case string:
		if len(x) != 1 || !wheel.IsLetter(x[0]) {
			return 0, fmt.Errorf("position %q is not a single letter", x)
		}
		return wheel.Letter(x[0]), nil
	default:
		return 0, fmt.Errorf("unsupported position %v", v)
	}
}

// Marshal renders the registry as YAML, keeping wheel declaration order.
func (r *Registry) Marshal() ([]byte, error) {
	wheels := &yaml.Node{Kind: yaml.MappingNode}
	for _, w := range r.Wheels {
		wheels.Content = append(wheels.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: w.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: w.Wiring},
		)
	}

	order := make([]string, len(r.Order))
	for i, slot := range r.Order {
		order[i] = r.WheelName(slot)
	}
	positions := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		positions[i] = string(rune('A' + p))
	}

	out := struct {
		Machine struct {
			Name      string     `yaml:"name"`
			Wheels    *yaml.Node `yaml:"wheels"`
			Reflector string     `yaml:"reflector"`
			Order     []string   `yaml:"order,flow"`
			Positions []string   `yaml:"positions,flow"`
		} `yaml:"machine"`
	}{}
	out.Machine.Name = r.Name
	out.Machine.Wheels = wheels
	out.Machine.Reflector = r.Reflector
	out.Machine.Order = order
	out.Machine.Positions = positions
	return yaml.Marshal(&out)
}
