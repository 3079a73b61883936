// Package machine holds the engine state of a rotor cipher machine and the
// stepping and substitution logic that runs over it.
//
// A Machine is owned by one caller at a time. It is not safe for concurrent
// use; encode sessions that share a configuration should each work on a Clone.
package machine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blackwell-systems/enigma/wheel"
)

// MaxWheels is the number of wheel slots and order positions.
const MaxWheels = 8

var (
	ErrSlotRange     = errors.New("slot out of range")
	ErrPositionRange = errors.New("position out of range")
	ErrOrderRange    = errors.New("order value out of range")
	ErrOrderLength   = errors.New("order list too long")
)

// Machine is the mutable engine state: installed wheels, the reflector, the
// active wheel chain and one rotational offset per chain slot.
//
// Invalid configuration calls return an error and leave the state untouched.
type Machine struct {
	wheels    [MaxWheels]wheel.Table
	reflector wheel.Table

	// order[k] is the 0-based wheel slot at chain position k, for k < active.
	order     [MaxWheels]int
	active    int
	positions [MaxWheels]int

	log *zap.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger routes rejected configuration calls to l at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns an empty machine: no wheels installed, an empty chain and all
// positions at zero.
func New(opts ...Option) *Machine {
	m := &Machine{log: zap.NewNop()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Clone returns an independent copy of m. Encoding on the copy never moves
// the positions of m.
func (m *Machine) Clone() *Machine {
	c := *m
	return &c
}

// SetWheel installs the wheel built from wiring into slot.
func (m *Machine) SetWheel(slot int, wiring string) error {
	if slot < 0 || slot >= MaxWheels {
		return m.reject("set wheel", fmt.Errorf("%w: %d", ErrSlotRange, slot))
	}
	m.wheels[slot] = wheel.Build(wiring)
	return nil
}

// SetReflector installs the reflector built from wiring.
func (m *Machine) SetReflector(wiring string) {
	m.reflector = wheel.BuildReflector(wiring)
}

// SetPosition sets the offset of chain position index.
func (m *Machine) SetPosition(index, offset int) error {
	if index < 0 || index >= MaxWheels {
		return m.reject("set position", fmt.Errorf("%w: %d", ErrSlotRange, index))
	}
	if offset < 0 || offset >= wheel.Size {
		return m.reject("set position", fmt.Errorf("%w: %d", ErrPositionRange, offset))
	}
	m.positions[index] = offset
	return nil
}

// SetPositions sets the offsets of the leading chain positions. Either every
// offset is applied or none is.
func (m *Machine) SetPositions(offsets ...int) error {
	if len(offsets) > MaxWheels {
		return m.reject("set positions", fmt.Errorf("%w: %d offsets", ErrSlotRange, len(offsets)))
	}
	for _, off := range offsets {
		if off < 0 || off >= wheel.Size {
			return m.reject("set positions", fmt.Errorf("%w: %d", ErrPositionRange, off))
		}
	}
	copy(m.positions[:], offsets)
	return nil
}

// SetOrder replaces the active chain. Values are 1-based wheel slots; a 0
// ends the chain and anything after it is ignored. Fewer than MaxWheels
// values imply a terminator after the last one.
func (m *Machine) SetOrder(order ...int) error {
	if len(order) > MaxWheels {
		return m.reject("set order", fmt.Errorf("%w: %d values", ErrOrderLength, len(order)))
	}
	for _, v := range order {
		if v < 0 || v > MaxWheels {
			return m.reject("set order", fmt.Errorf("%w: %d", ErrOrderRange, v))
		}
	}

	var next [MaxWheels]int
	n := 0
	for _, v := range order {
		if v == 0 {
			break
		}
		next[n] = v - 1
		n++
	}
	m.order = next
	m.active = n
	return nil
}

// Order returns the active chain as 1-based wheel slots.
func (m *Machine) Order() []int {
	out := make([]int, m.active)
	for k := 0; k < m.active; k++ {
		out[k] = m.order[k] + 1
	}
	return out
}

// Active returns the number of wheels in the chain.
func (m *Machine) Active() int { return m.active }

// Positions returns a copy of all MaxWheels offsets.
func (m *Machine) Positions() []int {
	out := make([]int, MaxWheels)
	copy(out, m.positions[:])
	return out
}

// Wheel returns a copy of the table in slot.
func (m *Machine) Wheel(slot int) (wheel.Table, error) {
	if slot < 0 || slot >= MaxWheels {
		return wheel.Table{}, fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	return m.wheels[slot], nil
}

// Reflector returns a copy of the reflector table.
func (m *Machine) Reflector() wheel.Table { return m.reflector }

func (m *Machine) reject(op string, err error) error {
	m.log.Debug("configuration rejected", zap.String("op", op), zap.Error(err))
	return err
}
