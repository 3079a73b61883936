package machine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPreset(t *testing.T) {
	m := NewDefault()
	if diff := cmp.Diff([]int{5, 1, 7, 6, 2, 4, 3, 8}, m.Order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 17, 23, 13, 19, 7, 2, 11}, m.Positions()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, MaxWheels, m.Active())

	for slot, w := range Wirings() {
		tb, err := m.Wheel(slot)
		require.NoError(t, err)
		assert.Equal(t, w.Spec, tb.String(), "wheel %s", w.Name)
	}
	r := m.Reflector()
	assert.Equal(t, ReflectorWiring, r.String())
}

func TestPresetResetsInPlace(t *testing.T) {
	m := NewDefault()
	_ = m.SetOrder(2)
	_ = m.SetPosition(0, 0)
	m.Encode("scramble the state")

	Preset(m)
	assert.Equal(t, PresetOrder(), m.Order())
	assert.Equal(t, PresetPositions(), m.Positions())
}

func TestSetPositionBounds(t *testing.T) {
	m := NewDefault()
	before := m.Positions()

	err := m.SetPosition(0, 26)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPositionRange))
	assert.Equal(t, before, m.Positions())

	err = m.SetPosition(0, -1)
	assert.True(t, errors.Is(err, ErrPositionRange))

	err = m.SetPosition(MaxWheels, 3)
	assert.True(t, errors.Is(err, ErrSlotRange))
	assert.Equal(t, before, m.Positions())

	require.NoError(t, m.SetPosition(7, 25))
	assert.Equal(t, 25, m.Positions()[7])
}

func TestSetPositionsAllOrNothing(t *testing.T) {
	m := NewDefault()
	before := m.Positions()

	err := m.SetPositions(1, 2, 30)
	assert.True(t, errors.Is(err, ErrPositionRange))
	assert.Equal(t, before, m.Positions())

	err = m.SetPositions(0, 0, 0, 0, 0, 0, 0, 0, 0)
	assert.True(t, errors.Is(err, ErrSlotRange))
	assert.Equal(t, before, m.Positions())

	require.NoError(t, m.SetPositions(1, 2, 3))
	assert.Equal(t, []int{1, 2, 3, 13, 19, 7, 2, 11}, m.Positions())
}

func TestSetWheelBounds(t *testing.T) {
	m := NewDefault()
	snapshot := m.Clone()

	err := m.SetWheel(MaxWheels, "abcdefghijklmnopqrstuvwxyz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotRange))
	assert.True(t, errors.Is(m.SetWheel(-1, "abcdefghijklmnopqrstuvwxyz"), ErrSlotRange))
	assert.Equal(t, snapshot.wheels, m.wheels)

	require.NoError(t, m.SetWheel(0, "abcdefghijklmnopqrstuvwxyz"))
	tb, err := m.Wheel(0)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", tb.String())

	_, err = m.Wheel(8)
	assert.True(t, errors.Is(err, ErrSlotRange))
}

func TestSetOrder(t *testing.T) {
	m := NewDefault()

	require.NoError(t, m.SetOrder(3, 1, 2))
	assert.Equal(t, []int{3, 1, 2}, m.Order())

	require.NoError(t, m.SetOrder(1, 0, 3))
	assert.Equal(t, []int{1}, m.Order())

	for _, bad := range [][]int{{9}, {1, -1}, {1, 2, 3, 4, 5, 6, 7, 8, 1}} {
		err := m.SetOrder(bad...)
		require.Error(t, err, "%v", bad)
		assert.Equal(t, []int{1}, m.Order())
	}
	assert.True(t, errors.Is(m.SetOrder(9), ErrOrderRange))
	assert.True(t, errors.Is(m.SetOrder(1, 2, 3, 4, 5, 6, 7, 8, 0), ErrOrderLength))

	require.NoError(t, m.SetOrder())
	assert.Empty(t, m.Order())
	assert.Equal(t, 0, m.Active())
}

func TestRejectionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewDefault(WithLogger(zap.New(core)))

	_ = m.SetPosition(0, 99)
	_ = m.SetOrder(42)
	require.NoError(t, m.SetPosition(0, 1))

	entries := logs.FilterMessage("configuration rejected").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "set position", entries[0].ContextMap()["op"])
	assert.Equal(t, "set order", entries[1].ContextMap()["op"])
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewDefault()
	c := m.Clone()
	c.Encode("hello")
	require.NoError(t, c.SetWheel(0, "abcdefghijklmnopqrstuvwxyz"))

	assert.Equal(t, PresetPositions(), m.Positions())
	tb, _ := m.Wheel(0)
	assert.Equal(t, "ekmflgdqvzntowyhxUspaibrcj", tb.String())
}
