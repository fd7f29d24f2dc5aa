package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-sand/internal/material"
)

func TestDefaultBindingsSelectMaterials(t *testing.T) {
	b := DefaultBindings()
	cmd, ok := b.Lookup("Q")
	require.True(t, ok)
	assert.Equal(t, Command{Action: ActionSelectMaterial, Material: material.Sand}, cmd)

	cmd, ok = b.Lookup("space")
	require.True(t, ok)
	assert.Equal(t, ActionPause, cmd.Action)

	key, ok := b.KeyFor(Command{Action: ActionSelectMaterial, Material: material.Water})
	require.True(t, ok)
	assert.Equal(t, "w", key)

	for _, m := range material.All() {
		_, ok := b.KeyFor(Command{Action: ActionSelectMaterial, Material: m})
		assert.True(t, ok, "%v has a default key", m)
	}
}

func TestParseBindingsOverridesAndRemoves(t *testing.T) {
	b, err := ParseBindings(map[string]string{
		"1": "sand",
		"q": "quit",
		"z": "",
	})
	require.NoError(t, err)

	assert.Equal(t, Command{Action: ActionSelectMaterial, Material: material.Sand}, b["1"])
	assert.Equal(t, ActionQuit, b["q"].Action)
	_, ok := b.Lookup("z")
	assert.False(t, ok, "empty command must unbind the key")
	assert.Equal(t, material.Water, b["w"].Material, "untouched defaults survive")
}

func TestParseBindingsRejectsUnknown(t *testing.T) {
	_, err := ParseBindings(map[string]string{"x": "teleport"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "oil", Command{Action: ActionSelectMaterial, Material: material.Oil}.String())
	assert.Equal(t, "brush+", Command{Action: ActionBrushGrow}.String())
	assert.Equal(t, "none", Command{}.String())
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "space", KeyName(' '))
	assert.Equal(t, "q", KeyName('Q'))
	assert.Equal(t, "[", KeyName('['))
}

func TestPointerStrokes(t *testing.T) {
	var p Pointer
	_, ok := p.Move(3, 3)
	assert.False(t, ok, "hovering must not paint")

	assert.Equal(t, Stroke{X0: 1, Y0: 2, X1: 1, Y1: 2}, p.Press(1, 2))
	s, ok := p.Move(5, 6)
	require.True(t, ok)
	assert.Equal(t, Stroke{X0: 1, Y0: 2, X1: 5, Y1: 6}, s)

	s, ok = p.Move(7, 6)
	require.True(t, ok)
	assert.Equal(t, Stroke{X0: 5, Y0: 6, X1: 7, Y1: 6}, s)

	p.Release()
	assert.False(t, p.Down())
	_, ok = p.Move(0, 0)
	assert.False(t, ok)
}

func TestBrushBounds(t *testing.T) {
	b := NewBrush(9, 0, 2)
	assert.Equal(t, 2, b.Radius)
	b.Grow()
	assert.Equal(t, 2, b.Radius)
	b.Shrink()
	b.Shrink()
	b.Shrink()
	assert.Equal(t, 0, b.Radius)
}
