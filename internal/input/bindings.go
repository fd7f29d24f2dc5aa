package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"mad-sand/internal/material"
)

// Action is a frontend-independent user intent.
type Action uint8

const (
	ActionNone Action = iota
	ActionSelectMaterial
	ActionBrushGrow
	ActionBrushShrink
	ActionReset
	ActionPause
	ActionStep
	ActionSave
	ActionOverlay
	ActionQuit
)

var actionNames = map[string]Action{
	"brush+":  ActionBrushGrow,
	"brush-":  ActionBrushShrink,
	"reset":   ActionReset,
	"pause":   ActionPause,
	"step":    ActionStep,
	"save":    ActionSave,
	"overlay": ActionOverlay,
	"quit":    ActionQuit,
}

// ErrUnknownAction is returned when a binding names neither an action nor a
// material.
var ErrUnknownAction = errors.New("input: unknown action")

// Command is what a key resolves to.
type Command struct {
	Action   Action
	Material material.Material
}

func (c Command) String() string {
	if c.Action == ActionSelectMaterial {
		return c.Material.String()
	}
	for name, a := range actionNames {
		if a == c.Action {
			return name
		}
	}
	return "none"
}

// ParseCommand resolves an action name or a material name.
func ParseCommand(name string) (Command, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if a, ok := actionNames[key]; ok {
		return Command{Action: a}, nil
	}
	m, err := material.Parse(key)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return Command{Action: ActionSelectMaterial, Material: m}, nil
}

// Bindings maps key names (see KeyName) to commands.
type Bindings map[string]Command

// DefaultBindings returns the stock keymap.
func DefaultBindings() Bindings {
	return Bindings{
		"q":      {Action: ActionSelectMaterial, Material: material.Sand},
		"w":      {Action: ActionSelectMaterial, Material: material.Water},
		"e":      {Action: ActionSelectMaterial, Material: material.Stone},
		"t":      {Action: ActionSelectMaterial, Material: material.Empty},
		"y":      {Action: ActionSelectMaterial, Material: material.Fire},
		"o":      {Action: ActionSelectMaterial, Material: material.Oil},
		"g":      {Action: ActionSelectMaterial, Material: material.Spout},
		"r":      {Action: ActionSelectMaterial, Material: material.Magic},
		"m":      {Action: ActionSelectMaterial, Material: material.Maze},
		"[":      {Action: ActionBrushShrink},
		"]":      {Action: ActionBrushGrow},
		"z":      {Action: ActionReset},
		"space":  {Action: ActionPause},
		"n":      {Action: ActionStep},
		"s":      {Action: ActionSave},
		"d":      {Action: ActionOverlay},
		"escape": {Action: ActionQuit},
	}
}

// ParseBindings builds bindings from key -> command name pairs, layered over
// the defaults. An empty command name removes the default binding.
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for key, name := range raw {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			return nil, fmt.Errorf("input: empty key name for %q", name)
		}
		if strings.TrimSpace(name) == "" {
			delete(b, k)
			continue
		}
		cmd, err := ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		b[k] = cmd
	}
	return b, nil
}

// Lookup resolves a key name.
func (b Bindings) Lookup(key string) (Command, bool) {
	cmd, ok := b[strings.ToLower(key)]
	return cmd, ok
}

// Keys returns the bound key names in sorted order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeyFor returns the first key, in sorted order, bound to cmd.
func (b Bindings) KeyFor(cmd Command) (string, bool) {
	for _, k := range b.Keys() {
		if b[k] == cmd {
			return k, true
		}
	}
	return "", false
}

// KeyName normalises a typed character into the names used by Bindings.
func KeyName(r rune) string {
	switch r {
	case ' ':
		return "space"
	case '\t':
		return "tab"
	case '\r', '\n':
		return "enter"
	case 0x1b:
		return "escape"
	}
	return strings.ToLower(string(r))
}
