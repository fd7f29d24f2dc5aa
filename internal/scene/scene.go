package scene

import (
	"errors"
	"fmt"
	"sort"

	"mad-sand/internal/sand"
)

// Generator paints a starting layout into an empty world.
type Generator func(w *sand.World, seed int64)

// ErrUnknownScene is returned when no generator is registered under a name.
var ErrUnknownScene = errors.New("scene: unknown scene")

var generators = map[string]Generator{}

// Register adds a generator to the registry. Empty names and nil generators
// are ignored.
func Register(name string, g Generator) {
	if name == "" || g == nil {
		return
	}
	generators[name] = g
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return g, nil
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply resets w with seed and paints the named scene into it.
func Apply(name string, w *sand.World, seed int64) error {
	g, err := Lookup(name)
	if err != nil {
		return err
	}
	w.Reset(seed)
	if seed == 0 {
		seed = w.Config().Seed
	}
	g(w, seed)
	return nil
}

// Build creates a world from cfg and paints the named scene with cfg.Seed.
func Build(name string, cfg sand.Config) (*sand.World, error) {
	g, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	w, err := sand.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	g(w, cfg.Seed)
	return w, nil
}
