package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"mad-sand/internal/input"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
	"mad-sand/internal/scene"
)

//go:embed schema.json
var schemaSource string

const schemaURL = "mem://sandbox/config.schema.json"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds every setting shared by the frontends.
type Config struct {
	Width          int               `yaml:"width"`
	Height         int               `yaml:"height"`
	CellSize       int               `yaml:"cell_size"`
	TPS            int               `yaml:"tps"`
	Seed           int64             `yaml:"seed"`
	Material       string            `yaml:"material"`
	BrushRadius    int               `yaml:"brush_radius"`
	Scene          string            `yaml:"scene"`
	SceneFile      string            `yaml:"scene_file"`
	SaveFile       string            `yaml:"save_file"`
	FlowDistance   int               `yaml:"flow_distance"`
	FireRiseChance float64           `yaml:"fire_rise_chance"`
	Keys           map[string]string `yaml:"keys,omitempty"`
}

// Default returns the stock sandbox settings.
func Default() Config {
	sc := sand.DefaultConfig()
	return Config{
		Width:          sc.Width,
		Height:         sc.Height,
		CellSize:       4,
		TPS:            60,
		Seed:           sc.Seed,
		Material:       sc.Material.String(),
		BrushRadius:    2,
		Scene:          "empty",
		SaveFile:       "sandbox.scene",
		FlowDistance:   sc.Params.FlowDistance,
		FireRiseChance: sc.Params.FireRiseChance,
	}
}

// Load reads a YAML file over the defaults. The document is checked against
// the embedded JSON schema before it is decoded.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := decode(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return err
	}
	if doc != nil {
		if err := validateDocument(doc); err != nil {
			return err
		}
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func validateDocument(doc any) error {
	schema, err := jsonschema.CompileString(schemaURL, schemaSource)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks the values that flags can set without passing the schema.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %d", ErrInvalid, c.CellSize)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	}
	if c.BrushRadius < 0 {
		return fmt.Errorf("%w: brush_radius %d", ErrInvalid, c.BrushRadius)
	}
	if _, err := material.Parse(c.Material); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.FireRiseChance < 0 || c.FireRiseChance > 1 {
		return fmt.Errorf("%w: fire_rise_chance %g", ErrInvalid, c.FireRiseChance)
	}
	if _, err := input.ParseBindings(c.Keys); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.CellSize, "scale", c.CellSize, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Material, "material", c.Material, "initially selected material")
	fs.IntVar(&c.BrushRadius, "brush", c.BrushRadius, "brush radius in cells")
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene generator to start from")
	fs.StringVar(&c.SceneFile, "load", c.SceneFile, "scene file to start from")
	fs.StringVar(&c.SaveFile, "save", c.SaveFile, "scene file written by the save key")
	fs.IntVar(&c.FlowDistance, "flow", c.FlowDistance, "cells a fluid may slide per tick")
	fs.Float64Var(&c.FireRiseChance, "fire-rise", c.FireRiseChance, "chance fire rises each tick")
}

// Parse loads the file named by -config (if any) and then applies every flag
// set explicitly on the command line on top of it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML config file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}

	flagged := cfg
	loaded, err := Load(path)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			loaded.Width = flagged.Width
		case "height":
			loaded.Height = flagged.Height
		case "scale":
			loaded.CellSize = flagged.CellSize
		case "tps":
			loaded.TPS = flagged.TPS
		case "seed":
			loaded.Seed = flagged.Seed
		case "material":
			loaded.Material = flagged.Material
		case "brush":
			loaded.BrushRadius = flagged.BrushRadius
		case "scene":
			loaded.Scene = flagged.Scene
		case "load":
			loaded.SceneFile = flagged.SceneFile
		case "save":
			loaded.SaveFile = flagged.SaveFile
		case "flow":
			loaded.FlowDistance = flagged.FlowDistance
		case "fire-rise":
			loaded.FireRiseChance = flagged.FireRiseChance
		}
	})
	return loaded, loaded.Validate()
}

// Sand converts the settings into a world configuration.
func (c Config) Sand() sand.Config {
	sc := sand.DefaultConfig()
	sc.Width = c.Width
	sc.Height = c.Height
	sc.Seed = c.Seed
	if m, err := material.Parse(c.Material); err == nil {
		sc.Material = m
	}
	sc.Params = sand.Params{FlowDistance: c.FlowDistance, FireRiseChance: c.FireRiseChance}
	return sc
}

// Bindings resolves the key overrides over the default keymap.
func (c Config) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Keys)
}

// Brush returns the configured brush.
func (c Config) Brush() input.Brush {
	return input.NewBrush(c.BrushRadius, 0, 32)
}

// World builds the starting world: the scene file when one is set, otherwise
// the named scene generator.
func (c Config) World() (*sand.World, error) {
	if c.SceneFile != "" {
		w, err := scene.LoadFile(c.SceneFile)
		if err != nil {
			return nil, err
		}
		w.SetParams(c.Sand().Params)
		return w, nil
	}
	name := c.Scene
	if name == "" {
		name = "empty"
	}
	return scene.Build(name, c.Sand())
}
