package scene

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

const (
	formatName    = "sandbox.scene"
	formatVersion = 1
)

// ErrFormat is returned for files that are not scenes this build can read.
var ErrFormat = errors.New("scene: unsupported file")

// Header is written as a JSON line ahead of the gob payload so files can be
// inspected with zstdcat.
type Header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Tick    uint64 `json:"tick"`
}

type payload struct {
	Header    Header
	Seed      int64
	Active    uint8
	Flow      int
	FireRise  float64
	Materials []uint8
	Shades    []uint8
}

// Save writes the world as a zstd compressed scene.
func Save(dst io.Writer, w *sand.World) (err error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(enc)

	size := w.Size()
	cfg := w.Config()
	p := payload{
		Header: Header{
			Format:  formatName,
			Version: formatVersion,
			Width:   size.W,
			Height:  size.H,
			Tick:    w.Tick(),
		},
		Seed:      cfg.Seed,
		Active:    uint8(w.Active()),
		Flow:      cfg.Params.FlowDistance,
		FireRise:  cfg.Params.FireRiseChance,
		Materials: make([]uint8, 0, size.Cells()),
		Shades:    make([]uint8, 0, size.Cells()),
	}
	g := w.Grid()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c, _ := g.Cell(x, y)
			p.Materials = append(p.Materials, uint8(c.Material))
			p.Shades = append(p.Shades, c.Shade)
		}
	}

	hb, err := json.Marshal(p.Header)
	if err != nil {
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&p); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return bw.Flush()
}

// Load reads a scene written by Save into a new world.
func Load(src io.Reader) (*sand.World, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if h.Format != formatName || h.Version != formatVersion {
		return nil, fmt.Errorf("%w: %s v%d", ErrFormat, h.Format, h.Version)
	}

	var p payload
	if err := gob.NewDecoder(br).Decode(&p); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	n := p.Header.Width * p.Header.Height
	if len(p.Materials) != n || len(p.Shades) != n {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrFormat, len(p.Materials), p.Header.Width, p.Header.Height)
	}

	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = p.Header.Width, p.Header.Height
	cfg.Seed = p.Seed
	cfg.Material = material.Material(p.Active)
	cfg.Params = sand.Params{FlowDistance: p.Flow, FireRiseChance: p.FireRise}
	w, err := sand.NewWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	g := w.Grid()
	for i, m := range p.Materials {
		mat := material.Material(m)
		if !mat.Valid() {
			return nil, fmt.Errorf("%w: unknown material tag %d", ErrFormat, m)
		}
		x, y := i%cfg.Width, i/cfg.Width
		if err := g.SetCell(x, y, sand.Cell{Material: mat, Shade: p.Shades[i]}); err != nil {
			return nil, err
		}
	}
	w.RestoreTick(p.Header.Tick)
	return w, nil
}

// SaveFile writes the world to path, creating parent directories.
func SaveFile(path string, w *sand.World) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Save(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a scene from path.
func LoadFile(path string) (*sand.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
