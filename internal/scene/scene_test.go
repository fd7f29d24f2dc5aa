package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

func smallConfig(w, h int) sand.Config {
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return cfg
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"basin", "empty", "hourglass", "terrain"}, Names())
	_, err := Lookup("volcano")
	assert.ErrorIs(t, err, ErrUnknownScene)
	_, err = Build("volcano", smallConfig(4, 4))
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestEmptyScene(t *testing.T) {
	w, err := Build("empty", smallConfig(8, 8))
	require.NoError(t, err)
	assert.Equal(t, 64, w.Grid().Count(material.Empty))
}

func TestHourglassHasNeck(t *testing.T) {
	w, err := Build("hourglass", smallConfig(21, 20))
	require.NoError(t, err)
	g := w.Grid()
	assert.Greater(t, g.Count(material.Sand), 0)
	assert.Greater(t, g.Count(material.Stone), 0)

	mid := 10
	m, err := g.Get(10, mid)
	require.NoError(t, err)
	assert.Equal(t, material.Empty, m, "neck must be open")
	for _, x := range []int{9, 11} {
		m, err := g.Get(x, mid)
		require.NoError(t, err)
		assert.Equal(t, material.Stone, m)
	}
	for x := 0; x < 21; x++ {
		m, _ := g.Get(x, 19)
		assert.NotEqual(t, material.Sand, m, "sand starts in the upper half")
	}
}

func TestBasinLayersOilUnderWater(t *testing.T) {
	w, err := Build("basin", smallConfig(10, 13))
	require.NoError(t, err)
	g := w.Grid()
	require.Greater(t, g.Count(material.Oil), 0)
	require.Greater(t, g.Count(material.Water), 0)

	bottom, _ := g.Get(5, 11)
	assert.Equal(t, material.Oil, bottom)
	floor, _ := g.Get(5, 12)
	assert.Equal(t, material.Stone, floor)

	water, oil := g.Count(material.Water), g.Count(material.Oil)
	for i := 0; i < 200; i++ {
		w.Step()
	}
	assert.Equal(t, water, g.Count(material.Water))
	assert.Equal(t, oil, g.Count(material.Oil))
	settled, _ := g.Get(5, 11)
	assert.Equal(t, material.Water, settled, "water sinks below oil")
}

func TestTerrainDeterministicPerSeed(t *testing.T) {
	cfg := smallConfig(48, 32)
	a, err := Build("terrain", cfg)
	require.NoError(t, err)
	b, err := Build("terrain", cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
	assert.Greater(t, a.Grid().Count(material.Stone), 0)
	assert.Greater(t, a.Grid().Count(material.Sand), 0)
	assert.Equal(t, terrainSpouts, a.Grid().Count(material.Spout))
	for x := 0; x < cfg.Width; x++ {
		for y := 1; y < cfg.Height; y++ {
			m, _ := a.Grid().Get(x, y)
			assert.NotEqual(t, material.Spout, m, "spouts hang from the top row only")
		}
	}

	for x := 0; x < cfg.Width; x++ {
		m, _ := a.Grid().Get(x, cfg.Height-1)
		assert.Equal(t, material.Stone, m, "bedrock at x=%d", x)
	}
}

func TestApplyResetsFirst(t *testing.T) {
	w, err := sand.NewWithConfig(smallConfig(10, 13))
	require.NoError(t, err)
	w.Paint(5, 0, material.Fire)
	w.Step()
	require.NoError(t, Apply("basin", w, 0))
	assert.Equal(t, uint64(0), w.Tick())
	assert.Equal(t, 0, w.Grid().Count(material.Fire))
	assert.Greater(t, w.Grid().Count(material.Oil), 0)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := smallConfig(16, 12)
	cfg.Params.FlowDistance = 3
	w, err := Build("basin", cfg)
	require.NoError(t, err)
	w.SelectMaterial(material.Fire)
	for i := 0; i < 7; i++ {
		w.Step()
	}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, w))
	got, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, w.Size(), got.Size())
	assert.Equal(t, w.Tick(), got.Tick())
	assert.Equal(t, material.Fire, got.Active())
	assert.Equal(t, 3, got.Params().FlowDistance)
	assert.Equal(t, w.Cells(), got.Cells())

	w.Step()
	got.Step()
	assert.Equal(t, w.Cells(), got.Cells(), "loaded world continues identically")
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestSaveReportsWriteFailure(t *testing.T) {
	w, err := Build("terrain", smallConfig(32, 24))
	require.NoError(t, err)
	assert.Error(t, Save(failingWriter{}, w))
}

func TestLoadRejectsForeignData(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"format":"something.else","version":1}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	_, err = Load(&buf)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestSaveFileLoadFile(t *testing.T) {
	w, err := Build("hourglass", smallConfig(12, 12))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "hourglass.scene")
	require.NoError(t, SaveFile(path, w))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, w.Cells(), got.Cells())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.scene"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
