package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 10, G: 20, B: 30, A: 255}}
	cells := []uint8{0, 1, 9}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	want := []byte{1, 2, 3, 255, 10, 20, 30, 255, 10, 20, 30, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{3, 4}, nil)
	if !slices.Equal(buf, make([]byte, 8)) {
		t.Fatalf("pixels = %v, want transparent", buf)
	}
}

func TestTintRGBA(t *testing.T) {
	buf := make([]byte, 12)
	for i := range buf {
		buf[i] = 7
	}
	tintRGBA(buf, []float64{0, 1, 2}, color.RGBA{R: 255, A: 128})
	want := []byte{0, 0, 0, 0, 128, 0, 0, 128, 128, 0, 0, 128}
	if !slices.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
}
