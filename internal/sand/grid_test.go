package sand

import (
	"errors"
	"testing"

	"mad-sand/internal/material"
)

func TestNewGridRejectsInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}, {0, 0}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewGrid(%d,%d) err = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestNewGridStartsEmptyAndClean(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Count(material.Empty); got != 12 {
		t.Fatalf("empty count = %d, want 12", got)
	}
	for _, c := range g.cells {
		if c.Dirty {
			t.Fatal("fresh grid must not contain dirty cells")
		}
	}
}

func TestStrictAccessorsRejectOutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	bad := [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 2}}
	for _, p := range bad {
		x, y := p[0], p[1]
		if _, err := g.Get(x, y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%d,%d) err = %v", x, y, err)
		}
		if _, err := g.Cell(x, y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Cell(%d,%d) err = %v", x, y, err)
		}
		if err := g.Set(x, y, material.Sand); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%d,%d) err = %v", x, y, err)
		}
		if err := g.Swap(0, 0, x, y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Swap to (%d,%d) err = %v", x, y, err)
		}
		if err := g.Swap(x, y, 0, 0); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Swap from (%d,%d) err = %v", x, y, err)
		}
	}
	if got := g.Count(material.Sand); got != 0 {
		t.Fatalf("rejected writes must not change the grid, found %d sand", got)
	}
}

func TestSetRejectsUnknownMaterial(t *testing.T) {
	g, err := NewGrid(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Set(0, 0, material.Material(200)); !errors.Is(err, material.ErrUnknownMaterial) {
		t.Fatalf("Set with tag 200 err = %v", err)
	}
	if err := g.SetCell(1, 1, Cell{Material: material.Material(200)}); !errors.Is(err, material.ErrUnknownMaterial) {
		t.Fatalf("SetCell with tag 200 err = %v", err)
	}
	census := g.Census()
	if census[material.Empty] != 4 {
		t.Fatalf("census = %v, every cell must still be counted", census)
	}
}

func TestSwapExchangesAndMarksDirty(t *testing.T) {
	g, err := NewGrid(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetCell(0, 0, Cell{Material: material.Sand, Shade: 2}); err != nil {
		t.Fatal(err)
	}
	if err := g.Swap(0, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	moved, _ := g.Cell(1, 0)
	if moved.Material != material.Sand || moved.Shade != 2 || !moved.Dirty {
		t.Fatalf("moved cell = %+v, want dirty sand shade 2", moved)
	}
	vacated, _ := g.Cell(0, 0)
	if vacated.Material != material.Empty || !vacated.Dirty {
		t.Fatalf("vacated cell = %+v, want dirty empty", vacated)
	}

	if err := g.Set(1, 0, material.Stone); err != nil {
		t.Fatal(err)
	}
	if c, _ := g.Cell(1, 0); c.Dirty {
		t.Fatal("Set must clear the dirty flag")
	}
	g.ResetDirty()
	if c, _ := g.Cell(0, 0); c.Dirty {
		t.Fatal("ResetDirty must clear every flag")
	}
}

func TestCensus(t *testing.T) {
	g, err := NewGrid(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	_ = g.Set(0, 0, material.Water)
	_ = g.Set(2, 0, material.Water)
	census := g.Census()
	if census[material.Water] != 2 || census[material.Empty] != 1 {
		t.Fatalf("census = %v", census)
	}
}
