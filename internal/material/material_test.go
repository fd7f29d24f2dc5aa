package material

import (
	"errors"
	"testing"
)

func TestEmptyIsLightestAndStatic(t *testing.T) {
	empty := Lookup(Empty)
	if empty.Mobility != Static {
		t.Fatalf("empty mobility = %v, want static", empty.Mobility)
	}
	for _, m := range All() {
		if m == Empty {
			continue
		}
		if m.Density() <= empty.Density {
			t.Fatalf("%v density %d must exceed empty density %d", m, m.Density(), empty.Density)
		}
	}
}

func TestDensityOrdering(t *testing.T) {
	if !(Sand.Density() > Water.Density()) {
		t.Fatal("sand must sink through water")
	}
	if !(Water.Density() > Oil.Density()) {
		t.Fatal("water must sink below oil")
	}
	if Stone.Mobility() != Static {
		t.Fatalf("stone mobility = %v", Stone.Mobility())
	}
}

func TestParseRoundTripsNames(t *testing.T) {
	for _, m := range All() {
		got, err := Parse(" " + m.String() + " ")
		if err != nil {
			t.Fatalf("parse %q: %v", m.String(), err)
		}
		if got != m {
			t.Fatalf("parse %q = %v, want %v", m.String(), got, m)
		}
	}
	if got, err := Parse("WATER"); err != nil || got != Water {
		t.Fatalf("parse is case-insensitive: got %v, %v", got, err)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("plasma")
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("expected ErrUnknownMaterial, got %v", err)
	}
}

func TestLookupInvalidTagFallsBackToEmpty(t *testing.T) {
	bogus := Material(200)
	if bogus.Valid() {
		t.Fatal("tag 200 must be invalid")
	}
	if Lookup(bogus) != Lookup(Empty) {
		t.Fatal("invalid tag must resolve to empty properties")
	}
	if _, err := bogus.MarshalText(); err == nil {
		t.Fatal("marshalling an invalid tag must fail")
	}
}

func TestUnmarshalText(t *testing.T) {
	var m Material
	if err := m.UnmarshalText([]byte("oil")); err != nil {
		t.Fatal(err)
	}
	if m != Oil {
		t.Fatalf("got %v, want oil", m)
	}
}
