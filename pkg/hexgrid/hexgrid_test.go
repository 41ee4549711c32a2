package hexgrid

import (
	"errors"
	"testing"

	"github.com/synapse-net/go-backend/pkg/e"
)

const testResolution = 8

func TestToCell_RejectsMalformedCoordinates(t *testing.T) {
	idx := NewIndex(testResolution)

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"lat too high", 91, 0},
		{"lat too low", -90.5, 0},
		{"lon too high", 0, 181},
		{"lon too low", 0, -180.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := idx.ToCell(tc.lat, tc.lon)
			if !errors.Is(err, e.ErrInvalidCoordinates) {
				t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestToCell_Deterministic(t *testing.T) {
	idx := NewIndex(testResolution)

	a, err := idx.ToCell(55.751244, 37.618423)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := idx.ToCell(55.751244, 37.618423)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == "" || a != b {
		t.Errorf("same coordinates must map to the same cell: %q vs %q", a, b)
	}
}

func TestRing_IncludesCenter(t *testing.T) {
	idx := NewIndex(testResolution)

	cell, err := idx.ToCell(48.8566, 2.3522)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ring0, err := idx.Ring(cell, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ring0) != 1 || ring0[0] != cell {
		t.Errorf("k=0 must return exactly the center cell, got %v", ring0)
	}

	ring1, err := idx.Ring(cell, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, c := range ring1 {
		if c == cell {
			found = true
		}
	}
	if !found {
		t.Error("ring must include the center cell")
	}
	if len(ring1) <= 1 {
		t.Errorf("k=1 must include neighbors, got %d cells", len(ring1))
	}
}

func TestGridDistance_Symmetric(t *testing.T) {
	idx := NewIndex(testResolution)

	a, err := idx.ToCell(40.7128, -74.0060)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := idx.ToCell(40.7138, -74.0160)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dab, err := idx.GridDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dba, err := idx.GridDistance(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dab != dba {
		t.Errorf("distance must be symmetric: %d vs %d", dab, dba)
	}

	daa, err := idx.GridDistance(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if daa != 0 {
		t.Errorf("distance to itself must be 0, got %d", daa)
	}
}
