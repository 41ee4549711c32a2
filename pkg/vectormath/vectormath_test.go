package vectormath

import (
	"errors"
	"math"
	"testing"

	"github.com/synapse-net/go-backend/pkg/e"
)

func TestCosineSimilarity_Identity(t *testing.T) {
	v := []float32{0.3, -1.5, 2.0, 0.7}

	got, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected ~1.0, got %f", got)
	}
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	v := []float32{1, 2, 3}
	neg := []float32{-1, -2, -3}

	got, err := CosineSimilarity(v, neg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got+1.0) > 1e-9 {
		t.Errorf("expected ~-1.0, got %f", got)
	}
}

func TestCosineSimilarity_ZeroNorm(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	got, err := CosineSimilarity(zero, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for zero-norm vector, got %f", got)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, e.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestToPercentage_Range(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{1.0, 100.0},
		{-1.0, 0.0},
		{0.0, 50.0},
		{0.5, 75.0},
		{0.333333, 66.67},
		// Накопленная погрешность float может дать близость чуть вне [-1,1].
		{1.0002, 100.0},
		{-1.0002, 0.0},
	}

	for _, tc := range cases {
		got := ToPercentage(tc.score)
		if got != tc.want {
			t.Errorf("ToPercentage(%f) = %f, want %f", tc.score, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("ToPercentage(%f) = %f out of [0,100]", tc.score, got)
		}
	}
}
