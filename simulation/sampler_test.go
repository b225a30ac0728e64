package simulation

import (
	"math/rand"
	"testing"

	"cricket-engine/models"
)

func TestSamplerDrawEmptyDistribution(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(1)))

	_, err := s.Draw(map[string]float64{})
	if err == nil {
		t.Fatal("expected EmptyDistribution for empty map")
	}
	me, ok := err.(*models.Error)
	if !ok || me.Kind != models.EmptyDistribution {
		t.Errorf("expected EmptyDistribution kind, got %v", err)
	}

	if _, err := s.Draw(map[string]float64{"a": 0, "b": 0}); err == nil {
		t.Fatal("expected EmptyDistribution for all-zero weights")
	}
}

func TestSamplerDrawSingleLabel(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		label, err := s.Draw(map[string]float64{"only": 3.5})
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		if label != "only" {
			t.Fatalf("Draw returned %q, want \"only\"", label)
		}
	}
}

func TestSamplerDrawSkipsZeroWeightLabels(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(2)))
	weights := map[string]float64{"never": 0, "always": 1}
	for i := 0; i < 50; i++ {
		label, err := s.Draw(weights)
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		if label == "never" {
			t.Fatal("drew a zero-weight label")
		}
	}
}

func TestSamplerDeterministicGivenSeed(t *testing.T) {
	weights := map[string]float64{"a": 1, "b": 2, "c": 3}

	draw := func(seed int64) []string {
		s := NewSampler(rand.New(rand.NewSource(seed)))
		out := make([]string, 100)
		for i := range out {
			label, err := s.Draw(weights)
			if err != nil {
				t.Fatalf("Draw: %v", err)
			}
			out[i] = label
		}
		return out
	}

	first := draw(99)
	second := draw(99)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSamplerDrawRoughlyProportional(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(7)))
	weights := map[string]float64{"heavy": 9, "light": 1}
	counts := map[string]int{}
	const n = 5000
	for i := 0; i < n; i++ {
		label, err := s.Draw(weights)
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		counts[label]++
	}
	ratio := float64(counts["heavy"]) / float64(n)
	if ratio < 0.85 || ratio > 0.95 {
		t.Errorf("heavy drawn %.3f of the time, want ~0.9", ratio)
	}
}

func TestSamplerDrawUniform(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(3)))
	if _, err := s.DrawUniform(nil); err == nil {
		t.Fatal("expected error for empty label list")
	}
	label, err := s.DrawUniform([]string{"x"})
	if err != nil {
		t.Fatalf("DrawUniform: %v", err)
	}
	if label != "x" {
		t.Errorf("DrawUniform = %q, want \"x\"", label)
	}
}
