package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

func TestScale(t *testing.T) {
	tests := []struct {
		weight float64
		want   float64
	}{
		{10, 40},
		{8, 32.5},
		{6, 25},
		{4, 17.5},
		{2, 10},
	}
	for _, tt := range tests {
		if got := Scale(tt.weight, 2, 10, 10, 40); got != tt.want {
			t.Errorf("Scale(%v) = %v, want %v", tt.weight, got, tt.want)
		}
	}
}

func TestScaleTruncates(t *testing.T) {
	// a = 30/3 = 10, b = 10: weight 1/3 maps to 13.333...
	got := Scale(1.0/3, 0, 3, 10, 40)
	if got != 13.3 {
		t.Errorf("Scale() = %v, want 13.3", got)
	}
	// Truncation goes toward zero, never up.
	got = Scale(0.099, 0, 1, 0.5, 10.5)
	if got != 1.4 {
		t.Errorf("Scale() = %v, want 1.4", got)
	}
}

func TestScaleMonotonicAndInRange(t *testing.T) {
	cfg := cloud.Config{MinFontSize: 11, MaxFontSize: 37}
	s := NewScaler(-3.7, 91.3, cfg)
	prev := math.Inf(-1)
	for w := -3.7; w <= 91.3; w += 0.37 {
		got := s.Size(w)
		if got < cfg.MinFontSize || got > cfg.MaxFontSize {
			t.Fatalf("Size(%v) = %v, outside [%v, %v]", w, got, cfg.MinFontSize, cfg.MaxFontSize)
		}
		if got < prev {
			t.Fatalf("Size(%v) = %v, decreased from %v", w, got, prev)
		}
		if again := s.Size(w); again != got {
			t.Fatalf("Size(%v) not deterministic: %v then %v", w, got, again)
		}
		prev = got
	}
}

func TestScalerDegenerate(t *testing.T) {
	tests := []struct {
		name string
		cfg  cloud.Config
		want float64
	}{
		{"defaults to max", cloud.Config{MinFontSize: 10, MaxFontSize: 40}, 40},
		{"explicit fallback", cloud.Config{MinFontSize: 10, MaxFontSize: 40, FallbackFontSize: 24}, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScaler(5, 5, tt.cfg)
			if !s.Degenerate() {
				t.Fatal("Degenerate() = false, want true")
			}
			got := s.Size(5)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("Size() = %v, want finite", got)
			}
			if got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
		})
	}
}
