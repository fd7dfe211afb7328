package cloud

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr bool
	}{
		{"float64", 12.5, 12.5, false},
		{"int", 7, 7, false},
		{"int64", int64(-3), -3, false},
		{"uint8", uint8(200), 200, false},
		{"float32", float32(1.5), 1.5, false},
		{"json number", json.Number("42"), 42, false},
		{"numeric string", "12", 12, false},
		{"padded string", "  3.25 ", 3.25, false},
		{"zero is valid", 0, 0, false},

		{"nil", nil, 0, true},
		{"empty string", "", 0, true},
		{"word", "heavy", 0, true},
		{"bool", true, 0, true},
		{"NaN", math.NaN(), 0, true},
		{"+Inf", math.Inf(1), 0, true},
		{"Inf string", "Inf", 0, true},
		{"bad json number", json.Number("x"), 0, true},
		{"slice", []int{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeight(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidWeight) {
					t.Errorf("ParseWeight(%v) code = %v, want INVALID_WEIGHT", tt.input, errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseWeight(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"equal font sizes", Config{ContainerWidth: 100, MinFontSize: 12, MaxFontSize: 12}, false},
		{"zero width", Config{ContainerWidth: 0, MinFontSize: 10, MaxFontSize: 40}, true},
		{"negative width", Config{ContainerWidth: -1, MinFontSize: 10, MaxFontSize: 40}, true},
		{"zero min font", Config{ContainerWidth: 500, MinFontSize: 0, MaxFontSize: 40}, true},
		{"inverted range", Config{ContainerWidth: 500, MinFontSize: 40, MaxFontSize: 10}, true},
		{"NaN width", Config{ContainerWidth: math.NaN(), MinFontSize: 10, MaxFontSize: 40}, true},
		{"negative fallback", Config{ContainerWidth: 500, MinFontSize: 10, MaxFontSize: 40, FallbackFontSize: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestConfigValidateReportsFirstField(t *testing.T) {
	cfg := Config{ContainerWidth: math.NaN(), MinFontSize: math.Inf(1), MaxFontSize: math.NaN(), FallbackFontSize: math.NaN()}
	for range 20 {
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "container width") {
			t.Fatalf("Validate() = %v, want the container width error", err)
		}
	}
}

func TestConfigFallback(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Fallback(); got != DefaultMaxFontSize {
		t.Errorf("Fallback() = %v, want %v", got, DefaultMaxFontSize)
	}
	cfg.FallbackFontSize = 18
	if got := cfg.Fallback(); got != 18 {
		t.Errorf("Fallback() = %v, want 18", got)
	}
}

func TestVAlignText(t *testing.T) {
	for _, v := range []VAlign{AlignMiddle, AlignBottom, AlignTop} {
		text, err := v.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", v, err)
		}
		var back VAlign
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if back != v {
			t.Errorf("round trip %v -> %q -> %v", v, text, back)
		}
	}

	var v VAlign
	if err := v.UnmarshalText([]byte("baseline")); err == nil {
		t.Error("UnmarshalText(baseline) should fail")
	}
	if _, err := VAlign(9).MarshalText(); err == nil {
		t.Error("MarshalText(9) should fail")
	}
}

func TestRowDimensions(t *testing.T) {
	r := Row{Tags: []Tag{
		{ID: "a", Width: 40, Height: 12},
		{ID: "b", Width: 60, Height: 30},
		{ID: "c", Width: 10, Height: 20},
	}}
	if got := r.Width(); got != 110 {
		t.Errorf("Width() = %v, want 110", got)
	}
	if got := r.Height(); got != 30 {
		t.Errorf("Height() = %v, want 30", got)
	}
	if got := (Row{}).Height(); got != 0 {
		t.Errorf("empty Height() = %v, want 0", got)
	}
}
