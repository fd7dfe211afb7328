package errors

import (
	"strings"
	"testing"
)

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"auto", "auto", false},
		{"short hex", "#abc", false},
		{"long hex", "#ff9655", false},
		{"hex with alpha", "#ff965580", false},
		{"named", "white", false},
		{"rgb", "rgb(10, 20, 30)", false},

		{"empty", "", true},
		{"bad hex length", "#abcd", true},
		{"bad hex digit", "#gggggg", true},
		{"style injection", "red; position: fixed", true},
		{"quote", `red"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"https", "https://example.com/tags/go", false},
		{"relative", "/tags/go", false},
		{"mailto", "mailto:someone@example.com", false},

		{"javascript", "javascript:alert(1)", true},
		{"javascript mixed case", "JavaScript:alert(1)", true},
		{"data", "data:text/html;base64,AAAA", true},
		{"control char", "https://example.com/\x01", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 3000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLink(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "tags.json", false},
		{"absolute", "/tmp/tags.yaml", false},
		{"nested", "data/clouds/tags.html", false},

		{"empty", "", true},
		{"null byte", "tags\x00.json", true},
		{"newline", "tags\n.json", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTagText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "golang", false},
		{"unicode", "日本語", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "go\x00lang", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTagText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
