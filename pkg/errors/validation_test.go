package errors

import (
	"math"
	"testing"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		width, height float64
		wantCode      Code
	}{
		{"valid", "beach.jpg", 4000, 3000, ""},
		{"valid fractional", "a", 0.5, 0.25, ""},

		{"empty id", "", 10, 10, ErrCodeInvalidInput},
		{"control char id", "a\x01b", 10, 10, ErrCodeInvalidInput},
		{"zero width", "a", 0, 10, ErrCodeInvalidDimensions},
		{"negative height", "a", 10, -1, ErrCodeInvalidDimensions},
		{"NaN width", "a", math.NaN(), 10, ErrCodeInvalidDimensions},
		{"infinite height", "a", 10, math.Inf(1), ErrCodeInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.id, tt.width, tt.height)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateImage() error = %v, want nil", err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateImage() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAspect(t *testing.T) {
	tests := []struct {
		name    string
		aspect  float64
		wantErr bool
	}{
		{"landscape", 1.6, false},
		{"portrait", 0.5, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAspect(tt.aspect)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAspect(%v) error = %v, wantErr %v", tt.aspect, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidAspect {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidAspect)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "sunset", false},
		{"with dash", "sunset-beach_2", false},
		{"with slash", "trips/italy", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"space", "sunset beach", true},
		{"hash", "a#b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"simple file", "photo.jpg", false},
		{"nested", "trips/italy/photo.jpg", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.jpg", true},
		{"backslash", "trips\\photo.jpg", true},
		{"null byte", "a\x00b", true},
		{"too long", string(make([]byte, 600)), true},
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

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/captions.json", false},
		{"http", "http://localhost:8000/captions.json", false},

		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.com/captions.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
