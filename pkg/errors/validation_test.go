package errors

import (
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "box", false},
		{"valid with dot", "Cube.001", false},
		{"valid with space", "my cube", false},
		{"valid unicode", "würfel", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
		{"open brace", "foo{", true},
		{"close brace", "}foo", true},
		{"angle bracket", "<Group>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("object", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidScene)
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
		{"relative", "out/box.egg", false},
		{"absolute", "/tmp/box.egg", false},
		{"parent dir", "../box.egg", false},

		{"empty", "", true},
		{"null byte", "box\x00.egg", true},
		{"control char", "box\x01.egg", true},
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
