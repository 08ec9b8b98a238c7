package extool

import (
	"strings"
	"testing"
)

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		w, h    float64
		wantErr bool
	}{
		{"single line", "640 480", 640, 480, false},
		{"one per line", "640\n480\n", 640, 480, false},
		{"trailing newline", "1024 768\n", 1024, 768, false},
		{"missing height", "640", 0, 0, true},
		{"garbage", "no dims here at", 0, 0, true},
		{"zero width", "0 480", 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h, err := ParseDimensions(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseDimensions(%q) expected error", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDimensions(%q) error = %v", c.in, err)
			}
			if w != c.w || h != c.h {
				t.Fatalf("ParseDimensions(%q) = %g, %g, want %g, %g", c.in, w, h, c.w, c.h)
			}
		})
	}
}

func TestNewInspector(t *testing.T) {
	for _, backend := range []string{BackendIdentify, BackendExifTool} {
		in, err := NewInspector(backend, Config{})
		if err != nil {
			t.Fatalf("NewInspector(%q) error = %v", backend, err)
		}
		if in.Name() != backend {
			t.Fatalf("Name() = %q, want %q", in.Name(), backend)
		}
	}
	_, err := NewInspector("magic", Config{})
	if err == nil || !strings.Contains(err.Error(), "magic") {
		t.Fatalf("NewInspector should reject unknown backend, got %v", err)
	}
}
