package sprout

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-grow", "after-grow"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	surf := NewImageSurface(32, 16)
	surf.FillCircle(Vec2{8, 8}, 4, ColorWhite)

	path, err := WriteSnapshot(dir, "a b", SurfaceImage(surf))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "_a_b.png") {
		t.Errorf("path = %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("bounds = %v", b)
	}
	if _, _, _, a := img.At(8, 8).RGBA(); a == 0 {
		t.Error("snapshot lost the drawn circle")
	}
}

func TestSurfaceImageUnknown(t *testing.T) {
	if SurfaceImage(&recordingSurface{}) != nil {
		t.Error("expected nil for a surface without pixels")
	}
	if _, err := WriteSnapshot(t.TempDir(), "x", nil); err == nil {
		t.Error("expected error for nil image")
	}
}
