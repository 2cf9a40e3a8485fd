package canvas

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEChartsCanvasWritesFile(t *testing.T) {
	c := NewEChartsCanvas("test reach set")
	c.SetFillColour(Colour{R: 10, G: 200, B: 30})
	c.SetLineColour(Colour{R: 0, G: 0, B: 0})
	c.SetBoundingBox(-2, 2, -2, 2)
	c.DrawPolygon([][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}})

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	if err := c.Write(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty output file")
	}
}

func TestColourHex(t *testing.T) {
	c := Colour{R: 255, G: 0, B: 16}
	if got := c.hex(); got != "#ff0010" {
		t.Fatalf("expected #ff0010, got %s", got)
	}
}
