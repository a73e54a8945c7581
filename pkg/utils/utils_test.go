package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

var program = []byte{0x00, 0xE0, 0xA2, 0x2A, 0x60, 0x0C}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		got, err := LoadFile(writeFile(t, "maze.ch8", program))
		if err != nil || !bytes.Equal(got, program) {
			t.Errorf("expected %X, got %X (%v)", program, got, err)
		}
	})
	t.Run("gzip", func(t *testing.T) {
		var b bytes.Buffer
		w := gzip.NewWriter(&b)
		_, _ = w.Write(program)
		_ = w.Close()
		got, err := LoadFile(writeFile(t, "maze.ch8.gz", b.Bytes()))
		if err != nil || !bytes.Equal(got, program) {
			t.Errorf("expected %X, got %X (%v)", program, got, err)
		}
	})
	t.Run("zip", func(t *testing.T) {
		var b bytes.Buffer
		w := zip.NewWriter(&b)
		f, _ := w.Create("maze.ch8")
		_, _ = f.Write(program)
		_ = w.Close()
		got, err := LoadFile(writeFile(t, "maze.ZIP", b.Bytes()))
		if err != nil || !bytes.Equal(got, program) {
			t.Errorf("expected %X, got %X (%v)", program, got, err)
		}
	})
	t.Run("corrupt gzip", func(t *testing.T) {
		if _, err := LoadFile(writeFile(t, "bad.gz", program)); err == nil {
			t.Errorf("expected error for corrupt archive")
		}
	})
	t.Run("missing", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.ch8")); !os.IsNotExist(err) {
			t.Errorf("expected not exist error, got %v", err)
		}
	})
}

func TestScaleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(1, 0, color.White)
	dst := ScaleImage(src, 4)
	if dst.Bounds().Dx() != 8 || dst.Bounds().Dy() != 4 {
		t.Fatalf("expected 8x4, got %v", dst.Bounds())
	}
	if c := dst.RGBAAt(7, 3); c.R != 0xFF {
		t.Errorf("expected white at (7, 3), got %v", c)
	}
	if c := dst.RGBAAt(3, 3); c.R != 0 {
		t.Errorf("expected black at (3, 3), got %v", c)
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(0.25, 10.0, 8.0); v != 8 {
		t.Errorf("expected 8, got %v", v)
	}
	if v := Clamp(1, -3, 5); v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
}
