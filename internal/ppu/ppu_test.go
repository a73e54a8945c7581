package ppu

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/types"
)

func countOn(f *Framebuffer) int {
	n := 0
	for y := range f.Pixels {
		for x := range f.Pixels[y] {
			if f.Pixels[y][x] {
				n++
			}
		}
	}
	return n
}

func TestFramebuffer_XorSprite(t *testing.T) {
	f := NewFramebuffer(EdgeClip)

	if f.XorSprite(0, 0, []byte{0xFF}) {
		t.Errorf("expected no collision on a blank screen")
	}
	for x := 0; x < 8; x++ {
		if !f.Pixel(x, 0) {
			t.Errorf("expected pixel (%d, 0) to be on", x)
		}
	}
	if n := countOn(f); n != 8 {
		t.Errorf("expected 8 pixels on, got %d", n)
	}

	if !f.XorSprite(0, 0, []byte{0xFF}) {
		t.Errorf("expected collision when redrawing the same sprite")
	}
	if n := countOn(f); n != 0 {
		t.Errorf("expected every pixel off, got %d on", n)
	}
}

func TestFramebuffer_AggregateCollision(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	// a single pixel at (0, 0)
	f.XorSprite(0, 0, []byte{0x80})

	// first row collides, last row doesn't
	if !f.XorSprite(0, 0, []byte{0x80, 0x80, 0x80}) {
		t.Errorf("expected collision from the first row to be reported")
	}

	f.Clear()
	f.XorSprite(0, 2, []byte{0x01})
	// only the last bit of the last row collides
	if !f.XorSprite(0, 0, []byte{0x80, 0x00, 0x01}) {
		t.Errorf("expected collision from the last row to be reported")
	}
}

func TestFramebuffer_Clear(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	f.XorSprite(10, 10, []byte{0xAA, 0x55})
	f.Apply(ClearScreen())
	if n := countOn(f); n != 0 {
		t.Errorf("expected every pixel off, got %d on", n)
	}
}

func TestFramebuffer_Edges(t *testing.T) {
	t.Run("origin wraps", func(t *testing.T) {
		f := NewFramebuffer(EdgeClip)
		f.XorSprite(64+3, 32+1, []byte{0x80})
		if !f.Pixel(3, 1) {
			t.Errorf("expected origin (67, 33) to wrap to (3, 1)")
		}
	})
	t.Run("clip", func(t *testing.T) {
		f := NewFramebuffer(EdgeClip)
		f.XorSprite(60, 30, []byte{0xFF, 0xFF, 0xFF, 0xFF})
		if n := countOn(f); n != 8 {
			t.Errorf("expected 4x2 visible pixels, got %d", n)
		}
		if f.Pixel(0, 30) || f.Pixel(60, 0) {
			t.Errorf("expected clipped pixels to be discarded")
		}
	})
	t.Run("wrap", func(t *testing.T) {
		f := NewFramebuffer(EdgeWrap)
		f.XorSprite(60, 30, []byte{0xFF, 0xFF, 0xFF, 0xFF})
		if n := countOn(f); n != 32 {
			t.Errorf("expected 32 pixels on, got %d", n)
		}
		if !f.Pixel(0, 30) || !f.Pixel(3, 1) || !f.Pixel(60, 0) {
			t.Errorf("expected pixels to wrap to the opposite edges")
		}
	})
	t.Run("clip collision ignores discarded pixels", func(t *testing.T) {
		f := NewFramebuffer(EdgeClip)
		f.XorSprite(0, 0, []byte{0xFF})
		if f.XorSprite(60, 0, []byte{0x0F}) {
			t.Errorf("expected no collision from clipped pixels")
		}
	})
}

func TestFramebuffer_Dirty(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	f.Clean()
	if f.Dirty() {
		t.Errorf("expected clean framebuffer")
	}
	f.Apply(NoOp)
	if f.Dirty() {
		t.Errorf("expected NoOp to leave the framebuffer clean")
	}
	f.Apply(Sprite(0, 0, []byte{1}))
	if !f.Dirty() {
		t.Errorf("expected sprite to dirty the framebuffer")
	}
}

func TestFramebuffer_State(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	f.XorSprite(5, 7, []byte{0xC3, 0x3C})
	s := types.NewState()
	f.Save(s)

	g := NewFramebuffer(EdgeClip)
	g.Load(types.StateFromBytes(s.Bytes()))
	if g.Pixels != f.Pixels {
		t.Errorf("expected restored pixels to match")
	}
}

func TestFramebuffer_Render(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	f.XorSprite(0, 0, []byte{0x80})
	var frame Frame
	f.Render(&frame)
	if frame[0][0] != [3]uint8{0xFF, 0xFF, 0xFF} {
		t.Errorf("expected white pixel, got %v", frame[0][0])
	}
	if frame[0][1] != [3]uint8{} {
		t.Errorf("expected black pixel, got %v", frame[0][1])
	}
}

func TestParseEdgeMode(t *testing.T) {
	for _, m := range []EdgeMode{EdgeClip, EdgeWrap} {
		got, err := ParseEdgeMode(m.String())
		if err != nil || got != m {
			t.Errorf("expected %s, got %s (%v)", m, got, err)
		}
	}
	if _, err := ParseEdgeMode("bounce"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestFrame_Image(t *testing.T) {
	f := NewFramebuffer(EdgeClip)
	f.XorSprite(63, 31, []byte{0x80})
	var frame Frame
	f.Render(&frame)

	img := frame.Image()
	if c := img.RGBAAt(63, 31); c.R != 0xFF || c.A != 0xFF {
		t.Errorf("expected opaque white at (63, 31), got %v", c)
	}
	if b := frame.Bytes(); len(b) != ScreenWidth*ScreenHeight*3 || b[len(b)-1] != 0xFF {
		t.Errorf("expected packed RGB with last pixel white")
	}
}
