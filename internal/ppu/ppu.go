// Package ppu provides the 64x32 monochrome framebuffer, and
// the compositing of display instructions onto it.
package ppu

import (
	"fmt"
	"image"

	"github.com/thelolagemann/gochip8/internal/ppu/palette"
	"github.com/thelolagemann/gochip8/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 64
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 32
)

// EdgeMode decides what happens to sprite pixels that fall
// past the right or bottom edge of the screen. In both modes
// the sprite origin itself is wrapped onto the screen first.
type EdgeMode uint8

const (
	// EdgeClip discards pixels past the edge.
	EdgeClip EdgeMode = iota
	// EdgeWrap wraps pixels around to the opposite edge.
	EdgeWrap
)

func (e EdgeMode) String() string {
	switch e {
	case EdgeClip:
		return "clip"
	case EdgeWrap:
		return "wrap"
	}
	return fmt.Sprintf("EdgeMode(%d)", e)
}

// ParseEdgeMode parses "clip" or "wrap".
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "clip":
		return EdgeClip, nil
	case "wrap":
		return EdgeWrap, nil
	}
	return EdgeClip, fmt.Errorf("ppu: unknown edge mode %q", s)
}

// Frame is an RGB rendering of the framebuffer.
type Frame [ScreenHeight][ScreenWidth][3]uint8

// Image converts the frame into an image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for y := range f {
		for x := range f[y] {
			i := img.PixOffset(x, y)
			copy(img.Pix[i:i+3], f[y][x][:])
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}

// Bytes returns the frame as packed RGB triplets, row by row.
func (f *Frame) Bytes() []byte {
	b := make([]byte, 0, ScreenWidth*ScreenHeight*3)
	for y := range f {
		for x := range f[y] {
			b = append(b, f[y][x][:]...)
		}
	}
	return b
}

// Framebuffer is the 64x32 grid of pixels.
type Framebuffer struct {
	Pixels [ScreenHeight][ScreenWidth]bool
	Edge   EdgeMode

	dirty bool
}

// NewFramebuffer returns a cleared framebuffer.
func NewFramebuffer(edge EdgeMode) *Framebuffer {
	return &Framebuffer{Edge: edge, dirty: true}
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.Pixels = [ScreenHeight][ScreenWidth]bool{}
	f.dirty = true
}

// XorSprite XORs each bit of rows onto the framebuffer, with
// the most significant bit of rows[0] landing on (x, y). It
// returns true if any pixel was turned from on to off.
func (f *Framebuffer) XorSprite(x, y uint8, rows []byte) bool {
	collision := false
	ox, oy := int(x)%ScreenWidth, int(y)%ScreenHeight

	for row, b := range rows {
		py := oy + row
		if py >= ScreenHeight {
			if f.Edge == EdgeClip {
				break
			}
			py %= ScreenHeight
		}

		for col := 0; col < 8; col++ {
			if b&(types.Bit7>>col) == 0 {
				continue
			}
			px := ox + col
			if px >= ScreenWidth {
				if f.Edge == EdgeClip {
					break
				}
				px %= ScreenWidth
			}

			if f.Pixels[py][px] {
				collision = true
			}
			f.Pixels[py][px] = !f.Pixels[py][px]
		}
	}

	f.dirty = true
	return collision
}

// Apply carries out a display instruction, returning the
// collision result for XorSprite and false otherwise.
func (f *Framebuffer) Apply(ins Instruction) bool {
	switch ins.Op {
	case Clear:
		f.Clear()
	case XorSprite:
		return f.XorSprite(ins.X, ins.Y, ins.Rows)
	}
	return false
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates
// outside of the screen report off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= ScreenWidth || y >= ScreenHeight {
		return false
	}
	return f.Pixels[y][x]
}

// Dirty reports whether the framebuffer has changed since the
// last call to Clean.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// Invalidate marks the framebuffer as changed, so that it is
// presented again.
func (f *Framebuffer) Invalidate() {
	f.dirty = true
}

// Clean marks the framebuffer as presented.
func (f *Framebuffer) Clean() {
	f.dirty = false
}

// Render writes the framebuffer into frame, using the current
// palette.
func (f *Framebuffer) Render(frame *Frame) {
	p := palette.Palettes[palette.Current]
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			frame[y][x] = p.GetColour(f.Pixels[y][x])
		}
	}
}

// Reset clears the framebuffer.
func (f *Framebuffer) Reset() {
	f.Clear()
}

var _ types.Stater = (*Framebuffer)(nil)

// Load loads the pixels from the given state, 8 pixels per byte.
func (f *Framebuffer) Load(s *types.State) {
	for y := range f.Pixels {
		for x := 0; x < ScreenWidth; x += 8 {
			b := s.Read8()
			for i := 0; i < 8; i++ {
				f.Pixels[y][x+i] = b&(types.Bit7>>i) != 0
			}
		}
	}
	f.dirty = true
}

// Save saves the pixels to the given state, 8 pixels per byte.
func (f *Framebuffer) Save(s *types.State) {
	for y := range f.Pixels {
		for x := 0; x < ScreenWidth; x += 8 {
			var b uint8
			for i := 0; i < 8; i++ {
				if f.Pixels[y][x+i] {
					b |= types.Bit7 >> i
				}
			}
			s.Write8(b)
		}
	}
}
