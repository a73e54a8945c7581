package ppu

import "fmt"

// Op identifies the kind of display Instruction.
type Op uint8

const (
	// None means the instruction did not touch the display.
	None Op = iota
	// Clear turns every pixel off.
	Clear
	// XorSprite XORs a sprite onto the framebuffer.
	XorSprite
)

// Instruction describes a display side effect emitted by the
// CPU. The CPU never touches the framebuffer directly, it
// only hands instructions to whoever owns it.
type Instruction struct {
	Op   Op
	X, Y uint8  // top-left corner, XorSprite only
	Rows []byte // one byte per sprite row, MSB leftmost
}

// NoOp is returned by instructions that don't affect the display.
var NoOp = Instruction{Op: None}

// ClearScreen returns a Clear instruction.
func ClearScreen() Instruction {
	return Instruction{Op: Clear}
}

// Sprite returns an XorSprite instruction.
func Sprite(x, y uint8, rows []byte) Instruction {
	return Instruction{Op: XorSprite, X: x, Y: y, Rows: rows}
}

func (i Instruction) String() string {
	switch i.Op {
	case Clear:
		return "clear"
	case XorSprite:
		return fmt.Sprintf("sprite (%d, %d) % X", i.X, i.Y, i.Rows)
	default:
		return "none"
	}
}
