package cpu

import (
	"fmt"

	"github.com/thelolagemann/gochip8/internal/ppu"
)

// draw reads an n-byte sprite from memory at I and returns it
// as an XorSprite display instruction at (Vx, Vy). VF is
// written by the owner of the framebuffer via SetCollision.
//
//	DRW Vx, Vy, n
func (c *CPU) draw(x, y, n uint8) (ppu.Instruction, error) {
	rows, err := c.mem.ReadSlice(c.I, int(n))
	if err != nil {
		return ppu.NoOp, fmt.Errorf("cpu: DRW V%X, V%X, %d: %w", x, y, n, err)
	}
	return ppu.Sprite(c.V[x], c.V[y], rows), nil
}
