package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// shiftRight shifts Vx right by one, VF receiving the bit that
// was shifted out.
//
//	SHR Vx
func (c *CPU) shiftRight(x uint8) {
	v := c.V[x]
	c.V[x] = v >> 1
	c.setFlag(v&types.Bit0 != 0)
}

// shiftLeft shifts Vx left by one, VF receiving the bit that
// was shifted out.
//
//	SHL Vx
func (c *CPU) shiftLeft(x uint8) {
	v := c.V[x]
	c.V[x] = v << 1
	c.setFlag(v&types.Bit7 != 0)
}
