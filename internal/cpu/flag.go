package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// setFlag writes 1 or 0 to VF. Instructions that produce a
// flag write their result first, so that VF holds the flag when
// it is also the destination.
func (c *CPU) setFlag(set bool) {
	if set {
		c.V[types.FlagRegister] = 1
	} else {
		c.V[types.FlagRegister] = 0
	}
}

// Flag returns whether VF is set.
func (c *CPU) Flag() bool {
	return c.V[types.FlagRegister] != 0
}
