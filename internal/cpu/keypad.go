package cpu

import "github.com/thelolagemann/gochip8/internal/keypad"

// waitForKey loads the lowest pressed key into Vx. When no key
// is pressed, the behaviour depends on KeyWait: in latch mode
// execution carries on and the key is latched by a later Step,
// in blocking mode the instruction is repeated.
//
//	LD Vx, K
func (c *CPU) waitForKey(x uint8, keys keypad.Snapshot) {
	if k, ok := keys.Lowest(); ok {
		c.V[x] = k
		c.waiting = false
		return
	}

	switch c.KeyWait {
	case KeyWaitBlocking:
		c.PC -= 2
	default:
		c.waiting = true
		c.waitRegister = x
	}
}
