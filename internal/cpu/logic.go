package cpu

// or performs a bitwise OR of Vx and Vy, storing the result in Vx.
//
//	OR Vx, Vy
func (c *CPU) or(x, y uint8) {
	c.V[x] |= c.V[y]
}

// and performs a bitwise AND of Vx and Vy, storing the result in Vx.
//
//	AND Vx, Vy
func (c *CPU) and(x, y uint8) {
	c.V[x] &= c.V[y]
}

// xor performs a bitwise XOR of Vx and Vy, storing the result in Vx.
//
//	XOR Vx, Vy
func (c *CPU) xor(x, y uint8) {
	c.V[x] ^= c.V[y]
}
