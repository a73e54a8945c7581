package cpu

// add adds Vy to Vx, setting VF on carry.
//
//	ADD Vx, Vy
func (c *CPU) add(x, y uint8) {
	sum := uint16(c.V[x]) + uint16(c.V[y])
	c.V[x] = uint8(sum)
	c.setFlag(sum > 0xFF)
}

// sub subtracts Vy from Vx, setting VF when no borrow occurs.
//
//	SUB Vx, Vy
func (c *CPU) sub(x, y uint8) {
	a, b := c.V[x], c.V[y]
	c.V[x] = a - b
	c.setFlag(a >= b)
}

// subn sets Vx to Vy minus Vx, setting VF when no borrow occurs.
//
//	SUBN Vx, Vy
func (c *CPU) subn(x, y uint8) {
	a, b := c.V[x], c.V[y]
	c.V[x] = b - a
	c.setFlag(b >= a)
}
