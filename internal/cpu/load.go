package cpu

import "fmt"

// storeBCD writes the hundreds, tens and units digits of Vx to
// memory at I, I+1 and I+2.
//
//	LD B, Vx
func (c *CPU) storeBCD(x uint8) error {
	v := c.V[x]
	if err := c.mem.WriteSlice(c.I, []byte{v / 100, v / 10 % 10, v % 10}); err != nil {
		return fmt.Errorf("cpu: LD B, V%X: %w", x, err)
	}
	return nil
}

// storeRegisters writes V0 through Vx to memory starting at I.
// I is left unchanged.
//
//	LD [I], Vx
func (c *CPU) storeRegisters(x uint8) error {
	if err := c.mem.WriteSlice(c.I, c.V[:x+1]); err != nil {
		return fmt.Errorf("cpu: LD [I], V%X: %w", x, err)
	}
	return nil
}

// loadRegisters reads V0 through Vx from memory starting at I.
// I is left unchanged.
//
//	LD Vx, [I]
func (c *CPU) loadRegisters(x uint8) error {
	data, err := c.mem.ReadSlice(c.I, int(x)+1)
	if err != nil {
		return fmt.Errorf("cpu: LD V%X, [I]: %w", x, err)
	}
	copy(c.V[:], data)
	return nil
}
