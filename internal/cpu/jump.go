package cpu

import (
	"fmt"

	"github.com/thelolagemann/gochip8/internal/types"
)

// pushStack pushes a return address onto the stack.
func (c *CPU) pushStack(address uint16) error {
	if int(c.SP) >= types.StackDepth {
		return ErrStackOverflow
	}
	c.Stack[c.SP] = address
	c.SP++
	return nil
}

// popStack pops a return address off the stack.
func (c *CPU) popStack() (uint16, error) {
	if c.SP == 0 {
		return 0, ErrStackUnderflow
	}
	c.SP--
	return c.Stack[c.SP], nil
}

// jumpAbsolute sets the program counter. A target outside of
// memory is reported when it is next fetched.
//
//	JP nnn
//	JP V0, nnn
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nnn
func (c *CPU) call(address uint16) error {
	if err := c.pushStack(c.PC); err != nil {
		return fmt.Errorf("cpu: call 0x%03X from 0x%03X: %w", address, c.PC-2, err)
	}
	c.jumpAbsolute(address)
	return nil
}

// ret pops the return address off the stack into the program counter.
//
//	RET
func (c *CPU) ret() error {
	addr, err := c.popStack()
	if err != nil {
		return fmt.Errorf("cpu: return from 0x%03X: %w", c.PC-2, err)
	}
	c.jumpAbsolute(addr)
	return nil
}

// skipIf skips the next instruction if the condition is true.
//
//	SE Vx, kk
//	SNE Vx, kk
//	SE Vx, Vy
//	SNE Vx, Vy
//	SKP Vx
//	SKNP Vx
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.PC += 2
	}
}
