// Package cpu provides the register file, call stack and the
// fetch-decode-execute cycle. The CPU owns no display state:
// instructions that affect the screen are returned to the
// caller as a ppu.Instruction.
package cpu

import (
	"fmt"
	"math/rand"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
)

// KeyWaitMode decides how Fx0A behaves when no key is pressed.
type KeyWaitMode uint8

const (
	// KeyWaitLatch moves on to the next instruction straight
	// away, and latches the first key pressed on a later tick
	// into the target register before that tick's instruction
	// executes.
	KeyWaitLatch KeyWaitMode = iota
	// KeyWaitBlocking holds the program counter on Fx0A until
	// a key is pressed.
	KeyWaitBlocking
)

func (m KeyWaitMode) String() string {
	switch m {
	case KeyWaitLatch:
		return "latch"
	case KeyWaitBlocking:
		return "block"
	}
	return fmt.Sprintf("KeyWaitMode(%d)", m)
}

// ParseKeyWaitMode parses "latch" or "block".
func ParseKeyWaitMode(s string) (KeyWaitMode, error) {
	switch s {
	case "latch":
		return KeyWaitLatch, nil
	case "block":
		return KeyWaitBlocking, nil
	}
	return KeyWaitLatch, fmt.Errorf("cpu: unknown key wait mode %q", s)
}

// CPU represents the processor. It is responsible for executing instructions.
type CPU struct {
	// V holds the general purpose registers V0 - VF. VF doubles
	// as the flag register.
	V [types.RegisterCount]types.Register
	// I is the index register, used to address memory.
	I uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16

	// Stack holds return addresses, SP is the number of
	// addresses on it.
	Stack [types.StackDepth]uint16
	SP    uint8

	// KeyWait is the behaviour of Fx0A.
	KeyWait KeyWaitMode
	// Last is the most recently executed instruction.
	Last Instruction

	waiting      bool
	waitRegister uint8

	mem   *ram.RAM
	timer *timer.Controller
	rng   *rand.Rand
	seed  int64
}

// NewCPU creates a new CPU instance with the given memory and
// timers. The seed drives the random number generator used by
// Cxkk, so that runs can be reproduced.
func NewCPU(mem *ram.RAM, t *timer.Controller, seed int64) *CPU {
	c := &CPU{
		mem:   mem,
		timer: t,
		seed:  seed,
	}
	c.Reset()
	return c
}

// Reset sets the registers and stack to their power-on state,
// and reseeds the random number generator.
func (c *CPU) Reset() {
	c.V = [types.RegisterCount]types.Register{}
	c.I = 0
	c.PC = types.ProgramAddress
	c.Stack = [types.StackDepth]uint16{}
	c.SP = 0
	c.Last = Instruction{}
	c.waiting = false
	c.waitRegister = 0
	c.rng = rand.New(rand.NewSource(c.seed))
}

// Step performs a single fetch-decode-execute cycle against the
// given keypad snapshot, and returns the display instruction
// produced, if any.
//
// If a key wait is pending, the snapshot is checked first and
// the lowest pressed key latched into the waiting register,
// before the next instruction is fetched.
func (c *CPU) Step(keys keypad.Snapshot) (ppu.Instruction, error) {
	if c.waiting {
		if k, ok := keys.Lowest(); ok {
			c.V[c.waitRegister] = k
			c.waiting = false
		}
	}

	pc := c.PC
	word, err := c.mem.Fetch(pc)
	if err != nil {
		return ppu.NoOp, fmt.Errorf("cpu: fetch: %w", err)
	}
	c.PC += 2

	instr, err := Decode(word)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.PC = pc
		}
		c.Last = instr
		return ppu.NoOp, err
	}
	c.Last = instr

	return c.execute(instr, keys)
}

// Seed replaces the seed of the random number generator, and
// reseeds it.
func (c *CPU) Seed(seed int64) {
	c.seed = seed
	c.rng = rand.New(rand.NewSource(seed))
}

// CurrentSeed returns the seed the random number generator was
// last seeded with.
func (c *CPU) CurrentSeed() int64 {
	return c.seed
}

// Peek decodes the instruction at the program counter without
// executing it.
func (c *CPU) Peek() (Instruction, error) {
	word, err := c.mem.Fetch(c.PC)
	if err != nil {
		return Instruction{}, err
	}
	return Decode(word)
}

// Waiting returns whether a key wait is pending, and the
// register the key will be latched into.
func (c *CPU) Waiting() (bool, uint8) {
	return c.waiting, c.waitRegister
}

// SetCollision writes the collision result of a sprite draw
// into the flag register.
func (c *CPU) SetCollision(collided bool) {
	c.setFlag(collided)
}

// execute carries out a decoded instruction.
func (c *CPU) execute(i Instruction, keys keypad.Snapshot) (ppu.Instruction, error) {
	switch i.Op {
	case OpCLS:
		return ppu.ClearScreen(), nil
	case OpRET:
		return ppu.NoOp, c.ret()
	case OpJP:
		c.jumpAbsolute(i.NNN)
	case OpCALL:
		return ppu.NoOp, c.call(i.NNN)
	case OpSEImm:
		c.skipIf(c.V[i.X] == i.KK)
	case OpSNEImm:
		c.skipIf(c.V[i.X] != i.KK)
	case OpSEReg:
		c.skipIf(c.V[i.X] == c.V[i.Y])
	case OpSNEReg:
		c.skipIf(c.V[i.X] != c.V[i.Y])
	case OpLDImm:
		c.V[i.X] = i.KK
	case OpADDImm:
		c.V[i.X] += i.KK
	case OpLDReg:
		c.V[i.X] = c.V[i.Y]
	case OpOR:
		c.or(i.X, i.Y)
	case OpAND:
		c.and(i.X, i.Y)
	case OpXOR:
		c.xor(i.X, i.Y)
	case OpADD:
		c.add(i.X, i.Y)
	case OpSUB:
		c.sub(i.X, i.Y)
	case OpSUBN:
		c.subn(i.X, i.Y)
	case OpSHR:
		c.shiftRight(i.X)
	case OpSHL:
		c.shiftLeft(i.X)
	case OpLDI:
		c.I = i.NNN
	case OpJPV0:
		c.jumpAbsolute(uint16(c.V[0]) + i.NNN)
	case OpRND:
		c.V[i.X] = uint8(c.rng.Intn(256)) & i.KK
	case OpDRW:
		return c.draw(i.X, i.Y, i.N)
	case OpSKP:
		c.skipIf(keys.Pressed(c.V[i.X]))
	case OpSKNP:
		c.skipIf(!keys.Pressed(c.V[i.X]))
	case OpLDVxDT:
		c.V[i.X] = c.timer.Delay
	case OpLDK:
		c.waitForKey(i.X, keys)
	case OpLDDT:
		c.timer.Delay = c.V[i.X]
	case OpLDST:
		c.timer.Sound = c.V[i.X]
	case OpADDI:
		c.I += uint16(c.V[i.X])
	case OpLDF:
		c.I = ram.GlyphAddress(c.V[i.X])
	case OpLDB:
		return ppu.NoOp, c.storeBCD(i.X)
	case OpLDIVx:
		return ppu.NoOp, c.storeRegisters(i.X)
	case OpLDVxI:
		return ppu.NoOp, c.loadRegisters(i.X)
	}

	return ppu.NoOp, nil
}

var _ types.Stater = (*CPU)(nil)

// Load loads the state of the CPU from the given state.
func (c *CPU) Load(s *types.State) {
	s.ReadData(c.V[:])
	c.I = s.Read16()
	c.PC = s.Read16()
	for i := range c.Stack {
		c.Stack[i] = s.Read16()
	}
	c.SP = s.Read8()
	c.waiting = s.ReadBool()
	c.waitRegister = s.Read8()
}

// Save saves the state of the CPU to the given state.
func (c *CPU) Save(s *types.State) {
	s.WriteData(c.V[:])
	s.Write16(c.I)
	s.Write16(c.PC)
	for _, addr := range c.Stack {
		s.Write16(addr)
	}
	s.Write8(c.SP)
	s.WriteBool(c.waiting)
	s.Write8(c.waitRegister)
}
