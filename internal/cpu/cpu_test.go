package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
)

var noKeys keypad.Snapshot

// newTestCPU returns a CPU with the given instruction words
// loaded at the program address.
func newTestCPU(t *testing.T, program ...uint16) *CPU {
	t.Helper()
	mem := ram.NewRAM()
	p := make([]byte, 0, len(program)*2)
	for _, w := range program {
		p = append(p, byte(w>>8), byte(w))
	}
	if err := mem.LoadProgram(p); err != nil {
		t.Fatal(err)
	}
	return NewCPU(mem, timer.NewController(), 1)
}

// mustStep steps the CPU, failing the test on error.
func mustStep(t *testing.T, c *CPU, keys keypad.Snapshot) ppu.Instruction {
	t.Helper()
	ins, err := c.Step(keys)
	if err != nil {
		t.Fatalf("unexpected error at 0x%03X: %v", c.PC, err)
	}
	return ins
}

func TestCPU_PowerOn(t *testing.T) {
	c := newTestCPU(t)
	if c.PC != types.ProgramAddress {
		t.Errorf("expected PC 0x%03X, got 0x%03X", types.ProgramAddress, c.PC)
	}
	if c.SP != 0 || c.I != 0 {
		t.Errorf("expected empty stack and I = 0, got SP %d I 0x%03X", c.SP, c.I)
	}
	for i, v := range c.V {
		if v != 0 {
			t.Errorf("expected V%X = 0, got %d", i, v)
		}
	}
}

func TestCPU_Fetch(t *testing.T) {
	c := newTestCPU(t, 0x6A2B)
	mustStep(t, c, noKeys)
	if c.PC != 0x202 {
		t.Errorf("expected PC 0x202, got 0x%03X", c.PC)
	}
	if c.V[0xA] != 0x2B {
		t.Errorf("expected VA 0x2B, got 0x%02X", c.V[0xA])
	}
	if c.Last.Op != OpLDImm {
		t.Errorf("expected last instruction LD, got %s", c.Last)
	}
}

func TestCPU_FetchOutOfRange(t *testing.T) {
	c := newTestCPU(t)
	c.PC = types.MemorySize - 1
	_, err := c.Step(noKeys)
	if !errors.Is(err, ram.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if !IsFatal(err) {
		t.Errorf("expected fetch error to be fatal")
	}
	if c.PC != types.MemorySize-1 {
		t.Errorf("expected PC to be unchanged, got 0x%03X", c.PC)
	}
}

func TestCPU_DecodeError(t *testing.T) {
	c := newTestCPU(t, 0x6105, 0x5121, 0x7101)
	mustStep(t, c, noKeys)
	before := c.V

	_, err := c.Step(noKeys)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Opcode != 0x5121 || de.PC != 0x202 {
		t.Errorf("expected 0x5121 at 0x202, got 0x%04X at 0x%03X", de.Opcode, de.PC)
	}
	if !errors.Is(err, ErrDecode) || IsFatal(err) {
		t.Errorf("expected a non-fatal ErrDecode, got %v", err)
	}
	if c.V != before {
		t.Errorf("expected registers to be untouched by a decode error")
	}

	// execution carries on with the next instruction
	mustStep(t, c, noKeys)
	if c.V[1] != 6 {
		t.Errorf("expected V1 6, got %d", c.V[1])
	}
}

func TestCPU_State(t *testing.T) {
	c := newTestCPU(t, 0x2204, 0x0000, 0xF30A)
	c.V[5] = 0x55
	c.I = 0x321
	mustStep(t, c, noKeys)
	mustStep(t, c, noKeys)

	s := types.NewState()
	c.Save(s)

	d := newTestCPU(t)
	d.Load(types.StateFromBytes(s.Bytes()))
	if d.V != c.V || d.I != c.I || d.PC != c.PC || d.SP != c.SP || d.Stack != c.Stack {
		t.Errorf("expected restored registers to match")
	}
	if w, r := d.Waiting(); !w || r != 3 {
		t.Errorf("expected pending wait on V3, got %t V%X", w, r)
	}
}

func TestCPU_Random(t *testing.T) {
	run := func() [8]uint8 {
		c := newTestCPU(t)
		var out [8]uint8
		for i := range out {
			c.PC = types.ProgramAddress
			_, _ = c.execute(Instruction{Op: OpRND, X: 0, KK: 0xFF}, noKeys)
			out[i] = c.V[0]
		}
		return out
	}
	if a, b := run(), run(); a != b {
		t.Errorf("expected equal seeds to produce the same sequence, got %v and %v", a, b)
	}

	c := newTestCPU(t, 0xC10F)
	for i := 0; i < 64; i++ {
		c.PC = types.ProgramAddress
		mustStep(t, c, noKeys)
		if c.V[1]&0xF0 != 0 {
			t.Fatalf("expected random value masked by 0x0F, got 0x%02X", c.V[1])
		}
	}
}
