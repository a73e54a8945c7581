package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_LoadIndex(t *testing.T) {
	c := newTestCPU(t, 0xA123, 0x61FF, 0xF11E)
	mustStep(t, c, noKeys)
	if c.I != 0x123 {
		t.Errorf("expected I 0x123, got 0x%03X", c.I)
	}
	mustStep(t, c, noKeys)
	mustStep(t, c, noKeys)
	if c.I != 0x222 {
		t.Errorf("expected I 0x222, got 0x%03X", c.I)
	}

	c = newTestCPU(t, 0xF11E)
	c.I, c.V[1] = 0xFFFF, 2
	mustStep(t, c, noKeys)
	if c.I != 0x0001 {
		t.Errorf("expected I to wrap to 0x0001, got 0x%04X", c.I)
	}
}

func TestInstruction_Font(t *testing.T) {
	for v := 0; v < 0x20; v++ {
		c := newTestCPU(t, 0xF329)
		c.V[3] = uint8(v)
		mustStep(t, c, noKeys)
		want := types.FontAddress + uint16(v&0xF)*types.GlyphSize
		if c.I != want {
			t.Errorf("V3=%X: expected I 0x%03X, got 0x%03X", v, want, c.I)
		}
	}
}

func TestInstruction_BCD(t *testing.T) {
	for _, tt := range []struct {
		v    uint8
		want [3]uint8
	}{
		{0, [3]uint8{0, 0, 0}},
		{9, [3]uint8{0, 0, 9}},
		{42, [3]uint8{0, 4, 2}},
		{100, [3]uint8{1, 0, 0}},
		{255, [3]uint8{2, 5, 5}},
	} {
		c := newTestCPU(t, 0xA300, 0xF533)
		c.V[5] = tt.v
		mustStep(t, c, noKeys)
		mustStep(t, c, noKeys)
		got, _ := c.mem.ReadSlice(0x300, 3)
		if [3]uint8(got) != tt.want {
			t.Errorf("%d: expected %v, got %v", tt.v, tt.want, got)
		}
	}
}

func TestInstruction_StoreLoadRoundTrip(t *testing.T) {
	for x := uint16(0); x < types.RegisterCount; x++ {
		// LD I, 0x400; LD [I], Vx; LD Vx, [I]
		c := newTestCPU(t, 0xA400, 0xF055|x<<8, 0xF065|x<<8)
		for i := range c.V {
			c.V[i] = uint8(i*17 + 3)
		}
		want := c.V

		mustStep(t, c, noKeys)
		mustStep(t, c, noKeys)
		for i := uint16(0); i <= x; i++ {
			c.V[i] = 0
		}
		mustStep(t, c, noKeys)

		if c.V != want {
			t.Errorf("x=%X: expected %v, got %v", x, want, c.V)
		}
		if c.I != 0x400 {
			t.Errorf("x=%X: expected I to be unchanged, got 0x%03X", x, c.I)
		}
	}
}

func TestInstruction_StoreBounds(t *testing.T) {
	t.Run("store out of range", func(t *testing.T) {
		c := newTestCPU(t, 0xAFFE, 0xF255)
		c.V[0], c.V[1], c.V[2] = 1, 2, 3
		mustStep(t, c, noKeys)
		_, err := c.Step(noKeys)
		if !errors.Is(err, ram.ErrOutOfRange) || !IsFatal(err) {
			t.Errorf("expected fatal ErrOutOfRange, got %v", err)
		}
		if b, _ := c.mem.Read(0xFFE); b != 0 {
			t.Errorf("expected no partial write, got 0x%02X", b)
		}
	})
	t.Run("load out of range", func(t *testing.T) {
		c := newTestCPU(t, 0xAFFF, 0xF165)
		mustStep(t, c, noKeys)
		if _, err := c.Step(noKeys); !errors.Is(err, ram.ErrOutOfRange) {
			t.Errorf("expected ErrOutOfRange, got %v", err)
		}
	})
	t.Run("bcd into font", func(t *testing.T) {
		c := newTestCPU(t, 0xA050, 0xF033)
		mustStep(t, c, noKeys)
		if _, err := c.Step(noKeys); !errors.Is(err, ram.ErrProtected) {
			t.Errorf("expected ErrProtected, got %v", err)
		}
	})
}

func TestInstruction_Timers(t *testing.T) {
	// LD V1, 30; LD DT, V1; LD ST, V1; LD V2, DT
	c := newTestCPU(t, 0x611E, 0xF115, 0xF118, 0xF207)
	mustStep(t, c, noKeys)
	mustStep(t, c, noKeys)
	mustStep(t, c, noKeys)
	if c.timer.Delay != 30 || c.timer.Sound != 30 {
		t.Errorf("expected both timers 30, got delay %d sound %d", c.timer.Delay, c.timer.Sound)
	}
	c.timer.Tick()
	mustStep(t, c, noKeys)
	if c.V[2] != 29 {
		t.Errorf("expected V2 29, got %d", c.V[2])
	}
}
