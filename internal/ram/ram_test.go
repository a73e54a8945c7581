package ram

import (
	"bytes"
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/types"
)

func TestRAM_Font(t *testing.T) {
	r := NewRAM()
	got, err := r.ReadSlice(types.FontAddress, len(Font))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, Font[:]) {
		t.Errorf("expected font %X, got %X", Font, got)
	}
	if types.FontAddress+types.Address(len(Font))-1 != types.FontEndAddress {
		t.Errorf("expected font to end at 0x%03X", types.FontEndAddress)
	}

	for d := uint8(0); d < 0x20; d++ {
		want := types.FontAddress + types.Address(d&0xF)*5
		if got := GlyphAddress(d); got != want {
			t.Errorf("glyph %X: expected 0x%03X, got 0x%03X", d, want, got)
		}
	}
}

func TestRAM_LoadProgram(t *testing.T) {
	t.Run("loads at program address", func(t *testing.T) {
		r := NewRAM()
		if err := r.LoadProgram([]byte{0x12, 0x34, 0x56}); err != nil {
			t.Fatal(err)
		}
		w, _ := r.Fetch(types.ProgramAddress)
		if w != 0x1234 {
			t.Errorf("expected 0x1234, got 0x%04X", w)
		}
		b, _ := r.Read(types.ProgramAddress + 2)
		if b != 0x56 {
			t.Errorf("expected 0x56, got 0x%02X", b)
		}
	})
	t.Run("largest program fits", func(t *testing.T) {
		r := NewRAM()
		p := bytes.Repeat([]byte{0xAA}, types.MaxProgramSize)
		if err := r.LoadProgram(p); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		b, _ := r.Read(types.MemorySize - 1)
		if b != 0xAA {
			t.Errorf("expected 0xAA, got 0x%02X", b)
		}
	})
	t.Run("too large", func(t *testing.T) {
		r := NewRAM()
		_ = r.LoadProgram([]byte{0x01})
		err := r.LoadProgram(make([]byte, types.MaxProgramSize+1))
		if !errors.Is(err, ErrProgramTooLarge) {
			t.Errorf("expected ErrProgramTooLarge, got %v", err)
		}
		// previous program must survive a failed load
		b, _ := r.Read(types.ProgramAddress)
		if b != 0x01 {
			t.Errorf("expected 0x01, got 0x%02X", b)
		}
	})
	t.Run("replaces previous program", func(t *testing.T) {
		r := NewRAM()
		_ = r.LoadProgram([]byte{0xFF, 0xFF, 0xFF})
		_ = r.LoadProgram([]byte{0x01})
		b, _ := r.Read(types.ProgramAddress + 1)
		if b != 0 {
			t.Errorf("expected 0x00, got 0x%02X", b)
		}
	})
}

func TestRAM_Bounds(t *testing.T) {
	r := NewRAM()
	var addrErr *AddressError

	if _, err := r.Read(types.MemorySize); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("read: expected ErrOutOfRange, got %v", err)
	}
	if _, err := r.Fetch(types.MemorySize - 1); !errors.As(err, &addrErr) || addrErr.Op != "fetch" {
		t.Errorf("fetch: expected fetch AddressError, got %v", err)
	}
	if _, err := r.ReadSlice(0xFFE, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("read slice: expected ErrOutOfRange, got %v", err)
	}
	if err := r.WriteSlice(0xFFE, []byte{1, 2, 3}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("write slice: expected ErrOutOfRange, got %v", err)
	}
	// nothing written by the failed access
	if b, _ := r.Read(0xFFE); b != 0 {
		t.Errorf("expected 0x00, got 0x%02X", b)
	}
	if err := r.WriteSlice(0xFFD, []byte{1, 2, 3}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestRAM_FontProtected(t *testing.T) {
	r := NewRAM()
	for _, tt := range []struct {
		addr uint16
		n    int
		err  error
	}{
		{0x4F, 1, nil},
		{0x50, 1, ErrProtected},
		{0x9F, 1, ErrProtected},
		{0xA0, 1, nil},
		{0x4E, 3, ErrProtected},
		{0x9E, 1, ErrProtected},
	} {
		err := r.WriteSlice(tt.addr, make([]byte, tt.n))
		if !errors.Is(err, tt.err) {
			t.Errorf("write %d at 0x%03X: expected %v, got %v", tt.n, tt.addr, tt.err, err)
		}
	}
	got, _ := r.ReadSlice(types.FontAddress, len(Font))
	if !bytes.Equal(got, Font[:]) {
		t.Errorf("expected font to be intact, got %X", got)
	}
}

func TestRAM_State(t *testing.T) {
	r := NewRAM()
	_ = r.LoadProgram([]byte{0xDE, 0xAD})
	s := types.NewState()
	r.Save(s)

	r2 := NewRAM()
	r2.Load(types.StateFromBytes(s.Bytes()))
	if !bytes.Equal(r.Bytes(), r2.Bytes()) {
		t.Errorf("expected restored memory to match")
	}
}
