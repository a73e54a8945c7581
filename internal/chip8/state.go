package chip8

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/scheduler"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// stateMagic prefixes every save state.
var stateMagic = [4]byte{'C', '8', 'S', 1}

// ErrInvalidState is returned when a save state is not
// recognised.
var ErrInvalidState = errors.New("chip8: invalid save state")

var _ types.Stater = (*Machine)(nil)

// Save saves the state of every component.
func (m *Machine) Save(s *types.State) {
	s.WriteData(stateMagic[:])
	m.CPU.Save(s)
	m.RAM.Save(s)
	m.Timer.Save(s)
	m.Keypad.Save(s)
	m.Framebuffer.Save(s)
	m.s.Save(s)
	s.Write32(uint32(m.executed >> 32))
	s.Write32(uint32(m.executed))
}

// Load loads the state of every component. The state is
// assumed to be valid, see LoadState.
func (m *Machine) Load(s *types.State) {
	var magic [4]byte
	s.ReadData(magic[:])
	m.CPU.Load(s)
	m.RAM.Load(s)
	m.Timer.Load(s)
	m.Keypad.Load(s)
	m.Framebuffer.Load(s)
	m.s.Load(s)
	m.executed = uint64(s.Read32())<<32 | uint64(s.Read32())
}

// SaveState returns a save state of the machine.
func (m *Machine) SaveState() []byte {
	s := types.NewState()
	m.Save(s)
	return s.Bytes()
}

// LoadState restores a save state. The machine is only modified
// if the state is complete and consistent, and it resumes
// Running with any fatal error cleared.
func (m *Machine) LoadState(b []byte) error {
	if m.program == nil {
		return ErrNoProgram
	}
	if len(b) < len(stateMagic) || [4]byte(b[:4]) != stateMagic {
		return ErrInvalidState
	}

	// decode into a scratch machine first, so a truncated state
	// leaves this one untouched
	scratch, err := New(ClockSpeed(m.clockSpeed))
	if err != nil {
		return err
	}
	s := types.StateFromBytes(b)
	scratch.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err := scratch.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	s.ResetPosition()
	m.Load(s)
	m.err = nil
	m.status = emulator.Running
	m.Infof("restored %d byte save state", len(b))
	return nil
}

// validate checks the fields a save state could set to values
// the machine never reaches by itself.
func (m *Machine) validate() error {
	if m.CPU.SP > types.StackDepth {
		return fmt.Errorf("stack pointer %d out of range", m.CPU.SP)
	}
	if waiting, x := m.CPU.Waiting(); waiting && x >= types.RegisterCount {
		return fmt.Errorf("key wait register %d out of range", x)
	}
	// both events must fire within a frame, or Frame never returns
	for _, e := range []scheduler.EventType{scheduler.TimerTick, scheduler.FrameEnd} {
		if until, ok := m.s.Until(e); !ok || until > m.period() {
			return fmt.Errorf("%s not due within a frame", e)
		}
	}
	font, err := m.RAM.ReadSlice(types.FontAddress, len(ram.Font))
	if err != nil {
		return err
	}
	if !bytes.Equal(font, ram.Font[:]) {
		return errors.New("font table modified")
	}
	return nil
}
