package chip8

import (
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// Opt is a function that modifies a Machine
// instance.
type Opt func(m *Machine)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(m *Machine) {
		m.debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = log
	}
}

// WithKeyWaitMode sets the behaviour of Fx0A.
func WithKeyWaitMode(mode cpu.KeyWaitMode) Opt {
	return func(m *Machine) {
		m.CPU.KeyWait = mode
	}
}

// WithEdgeMode sets how sprites crossing the screen edge are drawn.
func WithEdgeMode(mode ppu.EdgeMode) Opt {
	return func(m *Machine) {
		m.Framebuffer.Edge = mode
	}
}

// WithSeed seeds the random number generator used by Cxkk.
func WithSeed(seed int64) Opt {
	return func(m *Machine) {
		m.CPU.Seed(seed)
	}
}

// Speed sets the speed multiplier, 1 being real time.
func Speed(speed float64) Opt {
	return func(m *Machine) {
		m.speed = clampSpeed(speed)
	}
}

// ClockSpeed sets the number of instructions executed per
// second at a speed of 1.
func ClockSpeed(ips uint64) Opt {
	return func(m *Machine) {
		if ips > 0 {
			m.clockSpeed = ips
		}
	}
}

// WithProgram loads program into memory.
func WithProgram(program []byte) Opt {
	return func(m *Machine) {
		m.pendingProgram = program
	}
}

// WithState restores a save state once the program is loaded.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		m.pendingState = b
	}
}

// WithSaveFolder sets the folder save states are written to.
func WithSaveFolder(folder string) Opt {
	return func(m *Machine) {
		m.saves = emulator.NewSaves(folder)
	}
}
