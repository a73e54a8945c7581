package chip8

import (
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// Inspection is a copy of the machine state, taken between two
// instructions, for use by debug views.
type Inspection struct {
	V     [types.RegisterCount]uint8
	I, PC uint16
	Stack []uint16 // return addresses, oldest first
	Delay uint8
	Sound uint8

	Last     cpu.Instruction
	Next     cpu.Instruction
	Waiting  bool
	Keys     keypad.Snapshot
	Memory   []byte
	Executed uint64
	Status   emulator.Status
}

// Inspect returns a copy of the machine state. It is safe to
// call while Start is running.
func (m *Machine) Inspect() Inspection {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := Inspection{
		V:        m.CPU.V,
		I:        m.CPU.I,
		PC:       m.CPU.PC,
		Stack:    append([]uint16(nil), m.CPU.Stack[:m.CPU.SP]...),
		Delay:    m.Timer.Delay,
		Sound:    m.Timer.Sound,
		Last:     m.CPU.Last,
		Keys:     m.Keypad.Snapshot(),
		Memory:   m.RAM.Bytes(),
		Executed: m.executed,
		Status:   m.status,
	}
	in.Waiting, _ = m.CPU.Waiting()
	// an undecodable word still disassembles, as DW
	in.Next, _ = m.CPU.Peek()
	return in
}
