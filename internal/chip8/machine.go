// Package chip8 ties the components of the machine together,
// and drives them from a 60Hz frame loop.
package chip8

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/scheduler"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	// DefaultClockSpeed is the default number of instructions
	// executed per second.
	DefaultClockSpeed = 700
	// FrameRate is the rate of the display and the timers.
	FrameRate = timer.Frequency

	minSpeed = 0.1
	maxSpeed = 10
)

// seeds tells apart machines created within the same clock tick.
var seeds atomic.Int64

// newSeed returns a seed for machines created without WithSeed.
func newSeed() int64 {
	return time.Now().UnixNano() + seeds.Add(1)
}

// ErrNoProgram is returned when the machine is started without
// a program loaded.
var ErrNoProgram = errors.New("chip8: no program loaded")

// Machine represents the whole machine. It owns every component,
// and is the main entry point for the emulator.
type Machine struct {
	CPU         *cpu.CPU
	RAM         *ram.RAM
	Keypad      *keypad.State
	Timer       *timer.Controller
	Framebuffer *ppu.Framebuffer

	s *scheduler.Scheduler
	log.Logger

	program    []byte
	clockSpeed uint64
	speed      float64
	debug      bool

	status    emulator.Status
	err       error
	frameDone bool
	executed  uint64
	frame     ppu.Frame

	saves          *emulator.Saves
	pendingProgram []byte
	pendingState   []byte

	mu     sync.Mutex
	done   chan struct{}
	closed sync.Once
}

// New returns a new Machine, with the program from WithProgram
// loaded, if any. Without a program the machine is Halted until
// one is loaded.
func New(opts ...Opt) (*Machine, error) {
	mem := ram.NewRAM()
	timerCtl := timer.NewController()

	m := &Machine{
		CPU:         cpu.NewCPU(mem, timerCtl, newSeed()),
		RAM:         mem,
		Keypad:      keypad.New(),
		Timer:       timerCtl,
		Framebuffer: ppu.NewFramebuffer(ppu.EdgeClip),

		s:      scheduler.NewScheduler(),
		Logger: log.NewNullLogger(),

		clockSpeed: DefaultClockSpeed,
		speed:      1,
		status:     emulator.Halted,
		saves:      emulator.NewSaves(emulator.DefaultSaveFolder),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.s.RegisterEvent(scheduler.TimerTick, m.tickTimers)
	m.s.RegisterEvent(scheduler.FrameEnd, m.endFrame)
	m.scheduleFrame()

	if m.pendingProgram != nil {
		if err := m.LoadProgram(m.pendingProgram); err != nil {
			return nil, err
		}
	}
	if m.pendingState != nil {
		if err := m.LoadState(m.pendingState); err != nil {
			return nil, err
		}
	}
	m.pendingProgram, m.pendingState = nil, nil

	return m, nil
}

// the scheduler advances by FrameRate cycles per instruction,
// so that a 60Hz period is exactly clockSpeed cycles.
func (m *Machine) period() uint64 {
	return m.clockSpeed
}

func (m *Machine) scheduleFrame() {
	m.s.ScheduleEvent(scheduler.TimerTick, m.period())
	m.s.ScheduleEvent(scheduler.FrameEnd, m.period())
}

func (m *Machine) tickTimers() {
	m.Timer.Tick()
	m.s.RescheduleEvent(scheduler.TimerTick, m.period())
}

func (m *Machine) endFrame() {
	m.frameDone = true
	m.s.RescheduleEvent(scheduler.FrameEnd, m.period())
}

// LoadProgram resets the machine and loads program at the
// program address. On error the machine is left as it was.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > types.MaxProgramSize {
		return fmt.Errorf("chip8: %d byte program: %w", len(program), ram.ErrProgramTooLarge)
	}
	m.program = append([]byte(nil), program...)
	m.Reset()
	m.Infof("loaded %d byte program", len(program))
	return nil
}

// Program returns the loaded program.
func (m *Machine) Program() []byte {
	return m.program
}

// Reset restores the machine to its power-on state, and reloads
// the current program.
func (m *Machine) Reset() {
	m.RAM.Reset()
	m.CPU.Reset()
	m.Timer.Reset()
	m.Keypad.Reset()
	m.Framebuffer.Reset()
	m.s.Reset()
	m.scheduleFrame()

	m.err = nil
	m.executed = 0
	m.status = emulator.Halted
	if m.program != nil {
		// length was checked when the program was set
		_ = m.RAM.LoadProgram(m.program)
		m.status = emulator.Running
	}
}

// Tick performs exactly one fetch-decode-execute step against the
// given keypad snapshot. Display instructions are applied to the
// framebuffer, with the collision result written to VF, and then
// returned for any external renderer.
//
// A decode error is logged and returned, but the machine keeps
// running. Any other error is fatal: the machine becomes Errored
// and every later Tick returns the same error until Reset.
func (m *Machine) Tick(keys keypad.Snapshot) (ppu.Instruction, error) {
	if m.err != nil {
		return ppu.NoOp, m.err
	}

	pc := m.CPU.PC
	ins, err := m.CPU.Step(keys)
	m.executed++
	m.s.Tick(FrameRate)

	if err != nil {
		if cpu.IsFatal(err) {
			m.err = err
			m.status = emulator.Errored
			m.Errorf("halted at 0x%03X: %s", pc, err)
		} else {
			m.Errorf("%s", err)
		}
		return ppu.NoOp, err
	}

	if m.debug {
		m.Debugf("%03X  %04X  %s", pc, m.CPU.Last.Opcode, m.CPU.Last)
	}

	collided := m.Framebuffer.Apply(ins)
	if ins.Op == ppu.XorSprite {
		m.CPU.SetCollision(collided)
	}

	return ins, nil
}

// Frame executes instructions until the end of the current 60Hz
// frame, using the current keypad state. The timers are
// decremented once per frame. It returns early with the error if
// the machine fails.
func (m *Machine) Frame() error {
	if m.program == nil {
		return ErrNoProgram
	}
	m.frameDone = false
	for !m.frameDone {
		if _, err := m.Tick(m.Keypad.Snapshot()); cpu.IsFatal(err) {
			return err
		}
	}
	return nil
}

// Render renders the framebuffer with the current palette, and
// marks it as presented.
func (m *Machine) Render() *ppu.Frame {
	m.Framebuffer.Render(&m.frame)
	m.Framebuffer.Clean()
	return &m.frame
}

// Err returns the fatal error the machine stopped on, if any.
func (m *Machine) Err() error {
	return m.err
}

// Executed returns the number of instructions executed since the
// last reset.
func (m *Machine) Executed() uint64 {
	return m.executed
}

// ClockSpeed returns the number of instructions executed per
// second at a speed of 1.
func (m *Machine) ClockSpeed() uint64 {
	return m.clockSpeed
}

// Speed returns the speed of the emulator.
func (m *Machine) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// Status returns the status of the emulator.
func (m *Machine) Status() emulator.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func clampSpeed(speed float64) float64 {
	return utils.Clamp(minSpeed, speed, maxSpeed)
}
