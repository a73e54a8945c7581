package chip8

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu/palette"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// FrameTime is the wall time of a frame at a speed of 1.
const FrameTime = time.Second / FrameRate

// ErrUnknownCommand is returned for commands the machine does
// not handle.
var ErrUnknownCommand = errors.New("chip8: unknown command")

// Start runs the machine until it is closed, executing a frame
// every FrameTime (scaled by the speed). Rendered frames are sent
// on frames as packed RGB whenever the framebuffer changes, and
// key presses and releases are read from pressed and released.
// Sends never block: if a driver falls behind, frames are dropped.
func (m *Machine) Start(frames chan<- []byte, events chan<- event.Event, pressed, released <-chan keypad.Key) error {
	m.mu.Lock()
	if m.program == nil {
		m.mu.Unlock()
		return ErrNoProgram
	}
	speed := m.speed
	m.mu.Unlock()

	ticker := time.NewTicker(frameInterval(speed))
	defer ticker.Stop()

	var (
		frameCount  int
		frameTotal  time.Duration
		lastSecond  = time.Now()
		soundActive bool
		reported    error
	)

	for {
		select {
		case <-m.done:
			send(events, event.Event{Type: event.Quit})
			return nil
		case k := <-pressed:
			m.mu.Lock()
			m.Keypad.Press(k)
			m.mu.Unlock()
		case k := <-released:
			m.mu.Lock()
			m.Keypad.Release(k)
			m.mu.Unlock()
		case <-ticker.C:
			m.mu.Lock()
			if m.status == emulator.Running {
				start := time.Now()
				_ = m.Frame()
				frameTotal += time.Since(start)
				frameCount++
			}

			if m.err != nil && m.err != reported {
				send(events, event.Event{Type: event.Error, Data: m.err})
			}
			reported = m.err

			if m.Framebuffer.Dirty() {
				sendFrame(frames, m.Render().Bytes())
			}

			if active := m.Timer.SoundActive(); active != soundActive {
				soundActive = active
				send(events, event.Event{Type: event.Sound, Data: active})
			}

			if m.speed != speed {
				speed = m.speed
				ticker.Reset(frameInterval(speed))
			}
			status := m.status
			m.mu.Unlock()

			if time.Since(lastSecond) >= time.Second {
				if frameCount > 0 {
					send(events, event.Event{Type: event.FrameTime, Data: frameTotal / time.Duration(frameCount)})
				}
				send(events, event.Event{Type: event.Title, Data: fmt.Sprintf("gochip8 | %s | FPS: %d", status, frameCount)})
				frameCount, frameTotal = 0, 0
				lastSecond = time.Now()
			}
		}
	}
}

func frameInterval(speed float64) time.Duration {
	return time.Duration(float64(FrameTime) / speed)
}

func send(events chan<- event.Event, e event.Event) {
	select {
	case events <- e:
	default:
	}
}

func sendFrame(frames chan<- []byte, b []byte) {
	select {
	case frames <- b:
	default:
	}
}

// SendCommand sends a command packet to the emulator.
func (m *Machine) SendCommand(command emulator.CommandPacket) emulator.ResponsePacket {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp := emulator.ResponsePacket{Command: command.Command}
	switch command.Command {
	case emulator.CommandPause:
		if m.status == emulator.Running {
			m.status = emulator.Paused
			m.Infof("paused")
		}
	case emulator.CommandResume:
		if m.status == emulator.Paused {
			m.status = emulator.Running
			m.Infof("resumed")
		}
	case emulator.CommandReset:
		m.Reset()
		m.Infof("reset")
	case emulator.CommandClose:
		m.closed.Do(func() {
			m.status = emulator.Halted
			close(m.done)
		})
	case emulator.CommandLoadROM:
		resp.Error = m.LoadProgram(command.Data)
	case emulator.CommandLoadSave:
		b := command.Data
		if len(b) == 0 && m.program != nil {
			save, err := m.saves.Latest(m.program)
			if err != nil {
				resp.Error = err
				break
			}
			if b, err = save.Bytes(); err != nil {
				resp.Error = err
				break
			}
		}
		resp.Error = m.LoadState(b)
	case emulator.CommandSaveState:
		if m.program == nil {
			resp.Error = ErrNoProgram
			break
		}
		resp.Data = m.SaveState()
		save, err := m.saves.Write(m.program, resp.Data, time.Now())
		if err != nil {
			resp.Error = err
			break
		}
		m.Infof("saved state to %s", save.Path)
	case emulator.CommandSetSpeed:
		if len(command.Data) != 8 {
			resp.Error = fmt.Errorf("chip8: speed must be 8 bytes, got %d", len(command.Data))
			break
		}
		m.speed = clampSpeed(math.Float64frombits(binary.LittleEndian.Uint64(command.Data)))
	case emulator.CommandCyclePalette:
		p := palette.CyclePalette()
		m.Framebuffer.Invalidate()
		m.Infof("palette: %s", p.Name)
	default:
		resp.Error = fmt.Errorf("%w: %d", ErrUnknownCommand, command.Command)
	}

	return resp
}

// Close closes the machine, stopping Start.
func (m *Machine) Close() {
	m.SendCommand(emulator.CommandPacket{Command: emulator.CommandClose})
}
