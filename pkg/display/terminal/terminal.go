// Package terminal implements a display driver that draws the
// framebuffer with half block characters in a raw mode terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"golang.org/x/term"
)

const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	home        = "\x1b[H"
	reset       = "\x1b[0m"
	clearLine   = "\x1b[K"

	ctrlC = 0x03
)

// ErrNotTerminal is returned when stdin is not a terminal.
var ErrNotTerminal = errors.New("terminal: stdin is not a terminal")

func init() {
	driver := &terminalDriver{in: os.Stdin, out: os.Stdout}
	display.Install("terminal", driver, []display.DriverOption{
		{
			Name:        "hold",
			Default:     150.0,
			Value:       &driver.holdMillis,
			Type:        "float",
			Description: "Milliseconds a key is held for, as terminals do not report key releases",
		},
	})
}

type terminalDriver struct {
	holdMillis float64

	in  *os.File
	out io.Writer
	emu display.Emulator

	mu       sync.Mutex
	oldState *term.State
}

func (t *terminalDriver) Initialize(emu display.Emulator) {
	t.emu = emu
}

// Start puts the terminal in raw mode and draws until the
// emulator quits, or Ctrl-C is pressed.
func (t *terminalDriver) Start(frames <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < ppu.ScreenWidth || h < ppu.ScreenHeight/2+1) {
		return fmt.Errorf("terminal: %dx%d is too small, need %dx%d", w, h, ppu.ScreenWidth, ppu.ScreenHeight/2+1)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.oldState = oldState
	t.mu.Unlock()
	defer t.Stop()

	fmt.Fprint(t.out, hideCursor+clearScreen)

	input := make(chan byte, 16)
	go readInput(t.in, input)
	k := newKeys(time.Duration(t.holdMillis*float64(time.Millisecond)), pressed, released)
	defer k.releaseAll()

	var title string
	var sound bool
	for {
		select {
		case f := <-frames:
			fmt.Fprint(t.out, home+render(f)+status(title, sound))
		case e := <-events:
			switch e.Type {
			case event.Title:
				title = e.Data.(string)
			case event.Sound:
				sound = e.Data.(bool)
			case event.Error:
				title = e.Data.(error).Error()
			case event.Quit:
				return nil
			}
			fmt.Fprint(t.out, status(title, sound))
		case b, ok := <-input:
			if !ok || b == ctrlC {
				t.emu.SendCommand(display.Close)
				return nil
			}
			t.handle(b, k)
		case <-k.expired:
			k.releaseExpired()
		}
	}
}

func (t *terminalDriver) handle(b byte, k *keys) {
	if key, ok := keypad.FromRune(rune(b)); ok {
		k.press(key)
		return
	}

	switch b {
	case 'p', ' ':
		display.TogglePause(t.emu)
	case 'o':
		t.emu.SendCommand(display.CyclePalette)
	case 'k':
		t.emu.SendCommand(display.SaveState)
	case 'l':
		t.emu.SendCommand(display.LoadSave)
	case 'n':
		t.emu.SendCommand(display.Reset)
	}
}

// Stop restores the terminal.
func (t *terminalDriver) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	fmt.Fprint(t.out, reset+showCursor+"\r\n")
	err := term.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
	return err
}

func readInput(r io.Reader, input chan<- byte) {
	defer close(input)
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		input <- b
	}
}

// render draws a packed RGB frame as ScreenHeight/2 lines of
// upper half blocks, the foreground colour being the upper pixel
// and the background colour the lower.
func render(f []byte) string {
	var b strings.Builder
	b.Grow(ppu.ScreenWidth * ppu.ScreenHeight / 2 * 40)

	pixel := func(x, y int) (byte, byte, byte) {
		i := (y*ppu.ScreenWidth + x) * 3
		return f[i], f[i+1], f[i+2]
	}

	for y := 0; y < ppu.ScreenHeight; y += 2 {
		for x := 0; x < ppu.ScreenWidth; x++ {
			tr, tg, tb := pixel(x, y)
			br, bg, bb := pixel(x, y+1)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString(reset + "\r\n")
	}
	return b.String()
}

// status draws the line below the screen.
func status(title string, sound bool) string {
	line := fmt.Sprintf("\x1b[%d;1H%s", ppu.ScreenHeight/2+1, title)
	if sound {
		line += " [beep]"
	}
	return line + clearLine
}
