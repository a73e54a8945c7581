//go:build !test

package sdl

import (
	"runtime"
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL: events must be pumped from the thread that
	// initialised video
	runtime.LockOSThread()

	driver := &sdlDriver{}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     12.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
	})
}

// sdlDriver draws the framebuffer with the SDL2 renderer, scaled
// up to the window with a logical size of the screen.
type sdlDriver struct {
	scale      float64
	fullscreen bool

	emu display.Emulator
}

func (s *sdlDriver) Initialize(emu display.Emulator) {
	s.emu = emu
}

// Start opens the window and blocks until it is closed, or the
// emulator quits.
func (s *sdlDriver) Start(frames <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if s.fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow("gochip8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*s.scale), int32(ppu.ScreenHeight*s.scale), flags)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	// keep the aspect ratio when the window is resized
	if err := renderer.SetLogicalSize(ppu.ScreenWidth, ppu.ScreenHeight); err != nil {
		return err
	}

	pollTicker := time.NewTicker(time.Millisecond * 10)
	defer pollTicker.Stop()

	for {
		select {
		case f := <-frames:
			if err := draw(renderer, f); err != nil {
				return err
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				window.SetTitle(e.Data.(string))
			case event.Quit:
				return nil
			}
		case <-pollTicker.C:
			for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
				switch ev := ev.(type) {
				case *sdl.QuitEvent:
					s.emu.SendCommand(display.Close)
					return nil
				case *sdl.KeyboardEvent:
					s.handleKey(ev, pressed, released)
				}
			}
		}
	}
}

func (s *sdlDriver) handleKey(ev *sdl.KeyboardEvent, pressed, released chan<- keypad.Key) {
	if ev.Repeat != 0 {
		return
	}

	if k, ok := keyFor(ev.Keysym.Sym); ok {
		switch ev.Type {
		case sdl.KEYDOWN:
			pressed <- k
		case sdl.KEYUP:
			released <- k
		}
		return
	}

	if ev.Type != sdl.KEYDOWN {
		return
	}
	switch ev.Keysym.Sym {
	case sdl.K_ESCAPE:
		display.TogglePause(s.emu)
	case sdl.K_F2:
		s.emu.SendCommand(display.CyclePalette)
	case sdl.K_F5:
		s.emu.SendCommand(display.SaveState)
	case sdl.K_F9:
		s.emu.SendCommand(display.LoadSave)
	case sdl.K_BACKSPACE:
		s.emu.SendCommand(display.Reset)
	}
}

// keyFor maps an SDL keycode to the keypad. Printable keycodes
// are their (lower case) ASCII character.
func keyFor(sym sdl.Keycode) (keypad.Key, bool) {
	if sym < 0x20 || sym >= 0x7f {
		return 0, false
	}
	return keypad.FromRune(rune(sym))
}

// draw renders a packed RGB frame, one logical pixel per
// framebuffer pixel.
func draw(renderer *sdl.Renderer, f []byte) error {
	rect := sdl.Rect{W: 1, H: 1}
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			i := (y*ppu.ScreenWidth + x) * 3
			if err := renderer.SetDrawColor(f[i], f[i+1], f[i+2], 255); err != nil {
				return err
			}
			rect.X, rect.Y = int32(x), int32(y)
			if err := renderer.FillRect(&rect); err != nil {
				return err
			}
		}
	}
	renderer.Present()
	return nil
}

// Stop shuts SDL down.
func (s *sdlDriver) Stop() error {
	sdl.Quit()
	return nil
}
