//go:build !test

package fyne

import (
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/themes"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/views"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// screenshotScale is the factor screenshots are scaled up by.
const screenshotScale = 8

var programExtensions = []string{"ch8", "c8", "rom", "zip", "gz", "7z"}

func init() {
	driver := &fyneDriver{}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     12.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "debug-views",
			Default:     false,
			Value:       &driver.debugViews,
			Type:        "bool",
			Description: "Open the CPU and memory views on start",
		},
	})
}

// inspectable is implemented by emulators that expose their
// state to the debug views.
type inspectable interface {
	Inspect() chip8.Inspection
}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

// fyneDriver is a desktop display driver, drawing the
// framebuffer to a raster and providing menus and debug views.
type fyneDriver struct {
	scale      float64
	debugViews bool

	emu display.Emulator
	app fyne.App

	window fyne.Window
	img    *image.RGBA
	raster *canvas.Raster

	mu      sync.Mutex
	windows []*fyneWindow
}

func (f *fyneDriver) Initialize(emu display.Emulator) {
	f.emu = emu
}

// Start opens the main window and blocks until it is closed.
func (f *fyneDriver) Start(frames <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	f.app = app.NewWithID("io.github.thelolagemann.gochip8")
	f.app.Settings().SetTheme(themes.Phosphor{})

	f.window = f.app.NewWindow("gochip8")
	f.window.SetMaster()
	f.window.SetPadded(false)

	f.img = image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	f.raster = canvas.NewRasterFromImage(f.img)
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(ppu.ScreenWidth, ppu.ScreenHeight))

	f.window.SetContent(f.raster)
	f.window.SetMainMenu(f.mainMenu())
	f.window.Resize(fyne.NewSize(float32(ppu.ScreenWidth*f.scale), float32(ppu.ScreenHeight*f.scale)))

	// keypad input
	if desk, ok := f.window.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if k, ok := keyFor(e.Name); ok {
				pressed <- k
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if k, ok := keyFor(e.Name); ok {
				released <- k
			}
		})
	}
	f.window.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyEscape:
			display.TogglePause(f.emu)
		case fyne.KeyF2:
			f.emu.SendCommand(display.CyclePalette)
		case fyne.KeyF5:
			f.command(display.SaveState)
		case fyne.KeyF9:
			f.command(display.LoadSave)
		}
	})

	go f.drawFrames(frames)
	go f.dispatch(events)

	if f.debugViews {
		if in, ok := f.emu.(inspectable); ok {
			f.openWindowIfNotOpen(views.NewCPU(in.Inspect))
			f.openWindowIfNotOpen(views.NewMemory(in.Inspect))
		}
	}

	f.window.ShowAndRun()

	// the window was closed by the user
	f.emu.SendCommand(display.Close)
	return nil
}

// Stop closes every window.
func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}

// keyFor maps a fyne key name to the keypad, using the layout
// of keypad.FromRune.
func keyFor(name fyne.KeyName) (keypad.Key, bool) {
	if len(name) != 1 {
		return 0, false
	}
	return keypad.FromRune(rune(name[0]))
}

func (f *fyneDriver) drawFrames(frames <-chan []byte) {
	for fb := range frames {
		// copy the framebuffer to the image
		for i := 0; i < ppu.ScreenHeight*ppu.ScreenWidth; i++ {
			f.img.Pix[i*4] = fb[i*3]
			f.img.Pix[i*4+1] = fb[i*3+1]
			f.img.Pix[i*4+2] = fb[i*3+2]
			f.img.Pix[i*4+3] = 255
		}

		f.raster.Refresh()
	}
}

// dispatch handles the events meant for the main window, and
// forwards the rest to every open view.
func (f *fyneDriver) dispatch(events <-chan event.Event) {
	for e := range events {
		switch e.Type {
		case event.Title:
			f.window.SetTitle(e.Data.(string))
		case event.Error:
			dialog.ShowError(e.Data.(error), f.window)
		case event.Quit:
			f.forward(e)
			f.app.Quit()
			return
		default:
			f.forward(e)
		}
	}
}

func (f *fyneDriver) forward(e event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, w := range f.windows {
		select {
		case w.events <- e:
		default:
		}
	}
}

// command sends c to the emulator, showing any error in a
// dialog.
func (f *fyneDriver) command(c emulator.CommandPacket) {
	if resp := f.emu.SendCommand(c); resp.Error != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", c.Command, resp.Error), f.window)
	}
}

func (f *fyneDriver) openProgram() {
	filename, err := askForFile("Open program", ".", programExtensions...)
	if err != nil {
		return // cancelled
	}
	program, err := utils.LoadFile(filename)
	if err != nil {
		dialog.ShowError(err, f.window)
		return
	}
	f.command(emulator.CommandPacket{Command: emulator.CommandLoadROM, Data: program})
}

func (f *fyneDriver) screenshot() image.Image {
	return utils.ScaleImage(f.img, screenshotScale)
}

func (f *fyneDriver) mainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Program...", f.openProgram),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save State (F5)", func() { f.command(display.SaveState) }),
		fyne.NewMenuItem("Load Latest State (F9)", func() { f.command(display.LoadSave) }),
	)

	emuSpeed := fyne.NewMenuItem("Speed", nil)
	emuSpeed.ChildMenu = fyne.NewMenu("")
	for _, speed := range []float64{0.25, 0.5, 1, 2, 4} {
		speed := speed
		emuSpeed.ChildMenu.Items = append(emuSpeed.ChildMenu.Items, fyne.NewMenuItem(fmt.Sprintf("%gx", speed), func() {
			f.command(emulator.SpeedCommand(speed))
		}))
	}

	emuMenu := fyne.NewMenu("Emulation",
		NewCustomizedMenuItem("Paused (Esc)", nil, Checked(false, func(paused bool) {
			if paused {
				f.emu.SendCommand(display.Pause)
			} else {
				f.emu.SendCommand(display.Resume)
			}
		})),
		fyne.NewMenuItem("Reset", func() { f.emu.SendCommand(display.Reset) }),
		emuSpeed,
	)

	videoMenu := fyne.NewMenu("Video",
		fyne.NewMenuItem("Cycle Palette (F2)", func() { f.emu.SendCommand(display.CyclePalette) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy Screenshot", func() {
			if err := copyImage(f.screenshot()); err != nil {
				dialog.ShowError(err, f.window)
			}
		}),
		fyne.NewMenuItem("Save Screenshot...", func() {
			if err := saveImage(f.screenshot()); err != nil {
				dialog.ShowError(err, f.window)
			}
		}),
	)

	in, canInspect := f.emu.(inspectable)
	var inspect views.Inspector
	if canInspect {
		inspect = in.Inspect
	}
	debugMenu := fyne.NewMenu("Debug",
		NewCustomizedMenuItem("CPU", func() { f.openWindowIfNotOpen(views.NewCPU(inspect)) }, Gated(canInspect)),
		NewCustomizedMenuItem("Memory", func() { f.openWindowIfNotOpen(views.NewMemory(inspect)) }, Gated(canInspect)),
		fyne.NewMenuItem("Performance", func() { f.openWindowIfNotOpen(&views.Performance{}) }),
	)

	return fyne.NewMainMenu(fileMenu, emuMenu, videoMenu, debugMenu)
}

// openWindowIfNotOpen opens view in a new window, unless a view
// with the same title is already open.
func (f *fyneDriver) openWindowIfNotOpen(view View) {
	f.mu.Lock()
	for _, w := range f.windows {
		if w.view.Title() == view.Title() {
			f.mu.Unlock()
			w.RequestFocus()
			return
		}
	}

	win := &fyneWindow{
		Window: f.app.NewWindow(view.Title()),
		view:   view,
		events: make(chan event.Event, 16),
	}
	f.windows = append(f.windows, win)
	f.mu.Unlock()

	win.SetOnClosed(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, w := range f.windows {
			if w == win {
				f.windows = append(f.windows[:i], f.windows[i+1:]...)
				break
			}
		}
		close(win.events)
	})

	if err := view.Run(win, win.events); err != nil {
		dialog.ShowError(err, f.window)
		win.Close()
		return
	}
	win.Show()
}
